package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

const (
	EnvConfig   = "CCS_CONFIG"
	EnvSeed     = "CCS_SEED"
	EnvAccounts = "CCS_ACCOUNTS"
	EnvCurrency = "CCS_CURRENCY"
	EnvToday    = "CCS_TODAY"
	EnvVerbose  = "CCS_VERBOSE"
)

// extensionEnv returns the global flags as environment variables for extensions.
func extensionEnv() []string {
	return []string{
		EnvConfig + "=" + *configFile,
		EnvSeed + "=" + strconv.FormatUint(*seed, 10),
		EnvAccounts + "=" + strconv.Itoa(*count),
		EnvCurrency + "=" + *currency,
		EnvToday + "=" + *today,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}

// RunExtension attempts to find and execute an external ccs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "ccs-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		if *Verbose {
			log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		}
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1 // Indicate that an attempt was made, but it failed
	}

	return true, 0
}
