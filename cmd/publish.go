package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// publishTask is one published document, also the data of the front matter template.
type publishTask struct {
	Scope  string // "all" or the lower case portfolio name
	Report string // "report" or "accounts"
	Filter cartera.Filter
}

type publishCmd struct {
	filterFlags
	outputDir      string
	frontMatterTpl string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "generates the reports of every portfolio into a directory" }

func (*publishCmd) Usage() string {
	return `ccs publish [-o <dir>] [-frontmatter <file>] [-x <statuses>] [-p <portfolios>] [-where <predicate>]

  Generates the report and the accounts list for the filtered accounts, and
  for each included portfolio alone, and saves them to a directory tree:

    <dir>/all/report.md
    <dir>/all/accounts.md
    <dir>/administrativa/report.md
    ...
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the report front matter")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	_, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	n, err := publish(c.outputDir, s, frontMatterTpl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to publish: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Published %d reports to %s\n", n, c.outputDir)
	return subcommands.ExitSuccess
}

// publishTasks lists the documents to publish for filter f.
func publishTasks(f cartera.Filter) []publishTask {
	scopes := []publishTask{{Scope: "all", Filter: f}}
	for _, p := range f.Include.Sorted() {
		pf := f
		pf.Include = cartera.Portfolios(p)
		scopes = append(scopes, publishTask{Scope: strings.ToLower(p.String()), Filter: pf})
	}

	tasks := make([]publishTask, 0, 2*len(scopes))
	for _, scope := range scopes {
		for _, report := range []string{"report", "accounts"} {
			scope.Report = report
			tasks = append(tasks, scope)
		}
	}
	return tasks
}

// publish writes every document under dir. The session filter is restored afterwards.
func publish(dir string, s *cartera.Session, frontMatterTpl *template.Template) (int, error) {
	initial := s.Filter()
	defer s.SetFilter(initial)

	tasks := publishTasks(initial)
	for _, task := range tasks {
		s.SetFilter(task.Filter)

		var md string
		switch task.Report {
		case "report":
			md = renderer.RenderReport(newReport(s))
		case "accounts":
			md = renderer.RenderAccounts(newAccounts(s))
		}

		if frontMatterTpl != nil {
			fm, err := renderFrontMatter(frontMatterTpl, task)
			if err != nil {
				return 0, fmt.Errorf("failed to render front matter for %s report %s: %w", task.Scope, task.Report, err)
			}
			md = fm + "\n" + md // Prepend front matter to markdown
		}

		fullPath := filepath.Join(dir, task.Scope, task.Report+".md")
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return 0, fmt.Errorf("failed to create output directory for file %s: %w", fullPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(md), 0644); err != nil {
			return 0, fmt.Errorf("failed to write file %s: %w", fullPath, err)
		}
		if *Verbose {
			log.Printf("Generated %s report for %s", task.Report, task.Scope)
		}
	}
	return len(tasks), nil
}

func renderFrontMatter(tpl *template.Template, task publishTask) (string, error) {
	var fmBuffer bytes.Buffer
	if err := tpl.Execute(&fmBuffer, task); err != nil {
		return "", err
	}
	return fmBuffer.String(), nil
}
