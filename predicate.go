package cartera

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
)

// Predicate is an extra row condition written in CEL, for instance
//
//	amount > 20000.0 && !notice_sent
//
// The variables are id (int), status (string), portfolio (string),
// amount (double), due (timestamp) and notice_sent (bool).
type Predicate struct {
	expr string
	prg  cel.Program
}

var predicateEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("status", cel.StringType),
		cel.Variable("portfolio", cel.StringType),
		cel.Variable("amount", cel.DoubleType),
		cel.Variable("due", cel.TimestampType),
		cel.Variable("notice_sent", cel.BoolType),
	)
})

// CompilePredicate compiles expr. A blank expression returns a nil predicate, which matches everything.
func CompilePredicate(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	env, err := predicateEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expr, iss.Err())
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, fmt.Errorf("invalid expression %q: got %v, want bool", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expr, err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// MustCompilePredicate is like CompilePredicate but panics on error.
func MustCompilePredicate(expr string) *Predicate {
	p, err := CompilePredicate(expr)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// String returns the source expression.
func (p *Predicate) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Match evaluates the predicate on a. A nil predicate matches everything.
// An evaluation error (e.g. a division by zero) counts as no match.
func (p *Predicate) Match(a Account) bool {
	if p == nil {
		return true
	}
	out, _, err := p.prg.Eval(map[string]any{
		"id":          int64(a.ID),
		"status":      a.Status.String(),
		"portfolio":   a.Portfolio.String(),
		"amount":      a.Amount.AsFloat(),
		"due":         a.DueDate,
		"notice_sent": a.NoticeSent,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
