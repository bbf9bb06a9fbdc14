package agent

import (
	"context"
	"fmt"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/docs"
	"github.com/etnz/cartera/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user supervises a collections workflow: a table of debtor accounts split into two
			portfolios, Administrativa and Extrajudicial. They want to know where the money is and which
			accounts to act upon. Answer in markdown, with tables when comparing figures.

			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the expert reading the accounts of session s.
// It never changes the session: its tools work on previews.
func NewAnalyst(model string, s *cartera.Session) *Expert {
	lib := AnalystFunctions(s)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They are in charge of the accounts table of the collections workflow.
		They can filter the accounts, compute the productivity of each portfolio and list the accounts.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the accounts table of a collections workflow.
				Each account has an id, a status (Normal, Arco, Aclaración, Liquidado), a portfolio
				(Administrativa, Extrajudicial), a due date, an amount and whether a notice was sent.

				Use the available tools to answer questions:
				  - report: totals, productivity by portfolio, by status and by due date
				  - accounts: the detail of the accounts

				Both take the same filter arguments. Without arguments they use the filter the user
				currently has on screen.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// filterSchema are the filter arguments shared by the analyst functions.
func filterSchema() map[string]*genai.Schema {
	list := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: desc}
	}
	return map[string]*genai.Schema{
		"exclude": list("Statuses to exclude. Defaults to the current filter."),
		"include": list("Portfolios to include. Defaults to the current filter."),
		"where": {
			Type: genai.TypeString,
			Description: `An optional predicate on accounts.

			` + must(docs.GetTopic("filters")),
		},
	}
}

// AnalystFunctions returns the tools of the analyst over session s.
func AnalystFunctions(s *cartera.Session) []Function {
	report := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "report",
			Description: "Report computes the totals of the filtered accounts: count, amount, productivity by portfolio, totals by status and amount by due date.",
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: filterSchema()},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with the metrics and the breakdown tables.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			f, err := parseFilterArgs(s.Filter(), args)
			if err != nil {
				return "", err
			}
			v := s.Preview(f)
			on := date.Of(s.Table().Created())
			return renderer.RenderReport(renderer.NewReport(on, f, v.Report())), nil
		},
	}

	schema := filterSchema()
	schema["limit"] = &genai.Schema{
		Type:        genai.TypeInteger,
		Description: "The maximum number of accounts to list, 50 by default.",
	}
	accounts := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "accounts",
			Description: "Accounts lists the filtered accounts in their table order.",
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: schema},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the accounts, with the count and total of all the filtered accounts.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			f, err := parseFilterArgs(s.Filter(), args)
			if err != nil {
				return "", err
			}
			limit := 50
			if l, ok := args["limit"].(float64); ok && l > 0 {
				limit = int(l)
			}
			a := renderer.NewAccounts(s.Preview(f))
			if len(a.Rows) > limit {
				a.Rows = a.Rows[:limit]
			}
			return renderer.RenderAccounts(a), nil
		},
	}
	return []Function{report, accounts}
}

// parseFilterArgs reads the filter arguments of a call, on top of the current filter.
func parseFilterArgs(current cartera.Filter, args map[string]any) (cartera.Filter, error) {
	f := current
	if v, ok := args["exclude"]; ok {
		names, err := stringList(v)
		if err != nil {
			return f, fmt.Errorf("argument 'exclude': %w", err)
		}
		if f.Exclude, err = cartera.ParseStatuses(names...); err != nil {
			return f, fmt.Errorf("argument 'exclude': %w", err)
		}
	}
	if v, ok := args["include"]; ok {
		names, err := stringList(v)
		if err != nil {
			return f, fmt.Errorf("argument 'include': %w", err)
		}
		if f.Include, err = cartera.ParsePortfolios(names...); err != nil {
			return f, fmt.Errorf("argument 'include': %w", err)
		}
	}
	if v, ok := args["where"]; ok {
		expr, ok := v.(string)
		if !ok {
			return f, fmt.Errorf("argument 'where' is not a string as expected but %T", v)
		}
		p, err := cartera.CompilePredicate(expr)
		if err != nil {
			return f, fmt.Errorf("argument 'where' must be a valid predicate got %q: %v. Below is the doc about filters\n\n%s", expr, err, must(docs.GetTopic("filters")))
		}
		f.Where = p
	}
	return f, nil
}

// stringList accepts a list of strings or a single comma separated string.
func stringList(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			s, ok := x.(string)
			if !ok {
				return nil, fmt.Errorf("got a %T in the list, expected strings", x)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("got %T, expected a list of strings", v)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
