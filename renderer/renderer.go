package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// DashboardRenderOptions holds configuration for rendering a dashboard.
type DashboardRenderOptions struct {
	SkipAccounts bool // Do not render the account detail table.
	SkipCharts   bool // Do not render the charts section.
}

// reportPartials are the sections of a report, shared by the report and the dashboard.
func reportPartials() map[string]string {
	return map[string]string{
		"report_title":        "report_title.md",
		"report_metrics":      "report_metrics.md",
		"report_productivity": "report_productivity.md",
		"report_charts":       "report_charts.md",
	}
}

// RenderReport renders the Report struct to a markdown string.
func RenderReport(r *Report) string {
	return renderTemplate("report", "report.md", reportPartials(), r)
}

// RenderAccounts renders the Accounts struct to a markdown string.
func RenderAccounts(a *Accounts) string {
	partials := map[string]string{"accounts_table": "accounts_table.md"}
	return renderTemplate("accounts", "accounts.md", partials, a)
}

// RenderDispatch renders the Dispatch struct to a markdown string.
func RenderDispatch(d *Dispatch) string {
	return renderTemplate("dispatch", "dispatch.md", nil, d)
}

// RenderDashboard renders the whole dashboard: metrics, accounts, dispatch outcome, productivity and charts.
func RenderDashboard(d *Dashboard, opts DashboardRenderOptions) string {
	partials := reportPartials()
	partials["dispatch"] = "dispatch.md"

	// An empty file name results in an empty template.
	partials["accounts_table"] = "accounts_table.md"
	if opts.SkipAccounts {
		partials["accounts_table"] = ""
	}
	if opts.SkipCharts {
		partials["report_charts"] = ""
	}

	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
