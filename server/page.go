package server

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/renderer"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type option struct {
	Name    string
	Checked bool
}

type page struct {
	Title      string
	Statuses   []option // checked when excluded
	Portfolios []option // checked when included
	Where      string
	Body       template.HTML
}

// renderPage writes the dashboard page: the sidebar reflecting f and the rendered body.
func renderPage(w io.Writer, f cartera.Filter, body string) error {
	p := page{
		Title: renderer.Title,
		Where: f.Where.String(),
		Body:  template.HTML(body),
	}
	for _, s := range cartera.AllStatuses {
		p.Statuses = append(p.Statuses, option{Name: s.String(), Checked: f.Exclude.Has(s)})
	}
	for _, pf := range cartera.AllPortfolios {
		p.Portfolios = append(p.Portfolios, option{Name: pf.String(), Checked: f.Include.Has(pf)})
	}
	return pageTemplate.Execute(w, p)
}
