package cartera

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Portfolio is the collections bucket an account is assigned to.
type Portfolio int

const (
	Administrativa Portfolio = iota
	Extrajudicial
)

// AllPortfolios lists every portfolio in display order.
var AllPortfolios = []Portfolio{Administrativa, Extrajudicial}

var portfolioLabels = [...]string{
	Administrativa: "Administrativa",
	Extrajudicial:  "Extrajudicial",
}

// portfolioAliases are the english names accepted on input.
var portfolioAliases = map[string]Portfolio{
	"administrative": Administrativa,
	"extrajudicial":  Extrajudicial,
}

func (p Portfolio) String() string {
	if p < 0 || int(p) >= len(portfolioLabels) {
		return fmt.Sprintf("Portfolio(%d)", int(p))
	}
	return portfolioLabels[p]
}

// ParsePortfolio reads a portfolio name, in spanish or english, ignoring case and accents.
func ParsePortfolio(name string) (Portfolio, error) {
	key := fold(name)
	for _, p := range AllPortfolios {
		if fold(p.String()) == key {
			return p, nil
		}
	}
	if p, ok := portfolioAliases[key]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown portfolio %q, want one of %s", name, strings.Join(labels(AllPortfolios), ", "))
}

func (p Portfolio) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

func (p *Portfolio) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParsePortfolio(str)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// PortfolioSet is a set of portfolios. The nil set is empty and selects nothing.
type PortfolioSet map[Portfolio]bool

// Portfolios returns a set containing p.
func Portfolios(p ...Portfolio) PortfolioSet {
	set := make(PortfolioSet, len(p))
	for _, x := range p {
		set[x] = true
	}
	return set
}

// EveryPortfolio returns the set of all portfolios, the default selection.
func EveryPortfolio() PortfolioSet { return Portfolios(AllPortfolios...) }

// ParsePortfolios parses a list of portfolio names. Each item may itself be a comma separated list.
func ParsePortfolios(names ...string) (PortfolioSet, error) {
	set := PortfolioSet{}
	for _, name := range splitList(names) {
		p, err := ParsePortfolio(name)
		if err != nil {
			return nil, err
		}
		set[p] = true
	}
	return set, nil
}

// Has reports whether p is in the set.
func (set PortfolioSet) Has(p Portfolio) bool { return set[p] }

// Sorted returns the members in display order.
func (set PortfolioSet) Sorted() []Portfolio {
	var out []Portfolio
	for _, p := range AllPortfolios {
		if set[p] {
			out = append(out, p)
		}
	}
	return out
}

// Strings returns the member labels in display order.
func (set PortfolioSet) Strings() []string { return labels(set.Sorted()) }
