package cartera

import (
	"fmt"
	"strings"
)

// Filter selects the accounts taking part in the workflow.
//
// An account passes when its status is not excluded, its portfolio is included
// and the optional Where predicate holds. An empty Include selects nothing.
type Filter struct {
	Exclude StatusSet
	Include PortfolioSet
	Where   *Predicate
}

// NewFilter returns the default filter: no exclusion and every portfolio.
func NewFilter() Filter {
	return Filter{Exclude: StatusSet{}, Include: EveryPortfolio()}
}

// ParseFilter builds a filter from user input. A nil include list means every
// portfolio, a non-nil list without any name means none.
func ParseFilter(exclude, include []string, where string) (Filter, error) {
	f := NewFilter()
	var err error
	if f.Exclude, err = ParseStatuses(exclude...); err != nil {
		return Filter{}, err
	}
	if include != nil {
		if f.Include, err = ParsePortfolios(include...); err != nil {
			return Filter{}, err
		}
	}
	if f.Where, err = CompilePredicate(where); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Match reports whether a passes the filter.
func (f Filter) Match(a Account) bool {
	return !f.Exclude.Has(a.Status) && f.Include.Has(a.Portfolio) && f.Where.Match(a)
}

// Apply returns the accounts passing the filter, in their original order.
// The input is left untouched.
func (f Filter) Apply(accounts []Account) []Account {
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// String describes the filter, e.g. "exclude Arco, Liquidado; include Administrativa".
func (f Filter) String() string {
	exclude := strings.Join(f.Exclude.Strings(), ", ")
	if exclude == "" {
		exclude = "none"
	}
	include := strings.Join(f.Include.Strings(), ", ")
	if include == "" {
		include = "none"
	}
	s := fmt.Sprintf("exclude %s; include %s", exclude, include)
	if f.Where != nil {
		s += "; where " + f.Where.String()
	}
	return s
}
