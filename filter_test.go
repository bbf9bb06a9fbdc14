package cartera

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// sets converts generated indexes into status and portfolio sets.
func sets(excluded, included []int) (StatusSet, PortfolioSet) {
	e := StatusSet{}
	for _, i := range excluded {
		e[AllStatuses[i]] = true
	}
	p := PortfolioSet{}
	for _, i := range included {
		p[AllPortfolios[i]] = true
	}
	return e, p
}

func TestFilter_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("every row satisfies the filter, every matching row is kept once and in order", prop.ForAll(
		func(seed uint64, n int, excluded, included []int) bool {
			table := Generate(GeneratorOptions{Count: n, Seed: seed, Now: testNow})
			e, p := sets(excluded, included)
			f := Filter{Exclude: e, Include: p}

			got := f.Apply(table.Accounts())
			var want []Account
			for _, a := range table.Accounts() {
				if !e[a.Status] && p[a.Portfolio] {
					want = append(want, a)
				}
			}
			return slices.EqualFunc(got, want, func(x, y Account) bool { return x.ID == y.ID })
		},
		gen.UInt64(),
		gen.IntRange(1, 150),
		gen.SliceOf(gen.IntRange(0, len(AllStatuses)-1)),
		gen.SliceOf(gen.IntRange(0, len(AllPortfolios)-1)),
	))

	properties.Property("an empty portfolio selection matches nothing", prop.ForAll(
		func(seed uint64, excluded []int) bool {
			table := Generate(GeneratorOptions{Count: 50, Seed: seed, Now: testNow})
			e, _ := sets(excluded, nil)
			return len(Filter{Exclude: e}.Apply(table.Accounts())) == 0
		},
		gen.UInt64(),
		gen.SliceOf(gen.IntRange(0, len(AllStatuses)-1)),
	))

	properties.Property("filtering is idempotent", prop.ForAll(
		func(seed uint64, excluded, included []int) bool {
			table := Generate(GeneratorOptions{Count: 80, Seed: seed, Now: testNow})
			e, p := sets(excluded, included)
			f := Filter{Exclude: e, Include: p}
			once := f.Apply(table.Accounts())
			twice := f.Apply(once)
			return slices.EqualFunc(once, twice, func(x, y Account) bool { return x.ID == y.ID })
		},
		gen.UInt64(),
		gen.SliceOf(gen.IntRange(0, len(AllStatuses)-1)),
		gen.SliceOf(gen.IntRange(0, len(AllPortfolios)-1)),
	))

	properties.TestingRun(t)
}

func TestFilter_Scenario(t *testing.T) {
	table := newTestTable()
	f := Filter{Exclude: Statuses(Arco, Liquidado), Include: Portfolios(Administrativa)}

	got := f.Apply(table.Accounts())
	if len(got) == 0 {
		t.Fatalf("Apply() returned no account, want some for seed 42")
	}
	for _, a := range got {
		if a.Status != Normal && a.Status != Aclaracion {
			t.Errorf("account %d has status %v, want Normal or Aclaración", a.ID, a.Status)
		}
		if a.Portfolio != Administrativa {
			t.Errorf("account %d has portfolio %v, want Administrativa", a.ID, a.Portfolio)
		}
	}
	if !slices.IsSortedFunc(got, func(a, b Account) int { return a.ID - b.ID }) {
		t.Errorf("Apply() did not preserve the table order")
	}
}

func TestFilter_EmptyExclude(t *testing.T) {
	table := newTestTable()
	f := Filter{Include: EveryPortfolio()}
	if got := len(f.Apply(table.Accounts())); got != table.Len() {
		t.Errorf("len(Apply()) = %d, want %d", got, table.Len())
	}
}

func TestFilter_Where(t *testing.T) {
	accounts := []Account{
		acc(1, Normal, Administrativa, 0, 1500),
		acc(2, Normal, Extrajudicial, 5, 25000),
		acc(3, Arco, Extrajudicial, -3, 30000),
	}
	f := NewFilter()
	f.Where = MustCompilePredicate(`amount > 20000.0 && portfolio == "Extrajudicial"`)

	got := f.Apply(accounts)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("Apply() = %v, want accounts 2 and 3", got)
	}

	f.Exclude = Statuses(Arco)
	if got := f.Apply(accounts); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Apply() = %v, want account 2", got)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		exclude []string
		include []string
		where   string
		want    string
		wantErr bool
	}{
		{"defaults", nil, nil, "", "exclude none; include Administrativa, Extrajudicial", false},
		{"comma lists", []string{"arco,liquidado"}, []string{"administrative"}, "", "exclude Arco, Liquidado; include Administrativa", false},
		{"accents", []string{"ACLARACION"}, []string{"Extrajudicial"}, "", "exclude Aclaración; include Extrajudicial", false},
		{"where", nil, nil, "id < 10", "exclude none; include Administrativa, Extrajudicial; where id < 10", false},
		{"include nothing", nil, []string{}, "", "exclude none; include none", false},
		{"include blank", []string{"arco"}, []string{""}, "", "exclude Arco; include none", false},
		{"unknown status", []string{"Moroso"}, nil, "", "", true},
		{"unknown portfolio", nil, []string{"Judicial"}, "", "", true},
		{"bad expression", nil, nil, "amount >", "", true},
		{"not a bool", nil, nil, "amount + 1.0", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.exclude, tt.include, tt.where)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := f.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
