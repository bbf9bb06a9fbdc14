package cartera

import "testing"

func TestPredicate_Match(t *testing.T) {
	a := acc(7, Aclaracion, Extrajudicial, 3, 25000)
	a.NoticeSent = true

	tests := []struct {
		expr string
		want bool
	}{
		{"", true},
		{"amount > 20000.0", true},
		{"amount > 20000.0 && !notice_sent", false},
		{"status == 'Aclaración' && portfolio == 'Extrajudicial'", true},
		{"id % 2 == 1", true},
		{"due > timestamp('2025-06-22T00:00:00Z')", true},
		{"due < timestamp('2025-06-22T00:00:00Z')", false},
		{"1 / (id - 7) == 0", false}, // division by zero
	}
	for _, tt := range tests {
		p, err := CompilePredicate(tt.expr)
		if err != nil {
			t.Fatalf("CompilePredicate(%q) error = %v", tt.expr, err)
		}
		if got := p.Match(a); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.expr, got, tt.want)
		}
		if got := p.String(); got != tt.expr {
			t.Errorf("String() = %q, want %q", got, tt.expr)
		}
	}
}

func TestCompilePredicate_Errors(t *testing.T) {
	for _, expr := range []string{
		"amount +",
		"amount",           // not a bool
		"unknown > 3",      // undeclared variable
		"amount > '20000'", // type mismatch
	} {
		if _, err := CompilePredicate(expr); err == nil {
			t.Errorf("CompilePredicate(%q) error = nil, want an error", expr)
		}
	}
}
