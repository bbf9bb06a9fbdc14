package date

import "testing"

// count is a summable int for tests.
type count int

func (c count) Add(d count) count { return c + d }

func TestSeries_Add(t *testing.T) {
	s := new(Series[count])
	d1, d2, d3 := New(2025, 7, 1), New(2024, 7, 1), New(2024, 12, 31)

	// Days are added out of order, and one of them twice.

	if s.Len() != 0 {
		t.Errorf("Series.Len() = %v want 0", s.Len())
	}
	s.Add(d1, 1).Add(d2, 2).Add(d3, 3).Add(d1, 10)

	if s.Len() != 3 {
		t.Errorf("Series.Len() = %v want 3", s.Len())
	}

	var days []Date
	var values []count
	for on, v := range s.Values() {
		days = append(days, on)
		values = append(values, v)
	}
	wantDays := []Date{d2, d3, d1}
	wantValues := []count{2, 3, 11}
	for i := range wantDays {
		if days[i] != wantDays[i] || values[i] != wantValues[i] {
			t.Errorf("Values()[%d] = %v %v, want %v %v", i, days[i], values[i], wantDays[i], wantValues[i])
		}
	}
}

func TestSeries_Empty(t *testing.T) {
	var s Series[count]
	if s.Len() != 0 {
		t.Errorf("Series.Len() = %v want 0", s.Len())
	}
	for range s.Values() {
		t.Errorf("Values() of an empty series yields values")
	}
}
