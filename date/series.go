package date

import (
	"iter"
	"slices"
)

// Series stores a chronological series of values, each associated with a specific date.
// Dates are unique and the series is always sorted.
type Series[T interface{ Add(T) T }] struct {
	days   []Date
	values []T
}

// Len returns the number of days in the series.
func (s *Series[T]) Len() int { return len(s.days) }

// Add adds q to the value on day on, creating the day when missing.
func (s *Series[T]) Add(on Date, q T) *Series[T] {
	i, found := slices.BinarySearchFunc(s.days, on, Date.Compare)
	if found {
		s.values[i] = s.values[i].Add(q)
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, q)
	return s
}

// Values returns an iterator over all date/value pairs in the series, in chronological order.
func (s *Series[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}
