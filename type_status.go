package cartera

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Status is the servicing state of an account. It decides whether an account
// takes part in the active collection workflows.
type Status int

const (
	Normal Status = iota
	Arco
	Aclaracion
	Liquidado
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{Normal, Arco, Aclaracion, Liquidado}

var statusLabels = [...]string{
	Normal:     "Normal",
	Arco:       "Arco",
	Aclaracion: "Aclaración",
	Liquidado:  "Liquidado",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusLabels) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusLabels[s]
}

// ParseStatus reads a status name. Matching ignores case and accents, so
// "aclaracion" and "Aclaración" are the same status.
func ParseStatus(name string) (Status, error) {
	key := fold(name)
	for _, s := range AllStatuses {
		if fold(s.String()) == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q, want one of %s", name, strings.Join(labels(AllStatuses), ", "))
}

func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// StatusSet is a set of statuses. The nil set is empty.
type StatusSet map[Status]bool

// Statuses returns a set containing s.
func Statuses(s ...Status) StatusSet {
	set := make(StatusSet, len(s))
	for _, x := range s {
		set[x] = true
	}
	return set
}

// ParseStatuses parses a list of status names. Each item may itself be a comma separated list.
func ParseStatuses(names ...string) (StatusSet, error) {
	set := StatusSet{}
	for _, name := range splitList(names) {
		s, err := ParseStatus(name)
		if err != nil {
			return nil, err
		}
		set[s] = true
	}
	return set, nil
}

// Has reports whether s is in the set.
func (set StatusSet) Has(s Status) bool { return set[s] }

// Sorted returns the members in display order.
func (set StatusSet) Sorted() []Status {
	var out []Status
	for _, s := range AllStatuses {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

// Strings returns the member labels in display order.
func (set StatusSet) Strings() []string { return labels(set.Sorted()) }

// fold normalizes a name for case and accent insensitive comparison.
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u").Replace(s)
}

func labels[T fmt.Stringer](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

// splitList flattens comma separated items and drops the blank ones.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" && !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}
