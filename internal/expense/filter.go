package expense

import (
	"math"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
)

// Search keeps records whose category, description or amount contains query,
// ignoring case and surrounding whitespace.
func Search(records []Record, query string) ([]Record, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil, internal.ErrEmptySearchTerm
	}

	var matches []Record
	for _, r := range records {
		if r.matches(term) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil, internal.ErrNoMatches
	}
	return matches, nil
}

func (r Record) matches(term string) bool {
	return strings.Contains(strings.ToLower(r.Category), term) ||
		strings.Contains(strings.ToLower(string(r.Description)), term) ||
		strings.Contains(r.AmountText(), term)
}

// Criteria is a conjunction of optional predicates. The zero value matches
// every record with a non-negative amount.
type Criteria struct {
	Categories []string
	From       *time.Time
	To         *time.Time
	MinAmount  *float64
	MaxAmount  *float64
}

func (c Criteria) Matches(r Record) bool {
	if len(c.Categories) > 0 && !containsExact(c.Categories, r.Category) {
		return false
	}

	if c.From != nil || c.To != nil {
		date, ok := r.Date()
		if !ok {
			return false
		}
		day := startOfDay(date)
		if c.From != nil && day.Before(startOfDay(*c.From)) {
			return false
		}
		if c.To != nil && day.After(startOfDay(*c.To)) {
			return false
		}
	}

	min, max := 0.0, math.Inf(1)
	if c.MinAmount != nil {
		min = *c.MinAmount
	}
	if c.MaxAmount != nil {
		max = *c.MaxAmount
	}
	return r.Amount >= min && r.Amount <= max
}

func (c Criteria) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Filter applies c and reports ErrNoMatches when nothing is left.
func Filter(records []Record, c Criteria) ([]Record, error) {
	matches := c.Apply(records)
	if len(matches) == 0 {
		return nil, internal.ErrNoMatches
	}
	return matches, nil
}

func containsExact(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
