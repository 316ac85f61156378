package resource

import (
	"strings"

	"github.com/gimlet2/metarest/core/value"
)

// Operator selects the comparison applied by a filter.
type Operator string

const (
	OpEq       Operator = "eq"
	OpNe       Operator = "ne"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpContains Operator = "contains"
)

// Filter is a single field/operator/value predicate. Filters are stateless
// and constructed per query.
type Filter struct {
	Field    string      `json:"field"`
	Operator Operator    `json:"operator"`
	Value    value.Value `json:"value"`
}

// Matches reports whether the record satisfies the filter. Matching never
// errors: an absent field, a type mismatch on gt/lt/contains, or an unknown
// operator all exclude the record silently.
func (f Filter) Matches(r Record) bool {
	v, ok := r.Data[f.Field]
	if !ok {
		return false
	}

	switch f.Operator {
	case OpEq:
		return v.Equal(f.Value)
	case OpNe:
		return !v.Equal(f.Value)
	case OpGt:
		a, aok := v.AsNumber()
		b, bok := f.Value.AsNumber()
		return aok && bok && a > b
	case OpLt:
		a, aok := v.AsNumber()
		b, bok := f.Value.AsNumber()
		return aok && bok && a < b
	case OpContains:
		a, aok := v.AsString()
		b, bok := f.Value.AsString()
		return aok && bok && strings.Contains(a, b)
	default:
		return false
	}
}

// MatchesAll reports whether the record satisfies every filter. An empty
// filter list matches everything.
func MatchesAll(r Record, filters []Filter) bool {
	for _, f := range filters {
		if !f.Matches(r) {
			return false
		}
	}
	return true
}
