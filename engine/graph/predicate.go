package graph

import "strings"

// Op is a Cypher comparison operator.
type Op string

const (
	OpEq Op = "="
	OpNe Op = "<>"
	OpLt Op = "<"
	OpGt Op = ">"
	OpLe Op = "<="
)

// Predicate is one WHERE condition bound to a named parameter.
// Field and Param are fixed identifiers from this package; only Value comes
// from the caller, and it is always sent as a parameter.
type Predicate struct {
	Field string
	Op    Op
	Param string
	Value any
}

// Clause renders the predicate, e.g. "g.weight_grams < $weight_lt".
func (p Predicate) Clause() string {
	return p.Field + " " + string(p.Op) + " $" + p.Param
}

// Predicates is a conjunction of conditions.
type Predicates []Predicate

// Add appends an unconditional predicate.
func (ps *Predicates) Add(field string, op Op, param string, value any) {
	*ps = append(*ps, Predicate{Field: field, Op: op, Param: param, Value: value})
}

// addIfSet appends a predicate only when v is non-nil. Zero values count as set.
func addIfSet[T any](ps *Predicates, field string, op Op, param string, v *T) {
	if v == nil {
		return
	}
	ps.Add(field, op, param, *v)
}

// Clauses returns the rendered conditions in insertion order.
func (ps Predicates) Clauses() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Clause()
	}
	return out
}

// Where renders "WHERE a AND b", or "" when there are no predicates.
func (ps Predicates) Where() string {
	if len(ps) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(ps.Clauses(), " AND ")
}

// Bind copies each predicate's value into params under its parameter name.
func (ps Predicates) Bind(params map[string]any) map[string]any {
	if params == nil {
		params = make(map[string]any, len(ps))
	}
	for _, p := range ps {
		params[p.Param] = p.Value
	}
	return params
}
