package datastore

import (
	"fmt"
	"strings"

	"sales-crm/internal/models"
)

// Predicate selects rows by column equality, optionally combined.
type Predicate interface {
	// Match evaluates the predicate against an in-memory row.
	Match(row Row) bool
	build(coll models.Collection, d Dialect, args *[]any) (string, error)
}

type eqPredicate struct {
	field string
	value any
}

// Eq matches rows whose field equals value.
func Eq(field string, value any) Predicate {
	return eqPredicate{field: field, value: value}
}

func (p eqPredicate) Match(row Row) bool {
	return matchKey(row[p.field]) == matchKey(p.value)
}

// matchKey folds booleans onto the 0/1 integers sqlite stores them as.
func matchKey(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "1"
		}
		return "0"
	}
	return fmt.Sprint(v)
}

func (p eqPredicate) build(coll models.Collection, d Dialect, args *[]any) (string, error) {
	if !hasColumn(coll, p.field) {
		return "", fmt.Errorf("%w %q in %s", ErrUnknownColumn, p.field, coll)
	}
	*args = append(*args, p.value)
	return p.field + " = " + d.placeholder(len(*args)), nil
}

type joinPredicate struct {
	op    string
	terms []Predicate
}

// Or matches rows satisfying either predicate.
func Or(a, b Predicate) Predicate {
	return joinPredicate{op: "OR", terms: []Predicate{a, b}}
}

// And matches rows satisfying every predicate.
func And(terms ...Predicate) Predicate {
	return joinPredicate{op: "AND", terms: terms}
}

func (p joinPredicate) Match(row Row) bool {
	if p.op == "OR" {
		for _, t := range p.terms {
			if t.Match(row) {
				return true
			}
		}
		return false
	}
	for _, t := range p.terms {
		if !t.Match(row) {
			return false
		}
	}
	return true
}

func (p joinPredicate) build(coll models.Collection, d Dialect, args *[]any) (string, error) {
	parts := make([]string, 0, len(p.terms))
	for _, t := range p.terms {
		clause, err := t.build(coll, d, args)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+clause+")")
	}
	return strings.Join(parts, " "+p.op+" "), nil
}

// whereClause renders pred as a WHERE clause, or "" for nil.
func whereClause(coll models.Collection, d Dialect, pred Predicate, args *[]any) (string, error) {
	if pred == nil {
		return "", nil
	}
	clause, err := pred.build(coll, d, args)
	if err != nil {
		return "", err
	}
	return " WHERE " + clause, nil
}
