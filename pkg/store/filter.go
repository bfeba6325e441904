package store

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
)

// matchFilters reports whether a document's data satisfies every filter.
func matchFilters(data map[string]any, filters []document.Filter) bool {
	for _, f := range filters {
		if !matchFilter(data, f) {
			return false
		}
	}
	return true
}

func matchFilter(data map[string]any, f document.Filter) bool {
	val, ok := fieldValue(data, f.Field)
	if !ok {
		// Missing fields never match, including for "!=".
		return false
	}

	switch f.Operator {
	case "==":
		return equalValues(val, f.Value)
	case "!=":
		return !equalValues(val, f.Value)
	case "<", "<=", ">", ">=":
		cmp, comparable := compareValues(val, f.Value)
		if !comparable {
			return false
		}
		switch f.Operator {
		case "<":
			return cmp < 0
		case "<=":
			return cmp <= 0
		case ">":
			return cmp > 0
		default:
			return cmp >= 0
		}
	case "array-contains":
		arr, ok := val.([]any)
		if !ok {
			return false
		}
		for _, e := range arr {
			if equalValues(e, f.Value) {
				return true
			}
		}
		return false
	case "array-contains-any":
		arr, ok := val.([]any)
		candidates, ok2 := f.Value.([]any)
		if !ok || !ok2 {
			return false
		}
		for _, e := range arr {
			for _, c := range candidates {
				if equalValues(e, c) {
					return true
				}
			}
		}
		return false
	case "in":
		candidates, ok := f.Value.([]any)
		if !ok {
			return false
		}
		for _, c := range candidates {
			if equalValues(val, c) {
				return true
			}
		}
		return false
	case "not-in":
		candidates, ok := f.Value.([]any)
		if !ok {
			return false
		}
		for _, c := range candidates {
			if equalValues(val, c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// fieldValue resolves a possibly dotted field path against nested mappings.
func fieldValue(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = data
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// equalValues compares with numeric coercion so 1 and 1.0 are equal
// regardless of which decode path produced them.
func equalValues(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	if at, aok := a.(time.Time); aok {
		bt, bok := b.(time.Time)
		return bok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two values of the same kind. The bool result is
// false for mixed or unordered kinds.
func compareValues(a, b any) (int, bool) {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if as, aok := a.(string); aok {
		bs, bok := b.(string)
		if !bok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}
	if at, aok := a.(time.Time); aok {
		bt, bok := b.(time.Time)
		if !bok {
			return 0, false
		}
		return at.Compare(bt), true
	}
	if ab, aok := a.(bool); aok {
		bb, bok := b.(bool)
		if !bok {
			return 0, false
		}
		switch {
		case ab == bb:
			return 0, true
		case !ab:
			return -1, true
		default:
			return 1, true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// sortDocuments applies order directives in listed order, stably, with
// documents missing the field sorting first.
func sortDocuments(docs []document.Document, orders []document.Order) {
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, o := range orders {
			vi, oki := fieldValue(docs[i].Data, o.Field)
			vj, okj := fieldValue(docs[j].Data, o.Field)
			if !oki && !okj {
				continue
			}
			if !oki || !okj {
				less := !oki
				if o.Direction == "desc" {
					less = !less
				}
				return less
			}
			cmp, comparable := compareValues(vi, vj)
			if !comparable || cmp == 0 {
				continue
			}
			if o.Direction == "desc" {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}
