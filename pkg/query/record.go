package query

import "strings"

// Record is a single row the engine can search, filter and sort.
type Record interface {
	// Lookup returns the value stored under field and whether the field exists.
	Lookup(field string) (any, bool)
}

// Fields is a map-backed Record, used for embedded objects and ad hoc rows.
type Fields map[string]any

// Lookup implements Record.
func (f Fields) Lookup(field string) (any, bool) {
	v, ok := f[field]
	return v, ok
}

// Resolve walks a dotted path such as "lead_author.name" through nested records.
// Any unresolvable segment yields nil.
func Resolve(r Record, path string) any {
	if r == nil || path == "" {
		return nil
	}
	var current any = r
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case Record:
			value, ok := node.Lookup(segment)
			if !ok {
				return nil
			}
			current = value
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil
			}
			current = value
		default:
			return nil
		}
	}
	return current
}
