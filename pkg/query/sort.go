package query

import (
	"sort"
	"strings"
)

// Direction is the ordering applied by a SortSpec.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection reads "asc"/"desc" (any case); anything else is ascending.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Descending)) {
		return Descending
	}
	return Ascending
}

// SortSpec selects the single active sort key. A later sort replaces an earlier one.
type SortSpec struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Active reports whether a sort key is set.
func (s SortSpec) Active() bool {
	return s.Key != ""
}

// Toggle returns the spec produced by clicking a column header: the same key sorted
// ascending flips to descending, anything else starts ascending.
func Toggle(prev SortSpec, key string) SortSpec {
	if prev.Key == key && prev.Direction != Descending {
		return SortSpec{Key: key, Direction: Descending}
	}
	return SortSpec{Key: key, Direction: Ascending}
}

// sortKey is scalarOf with blank text treated as null, since typed views report an
// omitted optional string as "".
func sortKey(v any) scalar {
	s := scalarOf(v)
	if s.kind == kindString && strings.TrimSpace(s.str) == "" {
		return scalar{}
	}
	return s
}

// sortStable orders rows in place by spec. Null and blank keys stay after every other
// key in both directions and ties keep their prior order.
func sortStable[T Record](rows []T, spec SortSpec) {
	keys := make([]scalar, len(rows))
	for i, row := range rows {
		keys[i] = sortKey(Resolve(row, spec.Key))
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		switch {
		case a.isNull():
			return false
		case b.isNull():
			return true
		}
		c := compare(a, b)
		if spec.Direction == Descending {
			c = -c
		}
		return c < 0
	})
	sorted := make([]T, len(rows))
	for i, k := range idx {
		sorted[i] = rows[k]
	}
	copy(rows, sorted)
}
