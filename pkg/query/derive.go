// Package query derives filtered and sorted views over in-memory record lists.
//
// Derive is a pure pipeline: search, then field filters (combined with AND), then a
// stable single-key sort. It never mutates its input and returns the same result for
// the same inputs.
package query

// Query describes one derivation over a record list.
type Query struct {
	// Search is matched case-insensitively against SearchFields; empty disables it.
	Search       string
	SearchFields []string
	Filters      FilterSpec
	Sort         SortSpec
}

// Derive applies q to records and returns a new slice.
func Derive[T Record](records []T, q Query) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, q.Search, q.SearchFields) && matchesFilters(r, q.Filters) {
			out = append(out, r)
		}
	}
	if q.Sort.Active() {
		sortStable(out, q.Sort)
	}
	return out
}

func matchesSearch(r Record, term string, fields []string) bool {
	if term == "" {
		return true
	}
	for _, field := range fields {
		if containsFold(scalarOf(Resolve(r, field)).text(), term) {
			return true
		}
	}
	return false
}

func matchesFilters(r Record, filters FilterSpec) bool {
	for field, m := range filters {
		if m == nil {
			continue
		}
		if !m.Match(Resolve(r, field)) {
			return false
		}
	}
	return true
}

// Distinct returns the unique non-empty text values of field in first-seen order.
func Distinct[T Record](records []T, field string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range records {
		s := scalarOf(Resolve(r, field))
		if s.isNull() {
			continue
		}
		text := s.text()
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		values = append(values, text)
	}
	return values
}
