package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type kind int

const (
	kindNull kind = iota
	kindNumber
	kindString
	kindTime
)

type scalar struct {
	kind kind
	num  float64
	str  string
	at   time.Time
}

// scalarOf reduces a field value to something orderable. Missing values, nil pointers,
// zero times and nested records all collapse to null.
func scalarOf(v any) scalar {
	switch x := v.(type) {
	case nil:
		return scalar{}
	case string:
		return scalar{kind: kindString, str: x}
	case *string:
		if x == nil {
			return scalar{}
		}
		return scalar{kind: kindString, str: *x}
	case time.Time:
		if x.IsZero() {
			return scalar{}
		}
		return scalar{kind: kindTime, at: x}
	case *time.Time:
		if x == nil || x.IsZero() {
			return scalar{}
		}
		return scalar{kind: kindTime, at: *x}
	case int:
		return scalar{kind: kindNumber, num: float64(x)}
	case int64:
		return scalar{kind: kindNumber, num: float64(x)}
	case int32:
		return scalar{kind: kindNumber, num: float64(x)}
	case *int:
		if x == nil {
			return scalar{}
		}
		return scalar{kind: kindNumber, num: float64(*x)}
	case float64:
		return scalar{kind: kindNumber, num: x}
	case float32:
		return scalar{kind: kindNumber, num: float64(x)}
	case bool:
		if x {
			return scalar{kind: kindNumber, num: 1}
		}
		return scalar{kind: kindNumber}
	case Record, map[string]any:
		return scalar{}
	case fmt.Stringer:
		return scalar{kind: kindString, str: x.String()}
	default:
		return scalar{kind: kindString, str: fmt.Sprint(x)}
	}
}

func (s scalar) isNull() bool {
	return s.kind == kindNull
}

// text is the string form used by search and field matchers.
func (s scalar) text() string {
	switch s.kind {
	case kindString:
		return s.str
	case kindNumber:
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	case kindTime:
		return s.at.Format(time.RFC3339)
	default:
		return ""
	}
}

// compare orders two non-null scalars. Values of different kinds order by kind.
func compare(a, b scalar) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case kindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case kindTime:
		switch {
		case a.at.Before(b.at):
			return -1
		case a.at.After(b.at):
			return 1
		}
		return 0
	default:
		return strings.Compare(a.str, b.str)
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
