package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/lab-portal-api/pkg/query"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Column maps a record field onto an export header.
type Column struct {
	Header string
	Field  string
	// Format renders the resolved value; nil uses FormatValue.
	Format func(any) string
}

// FromRecords builds a dataset from derived view records in their given order.
func FromRecords[T query.Record](records []T, columns []Column) Dataset {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			format := col.Format
			if format == nil {
				format = FormatValue
			}
			row[col.Header] = format(query.Resolve(r, col.Field))
		}
		rows = append(rows, row)
	}
	return Dataset{Headers: headers, Rows: rows}
}

// FormatValue renders a cell: dates as YYYY-MM-DD, missing values as "".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
