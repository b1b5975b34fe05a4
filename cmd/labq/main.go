// Command labq derives a table view over a JSON array of records and writes it as CSV or PDF.
//
//	labq --search acl --eq status=Active --sort paper_submission --columns venue:Venue,paper_submission venues.json
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/noah-isme/lab-portal-api/pkg/export"
	"github.com/noah-isme/lab-portal-api/pkg/query"
)

type options struct {
	search   string
	fields   []string
	eq       []string
	contains []string
	sort     []string
	order    string
	columns  []string
	format   string
	title    string
	input    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	records, err := readRecords(opts.input, in)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	q, err := buildQuery(opts, records)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}
	rows := query.Derive(records, q)

	columns := parseColumns(opts.columns, records)
	data := export.FromRecords(rows, columns)

	var body []byte
	switch strings.ToLower(opts.format) {
	case "", "csv":
		body, err = export.NewCSVExporter().Render(data)
	case "pdf":
		body, err = export.NewPDFExporter().Render(data, opts.title)
	default:
		err = fmt.Errorf("unsupported format %q", opts.format)
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if _, err := out.Write(body); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("labq", flag.ContinueOnError)
	fs.StringVarP(&opts.search, "search", "s", "", "Case-insensitive text matched against --fields")
	fs.StringSliceVar(&opts.fields, "fields", nil, "Fields searched by --search (default: every top-level field)")
	fs.StringArrayVar(&opts.eq, "eq", nil, "Exact filter field=value, repeatable")
	fs.StringArrayVar(&opts.contains, "contains", nil, "Substring filter field=value, repeatable")
	fs.StringArrayVar(&opts.sort, "sort", nil, "Sort key, dotted paths allowed; repeating the last key flips it to descending")
	fs.StringVar(&opts.order, "order", "", "Sort direction: asc or desc, overrides repeated --sort")
	fs.StringSliceVarP(&opts.columns, "columns", "c", nil, "Output columns as field[:Header]")
	fs.StringVarP(&opts.format, "format", "f", "csv", "Output format: csv or pdf")
	fs.StringVar(&opts.title, "title", "Records", "Title printed on PDF output")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 1 {
		return opts, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	opts.input = fs.Arg(0)
	return opts, nil
}

func readRecords(path string, stdin io.Reader) ([]query.Fields, error) {
	src := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	var records []query.Fields
	if err := json.NewDecoder(src).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func buildQuery(opts options, records []query.Fields) (query.Query, error) {
	q := query.Query{
		Search:       strings.TrimSpace(opts.search),
		SearchFields: opts.fields,
		Filters:      query.FilterSpec{},
		Sort:         sortSpec(opts.sort, opts.order),
	}
	if q.Search != "" && len(q.SearchFields) == 0 {
		q.SearchFields = topLevelFields(records)
	}
	for _, raw := range opts.eq {
		field, value, err := splitPair(raw)
		if err != nil {
			return q, err
		}
		q.Filters.Set(field, query.Exact(value))
	}
	for _, raw := range opts.contains {
		field, value, err := splitPair(raw)
		if err != nil {
			return q, err
		}
		q.Filters.Set(field, query.Contains(value))
	}
	return q, nil
}

// sortSpec replays each --sort like a header click, then applies an explicit --order.
func sortSpec(keys []string, order string) query.SortSpec {
	var spec query.SortSpec
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			spec = query.Toggle(spec, key)
		}
	}
	if spec.Active() && order != "" {
		spec.Direction = query.ParseDirection(order)
	}
	return spec
}

func splitPair(raw string) (string, string, error) {
	field, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(field) == "" {
		return "", "", fmt.Errorf("filter %q must look like field=value", raw)
	}
	return strings.TrimSpace(field), value, nil
}

func parseColumns(specs []string, records []query.Fields) []export.Column {
	if len(specs) == 0 {
		specs = topLevelFields(records)
	}
	columns := make([]export.Column, 0, len(specs))
	for _, spec := range specs {
		field, header, ok := strings.Cut(spec, ":")
		if !ok || header == "" {
			header = field
		}
		columns = append(columns, export.Column{Header: header, Field: field})
	}
	return columns
}

// topLevelFields lists field names by first appearance, alphabetical within a record.
func topLevelFields(records []query.Fields) []string {
	seen := make(map[string]struct{})
	var fields []string
	for _, r := range records {
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			fields = append(fields, k)
		}
	}
	return fields
}
