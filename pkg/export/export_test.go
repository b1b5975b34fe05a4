package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/pkg/query"
)

func TestFromRecordsKeepsOrderAndFormats(t *testing.T) {
	due := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	records := []query.Fields{
		{"text": "Submit draft", "due": &due, "owner": query.Fields{"name": "Ana"}},
		{"text": "Read paper", "due": (*time.Time)(nil)},
	}
	data := FromRecords(records, []Column{
		{Header: "Text", Field: "text"},
		{Header: "Due", Field: "due"},
		{Header: "Owner", Field: "owner.name"},
	})

	assert.Equal(t, []string{"Text", "Due", "Owner"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, map[string]string{"Text": "Submit draft", "Due": "2025-01-05", "Owner": "Ana"}, data.Rows[0])
	assert.Equal(t, map[string]string{"Text": "Read paper", "Due": "", "Owner": ""}, data.Rows[1])
}

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Name", "Note"},
		Rows: []map[string]string{
			{"Name": "ACL", "Note": "a, b"},
			{"Name": "=cmd()", "Note": ""},
		},
	}
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Name,Note\nACL,\"a, b\"\n'=cmd(),\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Venue", "Location"},
		Rows:    []map[string]string{{"Venue": "EMNLP", "Location": "Suzhou"}},
	}
	out, err := NewPDFExporter().Render(data, "Venues")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewPDFExporter().Render(Dataset{}, "empty")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "abcdefgh...", truncate("abcdefghijklmnopqrstuvwxyz", 20))
}
