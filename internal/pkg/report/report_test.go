package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *Document {
	return &Document{
		Title:       "Weekly performance",
		ReportType:  "performance",
		GeneratedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		Filters:     map[string]string{"days": "7"},
		Sections: []Section{
			{
				Name:    "Content types",
				Columns: []string{"content_type", "count", "avg_engagement_rate"},
				Rows:    [][]string{{"reel", "3", "4.20"}, {"static", "1", "1.00"}},
			},
			{Name: "Hashtags", Columns: []string{"tag", "usage"}},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	f, err := Render("json", sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, "application/json", f.ContentType)

	var back Document
	require.NoError(t, json.Unmarshal(f.Data, &back))
	assert.Len(t, back.Sections, 2)
}

func TestRenderCSV(t *testing.T) {
	f, err := Render("csv", sampleDoc())
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(f.Data, utf8BOM))

	r := csv.NewReader(bytes.NewReader(f.Data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "Weekly performance"}, records[0])
	assert.Contains(t, records, []string{"reel", "3", "4.20"})
	assert.Contains(t, records, []string{"filter.days", "7"})
}

func TestRenderExcelHasBOM(t *testing.T) {
	f, err := Render("excel", sampleDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(f.Data, utf8BOM))
	assert.Contains(t, string(f.Data), "\r\n")
	assert.Equal(t, "csv", f.Extension)
}

func TestRenderPDF(t *testing.T) {
	f, err := Render("pdf", sampleDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(f.Data, []byte("%PDF-")))
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render("docx", sampleDoc())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
