package report

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"
)

// utf8BOM 让 Excel 以 UTF-8 打开
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvRenderer struct {
	excel bool
}

func (r csvRenderer) Render(doc *Document) (*File, error) {
	var buf bytes.Buffer
	if r.excel {
		buf.Write(utf8BOM)
	}
	w := csv.NewWriter(&buf)
	w.UseCRLF = r.excel

	records := [][]string{
		{"title", doc.Title},
		{"report_type", doc.ReportType},
		{"generated_at", doc.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	keys := make([]string, 0, len(doc.Filters))
	for k := range doc.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		records = append(records, []string{"filter." + k, doc.Filters[k]})
	}

	for _, sec := range doc.Sections {
		records = append(records, []string{}, []string{sec.Name}, sec.Columns)
		records = append(records, sec.Rows...)
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}

	if r.excel {
		return &File{Data: buf.Bytes(), ContentType: "application/vnd.ms-excel", Extension: "csv"}, nil
	}
	return &File{Data: buf.Bytes(), ContentType: "text/csv", Extension: "csv"}, nil
}
