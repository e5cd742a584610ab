package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth  = 190.0
	lineHeight = 6.0
)

type pdfRenderer struct{}

func (pdfRenderer) Render(doc *Document) (*File, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, tr(doc.Title), "", "L", false)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s report, generated %s", doc.ReportType, doc.GeneratedAt.UTC().Format(time.RFC1123))), "", "L", false)
	if doc.Description != "" {
		pdf.MultiCell(0, 5, tr(doc.Description), "", "L", false)
	}
	if len(doc.Filters) > 0 {
		keys := make([]string, 0, len(doc.Filters))
		for k := range doc.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pdf.MultiCell(0, 5, tr(k+": "+doc.Filters[k]), "", "L", false)
		}
	}
	pdf.Ln(4)

	for _, sec := range doc.Sections {
		writeTable(pdf, tr, sec)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &File{Data: buf.Bytes(), ContentType: "application/pdf", Extension: "pdf"}, nil
}

func writeTable(pdf *fpdf.Fpdf, tr func(string) string, sec Section) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(sec.Name), "", 1, "L", false, 0, "")

	if len(sec.Columns) == 0 {
		return
	}
	colWidth := pageWidth / float64(len(sec.Columns))

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range sec.Columns {
		pdf.CellFormat(colWidth, lineHeight, fit(pdf, tr(col), colWidth), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetFillColor(255, 255, 255)
	if len(sec.Rows) == 0 {
		pdf.CellFormat(pageWidth, lineHeight, "No data", "1", 1, "C", false, 0, "")
	}
	for _, row := range sec.Rows {
		for i := range sec.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, lineHeight, fit(pdf, tr(cell), colWidth), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// fit 截断超出单元格宽度的文本
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > limit {
		text = text[:len(text)-1]
	}
	return text + "..."
}
