package report

import (
	"errors"
	"time"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// Section 报告中的一张表
type Section struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Document 与输出格式无关的报告内容
type Document struct {
	Title       string            `json:"title"`
	ReportType  string            `json:"report_type"`
	Description string            `json:"description,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	Filters     map[string]string `json:"filters,omitempty"`
	Summary     map[string]any    `json:"summary,omitempty"`
	Sections    []Section         `json:"sections"`
}

// File 渲染结果
type File struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Renderer 单一格式的渲染器
type Renderer interface {
	Render(doc *Document) (*File, error)
}

var renderers = map[string]Renderer{
	"json":  jsonRenderer{},
	"csv":   csvRenderer{excel: false},
	"excel": csvRenderer{excel: true},
	"pdf":   pdfRenderer{},
}

// Render 按格式名渲染
func Render(format string, doc *Document) (*File, error) {
	r, ok := renderers[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return r.Render(doc)
}

// Supported 是否支持该输出格式
func Supported(format string) bool {
	_, ok := renderers[format]
	return ok
}
