package report

import "github.com/goccy/go-json"

type jsonRenderer struct{}

func (jsonRenderer) Render(doc *Document) (*File, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return &File{Data: data, ContentType: "application/json", Extension: "json"}, nil
}
