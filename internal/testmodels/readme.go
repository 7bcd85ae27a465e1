package testmodels

import "fmt"

// Element is one block of a README document.
type Element struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Content string            `json:"content,omitempty"`
	Level   int               `json:"level,omitempty"`
	Items   []string          `json:"items,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
	Hidden  bool              `json:"hidden,omitempty"`
}

// Document is the state a README editor works on.
type Document struct {
	Elements  []Element         `json:"elements"`
	Variables map[string]string `json:"variables,omitempty"`
}

// NewDocument returns a small document with a title and one paragraph.
func NewDocument(title string) Document {
	return Document{
		Elements: []Element{
			{ID: "title", Type: "header", Content: title, Level: 1},
			{ID: "intro", Type: "text", Content: "A short description."},
		},
		Variables: map[string]string{"projectName": title},
	}
}

// Append returns a copy of d with e added at the end.
func (d Document) Append(e Element) Document {
	elements := make([]Element, 0, len(d.Elements)+1)
	elements = append(elements, d.Elements...)
	d.Elements = append(elements, e)
	return d
}

// Paragraph returns a text element with a predictable ID.
func Paragraph(n int) Element {
	return Element{
		ID:      fmt.Sprintf("p%d", n),
		Type:    "text",
		Content: fmt.Sprintf("Paragraph %d.", n),
	}
}
