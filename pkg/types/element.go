// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ElementKind classifies a top-level structural element of a document body.
type ElementKind string

const (
	ElementParagraph ElementKind = "paragraph"
	ElementTable     ElementKind = "table"
	ElementPageBreak ElementKind = "page_break"
)

// Paragraph is a body paragraph with its resolved style name
// (e.g. "Heading 2", "Normal").
type Paragraph struct {
	Text      string `json:"text" yaml:"text"`
	StyleName string `json:"style_name,omitempty" yaml:"style_name,omitempty"`
}

// Element is one item of a document's top-level structure. Exactly one of
// Paragraph or Table is set for the matching kind; page breaks carry no
// payload.
type Element struct {
	Kind      ElementKind `json:"kind" yaml:"kind"`
	Paragraph *Paragraph  `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Table     *Table      `json:"table,omitempty" yaml:"table,omitempty"`
}
