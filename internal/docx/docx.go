// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx walks the body of a DOCX word-processing document and
// yields its top-level structure (paragraphs, tables, and explicit page
// breaks) in document order.
package docx

import (
	"fmt"
	"iter"

	"github.com/pdiddy/officemd/internal/ooxml"
	"github.com/pdiddy/officemd/pkg/types"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

// Document is an opened DOCX package.
type Document struct {
	pkg    *ooxml.Package
	styles map[string]string // style ID -> display name
	err    error
}

// Open opens the DOCX file at path. A file that is not a ZIP archive or
// lacks word/document.xml yields an error wrapping ooxml.ErrInvalidPackage.
func Open(path string) (*Document, error) {
	pkg, err := ooxml.Open(path, documentPart)
	if err != nil {
		return nil, err
	}

	styles, err := loadStyles(pkg)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("loading styles: %w", err)
	}

	return &Document{pkg: pkg, styles: styles}, nil
}

// IsValid reports whether path is a ZIP archive containing
// word/document.xml.
func IsValid(path string) bool {
	return ooxml.HasPart(path, documentPart)
}

// Close releases the underlying archive.
func (d *Document) Close() error {
	return d.pkg.Close()
}

// Err returns the error, if any, that stopped the most recent Elements
// iteration early.
func (d *Document) Err() error {
	return d.err
}

// Elements returns the document's top-level body elements. A page-break
// marker precedes every element that contains a hard page break. Each
// call re-reads the document part, so the sequence can be ranged over
// more than once. Read failures end the sequence and are reported by Err.
func (d *Document) Elements() iter.Seq[types.Element] {
	return func(yield func(types.Element) bool) {
		d.err = nil
		root, err := d.pkg.ParsePart(documentPart)
		if err != nil {
			d.err = fmt.Errorf("parsing %s: %w", documentPart, err)
			return
		}
		body := root.Child("body")
		if body == nil {
			return
		}
		w := walker{styles: d.styles}
		w.body(body, yield)
	}
}

// ReadAll collects every element of the document.
func (d *Document) ReadAll() ([]types.Element, error) {
	var out []types.Element
	for el := range d.Elements() {
		out = append(out, el)
	}
	return out, d.Err()
}
