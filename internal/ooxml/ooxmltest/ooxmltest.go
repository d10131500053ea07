// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ooxmltest builds small OOXML packages on disk for tests.
package ooxmltest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Namespace declarations shared by fixture parts.
const (
	NSWord   = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	NSPres   = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	NSDraw   = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	NSRel    = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	NSChart  = `xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"`
	NSPkgRel = `xmlns="http://schemas.openxmlformats.org/package/2006/relationships"`
)

// WriteZip writes a ZIP archive with the given parts into dir and returns
// its path. Parts are written in name order so fixtures are reproducible.
func WriteZip(t testing.TB, dir, name string, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture %s: %v", path, err)
	}
	defer f.Close()

	names := make([]string, 0, len(parts))
	for n := range parts {
		names = append(names, n)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, n := range names {
		w, err := zw.Create(n)
		if err != nil {
			t.Fatalf("adding %s: %v", n, err)
		}
		if _, err := w.Write([]byte(parts[n])); err != nil {
			t.Fatalf("writing %s: %v", n, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture %s: %v", path, err)
	}
	return path
}

// WordDocument wraps body XML in a minimal word/document.xml.
func WordDocument(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + NSWord + ` ` + NSRel + `><w:body>` + body + `</w:body></w:document>`
}

// DocxParts returns the parts of a minimal DOCX with the given body and
// an optional styles part.
func DocxParts(body, styles string) map[string]string {
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   WordDocument(body),
	}
	if styles != "" {
		parts["word/styles.xml"] = `<?xml version="1.0" encoding="UTF-8"?><w:styles ` + NSWord + `>` + styles + `</w:styles>`
	}
	return parts
}

// Para builds a w:p with an optional style ID and one run per text.
func Para(styleID string, texts ...string) string {
	s := "<w:p>"
	if styleID != "" {
		s += `<w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr>`
	}
	for _, t := range texts {
		s += `<w:r><w:t xml:space="preserve">` + t + `</w:t></w:r>`
	}
	return s + "</w:p>"
}

// PageBreakPara builds a paragraph that starts with a hard page break.
func PageBreakPara(text string) string {
	return `<w:p><w:r><w:br w:type="page"/></w:r><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

// Table builds a w:tbl from rows of raw cell XML (each cell's inner
// content, typically one or more paragraphs).
func Table(rows ...[]string) string {
	s := "<w:tbl>"
	for _, r := range rows {
		s += "<w:tr>"
		for _, c := range r {
			if len(c) >= 5 && c[:5] == "<w:tc" {
				s += c
				continue
			}
			s += "<w:tc>" + c + "</w:tc>"
		}
		s += "</w:tr>"
	}
	return s + "</w:tbl>"
}

// TextTable builds a w:tbl whose cells each hold one paragraph.
func TextTable(rows ...[]string) string {
	xmlRows := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(r))
		for j, text := range r {
			cells[j] = Para("", text)
		}
		xmlRows[i] = cells
	}
	return Table(xmlRows...)
}

// HeadingStyles declares Heading 1-3 and Normal paragraph styles with the
// lowercase built-in names Word writes.
const HeadingStyles = `<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="HeadingCustom"><w:name w:val="Heading Custom"/></w:style>`
