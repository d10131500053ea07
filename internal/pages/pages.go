// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pages splits a word-processing document into Markdown files,
// one per explicit page.
package pages

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/pdiddy/officemd/internal/table"
	"github.com/pdiddy/officemd/pkg/types"
)

// Page is the Markdown of one explicit page, as lines.
type Page struct {
	Number int
	Lines  []string
}

// Markdown joins the page lines with newlines.
func (p Page) Markdown() string {
	return strings.Join(p.Lines, "\n")
}

// Header returns the banner line that opens page n.
func Header(n int) string {
	return fmt.Sprintf("\n---\n**Page %d**\n---\n", n)
}

// Paginate renders a document's elements into pages. Page 1 is always
// open; each page-break marker closes the current page and opens the
// next. The last page is emitted even when it holds only its header.
func Paginate(seq iter.Seq[types.Element]) []Page {
	var pages []Page
	cur := Page{Number: 1, Lines: []string{Header(1)}}

	for el := range seq {
		switch el.Kind {
		case types.ElementPageBreak:
			pages = append(pages, cur)
			next := cur.Number + 1
			cur = Page{Number: next, Lines: []string{Header(next)}}
		case types.ElementParagraph:
			if el.Paragraph == nil {
				continue
			}
			text := strings.TrimSpace(el.Paragraph.Text)
			if text == "" {
				continue
			}
			cur.Lines = append(cur.Lines, paragraphLine(text, el.Paragraph.StyleName), "")
		case types.ElementTable:
			if el.Table == nil {
				continue
			}
			cur.Lines = append(cur.Lines, table.Flatten(*el.Table)...)
		}
	}

	return append(pages, cur)
}

// paragraphLine prefixes heading paragraphs with #'s. The level is the
// last word of the style name when it is a number ("Heading 3"), else 1.
func paragraphLine(text, style string) string {
	if !strings.HasPrefix(style, "Heading") {
		return text
	}
	level := 1
	if fields := strings.Fields(style); len(fields) > 0 {
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil && n >= 0 {
			level = n
		}
	}
	return strings.Repeat("#", level) + " " + text
}
