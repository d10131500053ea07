// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"strconv"
	"strings"

	"github.com/pdiddy/officemd/internal/ooxml"
	"github.com/pdiddy/officemd/pkg/types"
)

type walker struct {
	styles map[string]string
}

// body yields the elements of a w:body (or w:sdtContent) in order. It
// returns false when the consumer stopped early.
func (w walker) body(n *ooxml.Node, yield func(types.Element) bool) bool {
	for i := range n.Nodes {
		child := &n.Nodes[i]
		switch child.Name() {
		case "sdt":
			content := child.Child("sdtContent")
			if content == nil {
				continue
			}
			if !w.body(content, yield) {
				return false
			}
		case "p":
			if hasPageBreak(child) && !yield(types.Element{Kind: types.ElementPageBreak}) {
				return false
			}
			p := w.paragraph(child)
			if !yield(types.Element{Kind: types.ElementParagraph, Paragraph: &p}) {
				return false
			}
		case "tbl":
			if hasPageBreak(child) && !yield(types.Element{Kind: types.ElementPageBreak}) {
				return false
			}
			t := w.table(child)
			if !yield(types.Element{Kind: types.ElementTable, Table: &t}) {
				return false
			}
		default:
			// Section properties, bookmarks at body level and similar
			// elements carry no text, but a stray page break still counts.
			if hasPageBreak(child) && !yield(types.Element{Kind: types.ElementPageBreak}) {
				return false
			}
		}
	}
	return true
}

func hasPageBreak(n *ooxml.Node) bool {
	found := false
	n.Walk(func(c *ooxml.Node) bool {
		if found {
			return false
		}
		if c.Name() == "br" && c.Attr("type") == "page" {
			found = true
			return false
		}
		return true
	})
	return found
}

func (w walker) paragraph(p *ooxml.Node) types.Paragraph {
	styleID := ""
	if ps := p.Path("pPr", "pStyle"); ps != nil {
		styleID = ps.Attr("val")
	}
	name, ok := w.styles[styleID]
	if !ok {
		name = styleID
	}
	return types.Paragraph{Text: paragraphText(p), StyleName: name}
}

// paragraphText concatenates the visible text of a paragraph. Deleted
// revisions and field instructions are skipped, as is text-box content,
// which belongs to the drawing rather than the paragraph. Only the
// Fallback branch of mc:AlternateContent is read.
func paragraphText(p *ooxml.Node) string {
	var b strings.Builder
	p.Walk(func(n *ooxml.Node) bool {
		switch n.Name() {
		case "del", "instrText", "delText", "pPr", "rPr", "Choice", "txbxContent":
			return false
		case "t":
			b.WriteString(n.Text)
			return false
		case "tab":
			b.WriteByte('\t')
		case "br":
			if n.Attr("type") != "page" {
				b.WriteByte('\n')
			}
		case "cr":
			b.WriteByte('\n')
		case "noBreakHyphen":
			b.WriteByte('-')
		}
		return true
	})
	return b.String()
}

// vmergeState remembers the last cell seen in each grid column so
// vertical-merge continuations can repeat it, nested tables included.
type vmergeState map[int]types.Cell

func (w walker) table(tbl *ooxml.Node) types.Table {
	var t types.Table
	above := vmergeState{}
	for _, tr := range directRows(tbl) {
		var row types.Row
		col := 0
		for _, tc := range directCells(tr) {
			cell := w.cell(tc)
			span := gridSpan(tc)
			if isContinuation(tc) {
				cell = above[col]
			}
			for i := range span {
				above[col+i] = cell
				row.Cells = append(row.Cells, cell)
			}
			col += span
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// directRows returns the w:tr rows of a table, looking through
// row-level content controls.
func directRows(tbl *ooxml.Node) []*ooxml.Node {
	var rows []*ooxml.Node
	for i := range tbl.Nodes {
		c := &tbl.Nodes[i]
		switch c.Name() {
		case "tr":
			rows = append(rows, c)
		case "sdt":
			if content := c.Child("sdtContent"); content != nil {
				rows = append(rows, content.Children("tr")...)
			}
		}
	}
	return rows
}

func directCells(tr *ooxml.Node) []*ooxml.Node {
	var cells []*ooxml.Node
	for i := range tr.Nodes {
		c := &tr.Nodes[i]
		switch c.Name() {
		case "tc":
			cells = append(cells, c)
		case "sdt":
			if content := c.Child("sdtContent"); content != nil {
				cells = append(cells, content.Children("tc")...)
			}
		}
	}
	return cells
}

// cell joins the trimmed, non-empty paragraph texts of a cell with single
// spaces. Tables placed directly in the cell become nested tables; their
// text does not leak into the cell text.
func (w walker) cell(tc *ooxml.Node) types.Cell {
	var parts []string
	var nested []types.Table
	var visit func(n *ooxml.Node)
	visit = func(n *ooxml.Node) {
		for i := range n.Nodes {
			c := &n.Nodes[i]
			switch c.Name() {
			case "p":
				if text := strings.TrimSpace(paragraphText(c)); text != "" {
					parts = append(parts, text)
				}
			case "tbl":
				nested = append(nested, w.table(c))
			case "sdt":
				if content := c.Child("sdtContent"); content != nil {
					visit(content)
				}
			}
		}
	}
	visit(tc)
	return types.Cell{Text: strings.Join(parts, " "), Tables: nested}
}

func gridSpan(tc *ooxml.Node) int {
	gs := tc.Path("tcPr", "gridSpan")
	if gs == nil {
		return 1
	}
	n, err := strconv.Atoi(gs.Attr("val"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func isContinuation(tc *ooxml.Node) bool {
	vm := tc.Path("tcPr", "vMerge")
	if vm == nil {
		return false
	}
	return vm.Attr("val") != "restart"
}
