// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdcheck parses generated Markdown with a GFM parser and reports
// the structure it recognised.
package mdcheck

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// TableInfo describes one parsed table.
type TableInfo struct {
	Columns int
	// Rows counts body rows, excluding the header.
	Rows int
}

// Report summarises the block structure of a Markdown document.
type Report struct {
	Headings       int
	HeadingLevels  []int
	Tables         []TableInfo
	Images         []string
	Links          []string
	ThematicBreaks int
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Inspect parses src and walks the resulting AST.
func Inspect(src []byte) Report {
	var r Report
	doc := md.Parser().Parse(text.NewReader(src))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			r.Headings++
			r.HeadingLevels = append(r.HeadingLevels, node.Level)
		case *ast.ThematicBreak:
			r.ThematicBreaks++
		case *ast.Image:
			r.Images = append(r.Images, string(node.Destination))
		case *ast.Link:
			r.Links = append(r.Links, string(node.Destination))
		case *east.Table:
			info := TableInfo{Columns: len(node.Alignments)}
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*east.TableRow); ok {
					info.Rows++
				}
			}
			r.Tables = append(r.Tables, info)
		}
		return ast.WalkContinue, nil
	})
	return r
}
