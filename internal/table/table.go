// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table flattens tabular structures into column-aligned Markdown
// tables. Both conversion pipelines route every detected table through
// Flatten so the output format is identical across document types.
package table

import (
	"regexp"
	"strings"

	"github.com/pdiddy/officemd/pkg/types"
)

// Placeholder fills empty and missing cells.
const Placeholder = "–"

// pipeEscape is the HTML entity for a literal pipe inside a cell.
const pipeEscape = "&#124;"

var percentPattern = regexp.MustCompile(`(\p{Nd}+)\s*%`)

var controlReplacer = strings.NewReplacer(
	"|", pipeEscape,
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

// NormalizeCell cleans raw cell text for use inside a Markdown table.
// Empty input becomes Placeholder, pipes are escaped, whitespace runs
// collapse to one space, "40 %" tightens to "40%", and any text mentioning
// "total" (in any case) becomes exactly "Total".
func NormalizeCell(raw string) string {
	text := controlReplacer.Replace(raw)
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Placeholder
	}
	text = percentPattern.ReplaceAllString(text, "${1}%")
	if strings.Contains(strings.ToLower(text), "total") {
		return "Total"
	}
	return text
}

// Rows normalizes every cell of t and drops rows whose cells are all
// placeholders. Nested tables are ignored.
func Rows(t types.Table) [][]string {
	var rows [][]string
	for _, r := range t.Rows {
		row := make([]string, len(r.Cells))
		keep := false
		for i, c := range r.Cells {
			row[i] = NormalizeCell(c.Text)
			if row[i] != Placeholder {
				keep = true
			}
		}
		if keep {
			rows = append(rows, row)
		}
	}
	return rows
}

// Render emits a Markdown table from normalized rows. The first row fixes
// the width; shorter rows are padded with Placeholder and longer rows are
// truncated. The result ends with one empty line. No rows renders nothing.
func Render(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	width := len(header)

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, formatRow(header))

	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}
	lines = append(lines, formatRow(sep))

	for _, row := range rows[1:] {
		cells := make([]string, width)
		for i := range cells {
			if i < len(row) {
				cells[i] = row[i]
			} else {
				cells[i] = Placeholder
			}
		}
		lines = append(lines, formatRow(cells))
	}

	return append(lines, "")
}

// Flatten converts t to Markdown table lines. A table with no rows, or
// whose rows are all empty, yields nil. When any cell holds nested tables,
// only the nested tables are rendered, one after another with a blank line
// between them; the outer cells' own text is dropped.
func Flatten(t types.Table) []string {
	if len(t.Rows) == 0 {
		return nil
	}
	if HasNested(t) {
		return flattenNested(t)
	}
	return Render(Rows(t))
}

// HasNested reports whether any cell of t contains a nested table.
func HasNested(t types.Table) bool {
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			if len(c.Tables) > 0 {
				return true
			}
		}
	}
	return false
}

func flattenNested(t types.Table) []string {
	var lines []string
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			for _, nested := range c.Tables {
				rendered := Render(Rows(nested))
				if len(rendered) == 0 {
					continue
				}
				// Render ends with an empty line, which already separates
				// consecutive nested tables.
				lines = append(lines, rendered...)
			}
		}
	}
	return lines
}

func formatRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
