// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Cell is one table cell as produced by a document walker.
type Cell struct {
	// Text is the raw cell text. Multi-paragraph cells are already joined
	// with single spaces; the text may still carry newlines, tabs, or pipes.
	Text string `json:"text" yaml:"text"`

	// Tables holds tables nested directly inside the cell.
	Tables []Table `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Row is an ordered sequence of cells. Rows of one table may differ in
// length.
type Row struct {
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Table is an ordered sequence of rows. The first row is the header.
type Table struct {
	Rows []Row `json:"rows" yaml:"rows"`
}

// NewTable builds a Table from plain cell text, one slice per row.
func NewTable(rows ...[]string) Table {
	t := Table{Rows: make([]Row, len(rows))}
	for i, r := range rows {
		cells := make([]Cell, len(r))
		for j, text := range r {
			cells[j] = Cell{Text: text}
		}
		t.Rows[i] = Row{Cells: cells}
	}
	return t
}

// TextRows returns the raw text of every cell, row by row.
func (t Table) TextRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			row[j] = c.Text
		}
		out[i] = row
	}
	return out
}
