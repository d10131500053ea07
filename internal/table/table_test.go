// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officemd/pkg/types"
)

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: Placeholder},
		{name: "whitespace only", in: " \t\n\r ", want: Placeholder},
		{name: "plain text", in: "Revenue", want: "Revenue"},
		{name: "trims ends", in: "  Revenue  ", want: "Revenue"},
		{name: "collapses interior whitespace", in: "a \n\n b\t\tc", want: "a b c"},
		{name: "escapes pipes", in: "a|b", want: "a&#124;b"},
		{name: "tightens percent", in: "Revenue 45 %", want: "Revenue 45%"},
		{name: "tightens percent across newline", in: "40\n%", want: "40%"},
		{name: "keeps tight percent", in: "12%", want: "12%"},
		{name: "total collapses", in: "Grand Total: 1,204", want: "Total"},
		{name: "total is case-insensitive", in: "SUBTOTAL", want: "Total"},
		{name: "total anywhere in text", in: "Total Inventory Report", want: "Total"},
		{name: "non-breaking space counts as whitespace", in: "a\u00a0\u00a0b", want: "a b"},
		{name: "placeholder is stable", in: Placeholder, want: Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCell(tt.in))
		})
	}
}

func TestNormalizeCell_Idempotent(t *testing.T) {
	inputs := []string{
		"", "  ", "x", "a | b", "40 %", "Total due", " multi\nline\ttext ",
		"&#124;", "50 % of 20 %", "–", " ", "Ratio 3 % | 4 %",
	}
	for _, in := range inputs {
		once := NormalizeCell(in)
		assert.Equal(t, once, NormalizeCell(once), "input %q", in)
	}
}

func TestFlatten_ZeroRows(t *testing.T) {
	assert.Empty(t, Flatten(types.Table{}))
	assert.Empty(t, Flatten(types.Table{Rows: []types.Row{}}))
}

func TestFlatten_AllRowsEmpty(t *testing.T) {
	tbl := types.NewTable([]string{"", " "}, []string{"\n"})
	assert.Empty(t, Flatten(tbl))
}

func TestFlatten_Regular(t *testing.T) {
	tbl := types.NewTable(
		[]string{"Region", "Share"},
		[]string{"North", "40 %"},
		[]string{"South", "60 %"},
	)

	got := Flatten(tbl)

	want := []string{
		"| Region | Share |",
		"| --- | --- |",
		"| North | 40% |",
		"| South | 60% |",
		"",
	}
	assert.Equal(t, want, got)
}

func TestFlatten_RaggedPadding(t *testing.T) {
	tbl := types.NewTable([]string{"A", "B", "C"}, []string{"x", "y"})

	got := Flatten(tbl)

	require.Len(t, got, 4)
	assert.Equal(t, "| x | y | – |", got[2])
}

func TestFlatten_RaggedTruncation(t *testing.T) {
	tbl := types.NewTable([]string{"A", "B"}, []string{"x", "y", "z"})

	got := Flatten(tbl)

	require.Len(t, got, 4)
	assert.Equal(t, "| x | y |", got[2])
}

func TestFlatten_DropsPlaceholderRowsBeforeHeader(t *testing.T) {
	tbl := types.NewTable(
		[]string{"", "  "},
		[]string{"Name", "Value"},
		[]string{"", ""},
		[]string{"a", ""},
	)

	got := Flatten(tbl)

	want := []string{
		"| Name | Value |",
		"| --- | --- |",
		"| a | – |",
		"",
	}
	assert.Equal(t, want, got)
}

func TestFlatten_WidthInvariant(t *testing.T) {
	tables := []types.Table{
		types.NewTable([]string{"a"}, []string{"1", "2", "3"}, []string{}),
		types.NewTable([]string{"a", "b", "c", "d"}, []string{"1"}, []string{"1", "2", "3", "4", "5"}),
		types.NewTable([]string{"h|1", "h2"}, []string{"x|y|z"}, []string{"p", "q|r"}),
	}

	for i, tbl := range tables {
		lines := Flatten(tbl)
		require.NotEmpty(t, lines, "table %d", i)
		width := fieldCount(lines[0])
		for _, line := range lines[1:] {
			if line == "" {
				continue
			}
			assert.Equal(t, width, fieldCount(line), "table %d line %q", i, line)
		}
	}
}

func TestFlatten_PipeEscapeLeavesNoUnescapedPipes(t *testing.T) {
	tbl := types.NewTable([]string{"Col"}, []string{"a | b || c"})

	lines := Flatten(tbl)

	require.Len(t, lines, 4)
	body := lines[2]
	inner := strings.TrimSuffix(strings.TrimPrefix(body, "| "), " |")
	assert.NotContains(t, inner, "|")
	assert.Equal(t, "| a &#124; b &#124;&#124; c |", body)
}

func TestFlatten_EndsWithBlankLine(t *testing.T) {
	lines := Flatten(types.NewTable([]string{"a"}))
	assert.Equal(t, []string{"| a |", "| --- |", ""}, lines)
}

func TestFlatten_NestedPrecedence(t *testing.T) {
	nested := types.NewTable([]string{"K", "V"}, []string{"k1", "v1"})
	tbl := types.Table{Rows: []types.Row{{
		Cells: []types.Cell{{Text: "Outer paragraph text", Tables: []types.Table{nested}}},
	}}}

	got := Flatten(tbl)

	want := []string{
		"| K | V |",
		"| --- | --- |",
		"| k1 | v1 |",
		"",
	}
	assert.Equal(t, want, got)
	assert.NotContains(t, strings.Join(got, "\n"), "Outer paragraph")
}

func TestFlatten_MultipleNestedTables(t *testing.T) {
	first := types.NewTable([]string{"A"}, []string{"1"})
	empty := types.NewTable([]string{"", ""})
	second := types.NewTable([]string{"B", "C"}, []string{"2"})

	tbl := types.Table{Rows: []types.Row{
		{Cells: []types.Cell{
			{Text: "left", Tables: []types.Table{first}},
			{Text: "plain cell"},
		}},
		{Cells: []types.Cell{
			{Tables: []types.Table{empty, second}},
		}},
	}}

	got := Flatten(tbl)

	want := []string{
		"| A |",
		"| --- |",
		"| 1 |",
		"",
		"| B | C |",
		"| --- | --- |",
		"| 2 | – |",
		"",
	}
	assert.Equal(t, want, got)
}

func TestFlatten_NestedAllEmpty(t *testing.T) {
	tbl := types.Table{Rows: []types.Row{{
		Cells: []types.Cell{{Text: "only text", Tables: []types.Table{{}}}},
	}}}
	assert.Empty(t, Flatten(tbl))
}

func TestFlatten_DoesNotMutateInput(t *testing.T) {
	tbl := types.NewTable([]string{"A", "B", "C"}, []string{" x "})
	before := tbl.TextRows()

	Flatten(tbl)

	assert.Equal(t, before, tbl.TextRows())
}

// fieldCount counts pipe-delimited fields in a rendered table line.
func fieldCount(line string) int {
	return strings.Count(line, "|") - 1
}
