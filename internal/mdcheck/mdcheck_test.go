// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officemd/internal/table"
	"github.com/pdiddy/officemd/pkg/types"
)

func TestInspect_Headings(t *testing.T) {
	r := Inspect([]byte("# One\n\ntext\n\n### Three\n"))
	assert.Equal(t, 2, r.Headings)
	assert.Equal(t, []int{1, 3}, r.HeadingLevels)
}

func TestInspect_ImagesAndLinks(t *testing.T) {
	r := Inspect([]byte("![Chart](charts/c.png)\n\n[data](data/c.json)\n"))
	assert.Equal(t, []string{"charts/c.png"}, r.Images)
	assert.Equal(t, []string{"data/c.json"}, r.Links)
}

func TestInspect_FlattenedTablesParseAsTables(t *testing.T) {
	tbl := types.NewTable(
		[]string{"Region", "Share | Note"},
		[]string{"North", "40 %", "extra"},
		[]string{"South"},
	)
	src := strings.Join(table.Flatten(tbl), "\n")

	r := Inspect([]byte(src))

	require.Len(t, r.Tables, 1)
	assert.Equal(t, TableInfo{Columns: 2, Rows: 2}, r.Tables[0])
}

func TestInspect_PageBanner(t *testing.T) {
	// The banner's closing rule underlines the bold line as a setext heading.
	r := Inspect([]byte("\n---\n**Page 1**\n---\n\nbody\n"))
	assert.Equal(t, []int{2}, r.HeadingLevels)
	assert.Equal(t, 1, r.ThematicBreaks)
}
