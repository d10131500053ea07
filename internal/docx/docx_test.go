// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officemd/internal/ooxml"
	"github.com/pdiddy/officemd/internal/ooxml/ooxmltest"
	"github.com/pdiddy/officemd/pkg/types"
)

func openFixture(t *testing.T, body, styles string) *Document {
	t.Helper()
	path := ooxmltest.WriteZip(t, t.TempDir(), "doc.docx", ooxmltest.DocxParts(body, styles))
	doc, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { doc.Close() })
	return doc
}

func kinds(elems []types.Element) []types.ElementKind {
	out := make([]types.ElementKind, len(elems))
	for i, e := range elems {
		out[i] = e.Kind
	}
	return out
}

func TestOpen_InvalidPackages(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "plain.docx")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o644))

	noDocument := ooxmltest.WriteZip(t, dir, "empty.docx", map[string]string{
		"[Content_Types].xml": "<Types/>",
	})

	for _, path := range []string{notZip, noDocument, filepath.Join(dir, "missing.docx")} {
		_, err := Open(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, ooxml.ErrInvalidPackage, path)
		assert.False(t, IsValid(path), path)
	}
}

func TestIsValid(t *testing.T) {
	path := ooxmltest.WriteZip(t, t.TempDir(), "ok.docx", ooxmltest.DocxParts(ooxmltest.Para("", "x"), ""))
	assert.True(t, IsValid(path))
}

func TestElements_ParagraphsWithStyles(t *testing.T) {
	body := ooxmltest.Para("Heading1", "Intro") +
		ooxmltest.Para("", "Plain ", "text") +
		ooxmltest.Para("HeadingCustom", "Custom")
	doc := openFixture(t, body, ooxmltest.HeadingStyles)

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 3)

	assert.Equal(t, types.Paragraph{Text: "Intro", StyleName: "Heading 1"}, *elems[0].Paragraph)
	assert.Equal(t, types.Paragraph{Text: "Plain text", StyleName: "Normal"}, *elems[1].Paragraph)
	assert.Equal(t, "Heading Custom", elems[2].Paragraph.StyleName)
}

func TestElements_NoStylesPart(t *testing.T) {
	doc := openFixture(t, ooxmltest.Para("Heading2", "x")+ooxmltest.Para("", "y"), "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, "Heading2", elems[0].Paragraph.StyleName)
	assert.Equal(t, "Normal", elems[1].Paragraph.StyleName)
}

func TestElements_PageBreakPrecedesContainingElement(t *testing.T) {
	body := ooxmltest.Para("", "one") +
		ooxmltest.PageBreakPara("two") +
		ooxmltest.Para("", "three")
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []types.ElementKind{
		types.ElementParagraph,
		types.ElementPageBreak,
		types.ElementParagraph,
		types.ElementParagraph,
	}, kinds(elems))
	assert.Equal(t, "two", elems[2].Paragraph.Text)
}

func TestElements_PageBreakInsideTable(t *testing.T) {
	body := ooxmltest.Table([]string{ooxmltest.PageBreakPara("cell")})
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []types.ElementKind{types.ElementPageBreak, types.ElementTable}, kinds(elems))
}

func TestElements_RunContent(t *testing.T) {
	body := `<w:p>` +
		`<w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t><w:cr/></w:r>` +
		`<w:hyperlink><w:r><w:t>link</w:t></w:r></w:hyperlink>` +
		`<w:ins><w:r><w:t>+ins</w:t></w:r></w:ins>` +
		`<w:del><w:r><w:delText>gone</w:delText></w:r></w:del>` +
		`<w:r><w:noBreakHyphen/><w:instrText>PAGE</w:instrText></w:r>` +
		`</w:p>`
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "a\tb\nc\nlink+ins-", elems[0].Paragraph.Text)
}

func TestElements_TextBoxesAreSkipped(t *testing.T) {
	box := `<w:txbxContent>` + ooxmltest.Para("", "Box") + `</w:txbxContent>`
	alt := `<w:r><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
		`<mc:Choice Requires="wps"><w:drawing><wps:txbx xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape">` + box + `</wps:txbx></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><v:textbox xmlns:v="urn:schemas-microsoft-com:vml">` + box + `</v:textbox></w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>`
	para := `<w:p><w:r><w:t xml:space="preserve">Lead </w:t></w:r>` + alt + `</w:p>`
	body := para + ooxmltest.Table([]string{para})
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, "Lead ", elems[0].Paragraph.Text)
	assert.Equal(t, [][]string{{"Lead"}}, elems[1].Table.TextRows())
}

func TestElements_AlternateContentReadsFallback(t *testing.T) {
	body := `<w:p><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
		`<mc:Choice Requires="w14"><w:r><w:t>new</w:t></w:r></mc:Choice>` +
		`<mc:Fallback><w:r><w:t>old</w:t></w:r></mc:Fallback>` +
		`</mc:AlternateContent></w:p>`
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "old", elems[0].Paragraph.Text)
}

func TestElements_DescendsIntoContentControls(t *testing.T) {
	body := `<w:sdt><w:sdtPr/><w:sdtContent>` + ooxmltest.Para("", "inside") + `</w:sdtContent></w:sdt>` +
		ooxmltest.Para("", "after")
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, "inside", elems[0].Paragraph.Text)
	assert.Equal(t, "after", elems[1].Paragraph.Text)
}

func TestElements_TableCells(t *testing.T) {
	multi := ooxmltest.Para("", "  first ") + ooxmltest.Para("", "") + ooxmltest.Para("", "second")
	body := ooxmltest.Table(
		[]string{ooxmltest.Para("", "H1"), ooxmltest.Para("", "H2")},
		[]string{multi, ooxmltest.Para("", "a|b")},
	)
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	require.Equal(t, types.ElementTable, elems[0].Kind)

	assert.Equal(t, [][]string{{"H1", "H2"}, {"first second", "a|b"}}, elems[0].Table.TextRows())
}

func TestElements_MergedCells(t *testing.T) {
	spanned := `<w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr>` + ooxmltest.Para("", "wide") + `</w:tc>`
	restart := `<w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr>` + ooxmltest.Para("", "tall") + `</w:tc>`
	cont := `<w:tc><w:tcPr><w:vMerge/></w:tcPr>` + ooxmltest.Para("", "") + `</w:tc>`
	body := ooxmltest.Table(
		[]string{spanned, ooxmltest.Para("", "c")},
		[]string{restart, ooxmltest.Para("", "x"), ooxmltest.Para("", "y")},
		[]string{cont, ooxmltest.Para("", "p"), ooxmltest.Para("", "q")},
	)
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 1)

	assert.Equal(t, [][]string{
		{"wide", "wide", "c"},
		{"tall", "x", "y"},
		{"tall", "p", "q"},
	}, elems[0].Table.TextRows())
}

func TestElements_MergedCellsKeepNestedTables(t *testing.T) {
	inner := ooxmltest.TextTable([]string{"K"}, []string{"v"})
	spanned := `<w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr>` + ooxmltest.Para("", "wide") + inner + `</w:tc>`
	restart := `<w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr>` + ooxmltest.Para("", "tall") + inner + `</w:tc>`
	cont := `<w:tc><w:tcPr><w:vMerge/></w:tcPr>` + ooxmltest.Para("", "") + `</w:tc>`
	body := ooxmltest.Table(
		[]string{spanned},
		[]string{restart, ooxmltest.Para("", "x")},
		[]string{cont, ooxmltest.Para("", "y")},
	)
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 1)

	rows := elems[0].Table.Rows
	require.Len(t, rows, 3)
	for _, c := range rows[0].Cells {
		assert.Equal(t, "wide", c.Text)
		assert.Len(t, c.Tables, 1)
	}
	assert.Equal(t, "tall", rows[2].Cells[0].Text)
	require.Len(t, rows[2].Cells[0].Tables, 1)
	assert.Equal(t, [][]string{{"K"}, {"v"}}, rows[2].Cells[0].Tables[0].TextRows())
}

func TestElements_NestedTables(t *testing.T) {
	inner := ooxmltest.TextTable([]string{"K", "V"}, []string{"k", "v"})
	body := ooxmltest.Table([]string{ooxmltest.Para("", "outer") + inner})
	doc := openFixture(t, body, "")

	elems, err := doc.ReadAll()
	require.NoError(t, err)
	require.Len(t, elems, 1)

	cell := elems[0].Table.Rows[0].Cells[0]
	assert.Equal(t, "outer", cell.Text)
	require.Len(t, cell.Tables, 1)
	assert.Equal(t, [][]string{{"K", "V"}, {"k", "v"}}, cell.Tables[0].TextRows())
}

func TestElements_Restartable(t *testing.T) {
	doc := openFixture(t, ooxmltest.Para("", "a")+ooxmltest.Para("", "b"), "")

	first, err := doc.ReadAll()
	require.NoError(t, err)
	second, err := doc.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestElements_EarlyStop(t *testing.T) {
	doc := openFixture(t, ooxmltest.Para("", "a")+ooxmltest.Para("", "b")+ooxmltest.Para("", "c"), "")

	n := 0
	for range doc.Elements() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
	assert.NoError(t, doc.Err())
}
