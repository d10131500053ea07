// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officemd/internal/ooxml"
	"github.com/pdiddy/officemd/internal/ooxml/ooxmltest"
)

func openDeck(t *testing.T, d ooxmltest.Deck) *Presentation {
	t.Helper()
	path := ooxmltest.WriteZip(t, t.TempDir(), "deck.pptx", d.Parts())
	p, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestOpen_Invalid(t *testing.T) {
	dir := t.TempDir()
	notZip := filepath.Join(dir, "x.pptx")
	require.NoError(t, os.WriteFile(notZip, []byte("text"), 0o644))
	docx := ooxmltest.WriteZip(t, dir, "doc.pptx", ooxmltest.DocxParts(ooxmltest.Para("", "x"), ""))

	for _, path := range []string{notZip, docx} {
		_, err := Open(path)
		assert.ErrorIs(t, err, ooxml.ErrInvalidPackage, path)
		assert.False(t, IsValid(path), path)
	}
}

func TestSlides_Order(t *testing.T) {
	d := ooxmltest.Deck{
		Slides: []ooxmltest.DeckSlide{
			{Shapes: ooxmltest.TextShape(2, "T", `type="title"`, "first file")},
			{Shapes: ooxmltest.TextShape(2, "T", `type="title"`, "second file")},
			{Shapes: ooxmltest.TextShape(2, "T", `type="title"`, "third file")},
		},
		Order: []int{3, 1, 2},
	}
	p := openDeck(t, d)

	slides, err := p.Slides()
	require.NoError(t, err)
	require.Len(t, slides, 3)
	assert.Equal(t, "third file", slides[0].Title())
	assert.Equal(t, "first file", slides[1].Title())
	assert.Equal(t, "second file", slides[2].Title())
	for i, s := range slides {
		assert.Equal(t, i+1, s.Number)
	}
}

func TestSlides_FallbackFileOrder(t *testing.T) {
	slides := make([]ooxmltest.DeckSlide, 11)
	for i := range slides {
		slides[i] = ooxmltest.DeckSlide{Shapes: ooxmltest.TextShape(2, "T", "", "body")}
	}
	p := openDeck(t, ooxmltest.Deck{Slides: slides, Order: []int{}})

	require.Equal(t, 11, p.SlideCount())
	s, err := p.Slide(10)
	require.NoError(t, err)
	assert.Equal(t, "ppt/slides/slide10.xml", s.Part)

	_, err = p.Slide(12)
	assert.Error(t, err)
}

func TestSlide_LayoutAndNotes(t *testing.T) {
	p := openDeck(t, ooxmltest.Deck{Slides: []ooxmltest.DeckSlide{
		{Layout: "Title and Content", Notes: "Remember the budget"},
		{},
	}})

	first, err := p.Slide(1)
	require.NoError(t, err)
	assert.Equal(t, "Title and Content", first.LayoutName)
	assert.Equal(t, "Remember the budget", first.Notes)

	second, err := p.Slide(2)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Layout", second.LayoutName)
	assert.Empty(t, second.Notes)
}

func TestSlide_Title(t *testing.T) {
	long := ""
	for range 120 {
		long += "x"
	}
	tests := []struct {
		name   string
		shapes string
		want   string
	}{
		{
			name:   "title placeholder",
			shapes: ooxmltest.TextShape(2, "Body", "", "body text") + ooxmltest.TextShape(3, "Title", `type="title"`, "  Quarterly Review "),
			want:   "Quarterly Review",
		},
		{
			name:   "empty title falls back to first text",
			shapes: ooxmltest.TextShape(2, "Title", `type="title"`, " ") + ooxmltest.TextShape(3, "Body", `idx="1"`, "Agenda"),
			want:   "Agenda",
		},
		{
			name:   "long text skipped",
			shapes: ooxmltest.TextShape(2, "Body", "", long) + ooxmltest.TextShape(3, "Other", "", "Short"),
			want:   "Short",
		},
		{
			name:   "default",
			shapes: ooxmltest.Connector(2),
			want:   "Slide 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := openDeck(t, ooxmltest.Deck{Slides: []ooxmltest.DeckSlide{{Shapes: tt.shapes}}})
			s, err := p.Slide(1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Title())
		})
	}
}

func TestSlide_Shapes(t *testing.T) {
	chart := ooxmltest.ChartPart("Sales", "barChart", `<c:barDir val="col"/><c:grouping val="clustered"/>`,
		[]string{"Q1", "Q2"}, []ooxmltest.ChartSeries{{Name: "2025", Values: []*float64{ooxmltest.F(1), ooxmltest.F(2)}}}, "")
	d := ooxmltest.Deck{
		Slides: []ooxmltest.DeckSlide{{
			Shapes: ooxmltest.TextShape(2, "Title 1", `type="ctrTitle"`, "Deck") +
				ooxmltest.TextShape(3, "Content", `idx="1"`, "Point", "1:Sub point") +
				ooxmltest.Picture(4, "rIdImg") +
				ooxmltest.TableFrame(5, []string{"A", "B"}, []string{"1", "2"}) +
				ooxmltest.ChartFrame(6, "rIdChart") +
				ooxmltest.Group(7, ooxmltest.TextShape(8, "Inner", "", "grouped"), ooxmltest.Connector(9)) +
				ooxmltest.OLEFrame(10, "Excel.Sheet.12", "rIdObj") +
				ooxmltest.Picture(11, "rIdMissing"),
			Rels: []ooxmltest.Rel{
				{ID: "rIdImg", Type: ooxmltest.RelTypeImage, Target: "../media/image1.jpeg"},
				{ID: "rIdChart", Type: ooxmltest.RelTypeChart, Target: "../charts/chart1.xml"},
				{ID: "rIdObj", Type: ooxmltest.RelTypePackage, Target: "../embeddings/Sheet1.xlsx"},
				{ID: "rIdMissing", Type: ooxmltest.RelTypeImage, Target: "../media/nope.png"},
			},
		}},
		Extra: map[string]string{
			"ppt/media/image1.jpeg":      "JPEGDATA",
			"ppt/charts/chart1.xml":      chart,
			"ppt/embeddings/Sheet1.xlsx": "XLSX",
		},
	}
	p := openDeck(t, d)

	s, err := p.Slide(1)
	require.NoError(t, err)
	require.Len(t, s.Shapes, 8)

	title := s.Shapes[0]
	assert.Equal(t, ShapeText, title.Kind)
	assert.True(t, title.IsTitle())

	body := s.Shapes[1]
	assert.False(t, body.IsTitle())
	assert.Equal(t, []TextParagraph{{Text: "Point"}, {Text: "Sub point", Level: 1}}, body.Paragraphs)

	pic := s.Shapes[2]
	assert.Equal(t, ShapePicture, pic.Kind)
	assert.Equal(t, []byte("JPEGDATA"), pic.Media)
	assert.Equal(t, "jpg", pic.MediaExt)
	assert.NoError(t, pic.Err)

	tbl := s.Shapes[3]
	assert.Equal(t, ShapeTable, tbl.Kind)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, tbl.Table.TextRows())

	ch := s.Shapes[4]
	assert.Equal(t, ShapeChart, ch.Kind)
	assert.Equal(t, "ppt/charts/chart1.xml", ch.ChartPart)
	assert.Equal(t, chart, string(ch.ChartXML))

	grp := s.Shapes[5]
	assert.Equal(t, ShapeGroup, grp.Kind)
	require.Len(t, grp.Children, 2)
	assert.Equal(t, "grouped", grp.Children[0].Text())
	assert.Equal(t, ShapeGeneric, grp.Children[1].Kind)
	assert.Equal(t, "LINE", grp.Children[1].Label)

	ole := s.Shapes[6]
	assert.Equal(t, ShapeOLE, ole.Kind)
	assert.Equal(t, "Excel.Sheet.12", ole.ProgID)
	assert.Equal(t, []byte("XLSX"), ole.Embedded)

	missing := s.Shapes[7]
	assert.Equal(t, ShapePicture, missing.Kind)
	assert.Error(t, missing.Err)
	assert.ErrorIs(t, missing.Err, ooxml.ErrPartNotFound)
}

func TestTextParagraphs_LineBreaksAndFields(t *testing.T) {
	shape := `<p:sp><p:nvSpPr><p:cNvPr id="2" name="T"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:txBody>` +
		`<a:p><a:r><a:t>one</a:t></a:r><a:br/><a:r><a:t>two</a:t></a:r><a:fld id="x" type="slidenum"><a:t>3</a:t></a:fld></a:p>` +
		`</p:txBody></p:sp>`
	p := openDeck(t, ooxmltest.Deck{Slides: []ooxmltest.DeckSlide{{Shapes: shape}}})

	s, err := p.Slide(1)
	require.NoError(t, err)
	require.Len(t, s.Shapes, 1)
	assert.Equal(t, "one\ntwo3", s.Shapes[0].Text())
}
