// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxmltest

import (
	"fmt"
	"strings"
)

// Relationship type URIs used by deck fixtures.
const (
	RelTypeSlide   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelTypeLayout  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelTypeNotes   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelTypeImage   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTypeChart   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	RelTypePackage = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
	RelTypeOLE     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/oleObject"
)

// Rel is one relationship of a fixture part.
type Rel struct {
	ID, Type, Target string
}

// DeckSlide describes one slide of a fixture presentation.
type DeckSlide struct {
	// Shapes is the inner XML of p:spTree.
	Shapes string
	// Layout is the layout name; empty means no layout relationship.
	Layout string
	// Notes is the notes body text; empty means no notes slide.
	Notes string
	// Rels are extra slide relationships (media, charts, objects).
	Rels []Rel
}

// Deck assembles a minimal PPTX package.
type Deck struct {
	Slides []DeckSlide
	// Order lists slide numbers (1-based file numbers) in presentation
	// order. Nil keeps file order; an empty non-nil slice omits
	// p:sldIdLst entirely.
	Order []int
	// Extra parts such as ppt/media/image1.png or ppt/charts/chart1.xml.
	Extra map[string]string
}

// Parts returns the package parts of the deck.
func (d Deck) Parts() map[string]string {
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
	}

	var presRels []Rel
	for i := range d.Slides {
		presRels = append(presRels, Rel{
			ID:     fmt.Sprintf("rIdS%d", i+1),
			Type:   RelTypeSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	parts["ppt/_rels/presentation.xml.rels"] = Rels(presRels...)

	order := d.Order
	if order == nil {
		for i := range d.Slides {
			order = append(order, i+1)
		}
	}
	var ids strings.Builder
	if len(order) > 0 {
		ids.WriteString("<p:sldIdLst>")
		for i, n := range order {
			fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rIdS%d"/>`, 256+i, n)
		}
		ids.WriteString("</p:sldIdLst>")
	}
	parts["ppt/presentation.xml"] = `<?xml version="1.0" encoding="UTF-8"?><p:presentation ` + NSPres + ` ` + NSRel + `>` +
		ids.String() + `</p:presentation>`

	for i, s := range d.Slides {
		n := i + 1
		rels := append([]Rel(nil), s.Rels...)
		if s.Layout != "" {
			layout := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", n)
			parts[layout] = `<?xml version="1.0" encoding="UTF-8"?><p:sldLayout ` + NSPres + `><p:cSld name="` + s.Layout + `"><p:spTree/></p:cSld></p:sldLayout>`
			rels = append(rels, Rel{ID: "rIdL", Type: RelTypeLayout, Target: fmt.Sprintf("../slideLayouts/slideLayout%d.xml", n)})
		}
		if s.Notes != "" {
			notes := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n)
			parts[notes] = `<?xml version="1.0" encoding="UTF-8"?><p:notes ` + NSPres + ` ` + NSDraw + `><p:cSld><p:spTree>` +
				`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image"/><p:cNvSpPr/><p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr></p:sp>` +
				TextShape(3, "Notes", `type="body" idx="1"`, " "+s.Notes+" ") +
				`</p:spTree></p:cSld></p:notes>`
			rels = append(rels, Rel{ID: "rIdN", Type: RelTypeNotes, Target: fmt.Sprintf("../notesSlides/notesSlide%d.xml", n)})
		}
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", n)] = `<?xml version="1.0" encoding="UTF-8"?><p:sld ` + NSPres + ` ` + NSDraw + ` ` + NSRel + `>` +
			`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
			s.Shapes + `</p:spTree></p:cSld></p:sld>`
		if len(rels) > 0 {
			parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] = Rels(rels...)
		}
	}

	for name, content := range d.Extra {
		parts[name] = content
	}
	return parts
}

// Rels renders a relationships part.
func Rels(rels ...Rel) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><Relationships ` + NSPkgRel + `>`)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.ID, r.Type, r.Target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// TextShape builds a p:sp. ph holds p:ph attributes (e.g. `type="title"`);
// empty means the shape is not a placeholder. Each paragraph may carry a
// level prefix "N:" (e.g. "1:bullet").
func TextShape(id int, name, ph string, paragraphs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>`, id, name)
	if ph != "" {
		b.WriteString(`<p:ph ` + ph + `/>`)
	}
	b.WriteString(`</p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/>`)
	for _, p := range paragraphs {
		lvl := ""
		if len(p) > 2 && p[1] == ':' && p[0] >= '0' && p[0] <= '9' {
			lvl = `<a:pPr lvl="` + p[:1] + `"/>`
			p = p[2:]
		}
		b.WriteString(`<a:p>` + lvl + `<a:r><a:t>` + p + `</a:t></a:r></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String()
}

// Picture builds a p:pic referencing relationship rID.
func Picture(id int, rID string) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="%s"/></p:blipFill><p:spPr/></p:pic>`, id, id, rID)
}

// ChartFrame builds a graphic frame referencing chart relationship rID.
func ChartFrame(id int, rID string) string {
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Chart %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart">`+
		`<c:chart `+NSChart+` r:id="%s"/></a:graphicData></a:graphic></p:graphicFrame>`, id, id, rID)
}

// TableFrame builds a graphic frame holding an a:tbl with one paragraph
// per cell.
func TableFrame(id int, rows ...[]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, id, id)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`)
	for _, r := range rows {
		b.WriteString("<a:tr>")
		for _, c := range r {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>` + c + `</a:t></a:r></a:p></a:txBody></a:tc>`)
		}
		b.WriteString("</a:tr>")
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String()
}

// OLEFrame builds a graphic frame holding an embedded OLE object.
func OLEFrame(id int, progID, rID string) string {
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Object %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/presentationml/2006/ole">`+
		`<p:oleObj progId="%s" r:id="%s"><p:embed/></p:oleObj></a:graphicData></a:graphic></p:graphicFrame>`, id, id, progID, rID)
}

// Group wraps shapes in a p:grpSp.
func Group(id int, shapes ...string) string {
	return fmt.Sprintf(`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="Group %d"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`, id, id) +
		strings.Join(shapes, "") + `</p:grpSp>`
}

// Connector builds a p:cxnSp.
func Connector(id int) string {
	return fmt.Sprintf(`<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="%d" name="Connector %d"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr><p:spPr/></p:cxnSp>`, id, id)
}

// ChartSeries describes one c:ser of a chart fixture. A nil entry in
// Values is written as a missing point.
type ChartSeries struct {
	Name   string
	Values []*float64
}

// F returns a pointer to v for ChartSeries values.
func F(v float64) *float64 { return &v }

// ChartPart builds a c:chartSpace. plot is the plot element name (e.g.
// "barChart"); plotAttrs holds extra plot children such as
// `<c:barDir val="col"/><c:grouping val="clustered"/>`. extra is appended
// to c:plotArea (e.g. `<c:dTable/>`).
func ChartPart(title, plot, plotAttrs string, categories []string, series []ChartSeries, extra string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><c:chartSpace ` + NSChart + ` ` + NSDraw + `><c:chart>`)
	if title != "" {
		b.WriteString(`<c:title><c:tx><c:rich><a:bodyPr/><a:p><a:r><a:t>` + title + `</a:t></a:r></a:p></c:rich></c:tx></c:title>`)
	}
	b.WriteString(`<c:plotArea><c:` + plot + `>` + plotAttrs)
	for i, s := range series {
		fmt.Fprintf(&b, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`, i, i)
		if s.Name != "" {
			b.WriteString(`<c:tx><c:strRef><c:f>Sheet1!$A$1</c:f><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>` + s.Name + `</c:v></c:pt></c:strCache></c:strRef></c:tx>`)
		}
		if len(categories) > 0 {
			fmt.Fprintf(&b, `<c:cat><c:strRef><c:strCache><c:ptCount val="%d"/>`, len(categories))
			for j, c := range categories {
				fmt.Fprintf(&b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, j, c)
			}
			b.WriteString(`</c:strCache></c:strRef></c:cat>`)
		}
		fmt.Fprintf(&b, `<c:val><c:numRef><c:numCache><c:ptCount val="%d"/>`, len(s.Values))
		for j, v := range s.Values {
			if v != nil {
				fmt.Fprintf(&b, `<c:pt idx="%d"><c:v>%g</c:v></c:pt>`, j, *v)
			}
		}
		b.WriteString(`</c:numCache></c:numRef></c:val></c:ser>`)
	}
	b.WriteString(`</c:` + plot + `>` + extra + `</c:plotArea></c:chart></c:chartSpace>`)
	return b.String()
}
