// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/pdiddy/officemd/internal/ooxml"
	"github.com/pdiddy/officemd/pkg/types"
)

// ShapeKind classifies a slide shape.
type ShapeKind string

const (
	ShapeText    ShapeKind = "text"
	ShapePicture ShapeKind = "picture"
	ShapeTable   ShapeKind = "table"
	ShapeChart   ShapeKind = "chart"
	ShapeGroup   ShapeKind = "group"
	ShapeOLE     ShapeKind = "ole"
	ShapeGeneric ShapeKind = "generic"
)

const (
	uriTable = "http://schemas.openxmlformats.org/drawingml/2006/table"
	uriChart = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	uriOLE   = "http://schemas.openxmlformats.org/presentationml/2006/ole"
)

// TextParagraph is one paragraph of a text frame.
type TextParagraph struct {
	Text  string
	Level int
}

// Shape is one entry of a slide's shape tree. Fields other than Kind and
// Name are set according to Kind.
type Shape struct {
	Kind ShapeKind
	Name string

	// Placeholder is set for placeholder shapes; PlaceholderType is the
	// p:ph type attribute ("title", "body", ...) and PlaceholderIdx its
	// idx attribute.
	Placeholder     bool
	PlaceholderType string
	PlaceholderIdx  int

	// Paragraphs holds the text frame of text and generic shapes.
	Paragraphs []TextParagraph

	// Media and MediaExt hold picture bytes and the lowercase extension
	// without the dot.
	Media    []byte
	MediaExt string

	Table types.Table

	// ChartPart and ChartXML identify and hold the chart part.
	ChartPart string
	ChartXML  []byte

	Children []Shape

	// ProgID and Embedded describe an OLE object. Embedded is nil for
	// linked objects.
	ProgID   string
	Embedded []byte

	// Label names the kind of a generic shape, e.g. "LINE".
	Label string

	// Err records why the shape's content could not be resolved.
	Err error
}

// Text returns the text frame content, paragraphs joined by newlines.
func (s Shape) Text() string {
	return frameText(s.Paragraphs)
}

// IsTitle reports whether the shape is a title-like placeholder (title,
// centered title, subtitle, vertical title).
func (s Shape) IsTitle() bool {
	return s.Placeholder && strings.Contains(strings.ToLower(s.PlaceholderType), "title")
}

// HasTextFrame reports whether the shape carries a text frame.
func (s Shape) HasTextFrame() bool {
	return s.Kind == ShapeText
}

func frameText(paras []TextParagraph) string {
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}

type shapeReader struct {
	pkg  *ooxml.Package
	part string
	rels *ooxml.Relationships
}

// tree reads the shapes of a p:spTree or p:grpSp in document order.
func (r shapeReader) tree(n *ooxml.Node) []Shape {
	var shapes []Shape
	for i := range n.Nodes {
		if s, ok := r.shape(&n.Nodes[i]); ok {
			shapes = append(shapes, s)
		}
	}
	return shapes
}

func (r shapeReader) shape(n *ooxml.Node) (Shape, bool) {
	switch n.Name() {
	case "sp":
		s := Shape{Kind: ShapeText, Name: shapeName(n, "nvSpPr")}
		placeholder(&s, n.Path("nvSpPr", "nvPr", "ph"))
		if body := n.Child("txBody"); body != nil {
			s.Paragraphs = textParagraphs(body)
		}
		return s, true
	case "pic":
		return r.picture(n), true
	case "graphicFrame":
		return r.graphicFrame(n), true
	case "grpSp":
		return Shape{Kind: ShapeGroup, Name: shapeName(n, "nvGrpSpPr"), Children: r.tree(n)}, true
	case "cxnSp":
		return Shape{Kind: ShapeGeneric, Name: shapeName(n, "nvCxnSpPr"), Label: "LINE"}, true
	case "contentPart":
		return Shape{Kind: ShapeGeneric, Label: "INK"}, true
	case "AlternateContent":
		return r.alternate(n)
	}
	return Shape{}, false
}

// alternate picks the fallback branch of mc:AlternateContent, or the
// first choice when there is no fallback.
func (r shapeReader) alternate(n *ooxml.Node) (Shape, bool) {
	branch := n.Child("Fallback")
	if branch == nil {
		branch = n.Child("Choice")
	}
	if branch == nil {
		return Shape{}, false
	}
	for i := range branch.Nodes {
		if s, ok := r.shape(&branch.Nodes[i]); ok {
			return s, true
		}
	}
	return Shape{}, false
}

func shapeName(n *ooxml.Node, nvPr string) string {
	if c := n.Path(nvPr, "cNvPr"); c != nil {
		return c.Attr("name")
	}
	return ""
}

func placeholder(s *Shape, ph *ooxml.Node) {
	if ph == nil {
		return
	}
	s.Placeholder = true
	s.PlaceholderType = ph.Attr("type")
	if s.PlaceholderType == "" {
		s.PlaceholderType = "obj"
	}
	s.PlaceholderIdx, _ = strconv.Atoi(ph.Attr("idx"))
}

func (r shapeReader) picture(n *ooxml.Node) Shape {
	s := Shape{Kind: ShapePicture, Name: shapeName(n, "nvPicPr")}
	placeholder(&s, n.Path("nvPicPr", "nvPr", "ph"))

	blip := n.Find("blip")
	if blip == nil {
		s.Err = fmt.Errorf("picture %q has no image reference", s.Name)
		return s
	}
	part, data, err := r.related(blip.RelAttr("embed"))
	if err != nil {
		s.Err = fmt.Errorf("picture %q: %w", s.Name, err)
		return s
	}
	s.Media = data
	s.MediaExt = imageExt(part)
	return s
}

func imageExt(part string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(part), "."))
	switch ext {
	case "jpeg":
		return "jpg"
	case "tif":
		return "tiff"
	case "":
		return "png"
	}
	return ext
}

func (r shapeReader) graphicFrame(n *ooxml.Node) Shape {
	s := Shape{Name: shapeName(n, "nvGraphicFramePr")}
	data := n.Path("graphic", "graphicData")
	if data == nil {
		s.Kind, s.Label = ShapeGeneric, "GRAPHIC_FRAME"
		return s
	}

	switch data.Attr("uri") {
	case uriTable:
		s.Kind = ShapeTable
		if tbl := data.Child("tbl"); tbl != nil {
			s.Table = readTable(tbl)
		}
	case uriChart:
		s.Kind = ShapeChart
		ref := data.Child("chart")
		if ref == nil {
			s.Err = fmt.Errorf("chart frame %q has no chart reference", s.Name)
			return s
		}
		part, xmlData, err := r.related(ref.RelAttr("id"))
		if err != nil {
			s.Err = fmt.Errorf("chart %q: %w", s.Name, err)
			return s
		}
		s.ChartPart, s.ChartXML = part, xmlData
	case uriOLE:
		s.Kind = ShapeOLE
		obj := data.Find("oleObj")
		if obj == nil {
			s.ProgID = "Unknown"
			return s
		}
		s.ProgID = obj.Attr("progId")
		if s.ProgID == "" {
			s.ProgID = "Unknown"
		}
		if obj.Child("link") != nil {
			return s
		}
		if id := obj.RelAttr("id"); id != "" {
			if _, blob, err := r.related(id); err == nil {
				s.Embedded = blob
			} else {
				s.Err = fmt.Errorf("embedded object %q: %w", s.Name, err)
			}
		}
	default:
		s.Kind, s.Label = ShapeGeneric, "IGX_GRAPHIC"
	}
	return s
}

// related reads the part a relationship ID points at.
func (r shapeReader) related(id string) (string, []byte, error) {
	if id == "" {
		return "", nil, fmt.Errorf("missing relationship id")
	}
	part, ok := r.rels.Part(id)
	if !ok {
		return "", nil, fmt.Errorf("unknown relationship %s", id)
	}
	data, err := r.pkg.ReadPart(part)
	if err != nil {
		return part, nil, err
	}
	return part, data, nil
}

func readTable(tbl *ooxml.Node) types.Table {
	var t types.Table
	for _, tr := range tbl.Children("tr") {
		var row types.Row
		for _, tc := range tr.Children("tc") {
			var text string
			if body := tc.Child("txBody"); body != nil {
				text = frameText(textParagraphs(body))
			}
			row.Cells = append(row.Cells, types.Cell{Text: text})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// textParagraphs reads the a:p children of a text body. Line breaks
// become newlines.
func textParagraphs(body *ooxml.Node) []TextParagraph {
	var out []TextParagraph
	for _, p := range body.Children("p") {
		tp := TextParagraph{}
		if pPr := p.Child("pPr"); pPr != nil {
			tp.Level, _ = strconv.Atoi(pPr.Attr("lvl"))
		}
		var b strings.Builder
		for i := range p.Nodes {
			c := &p.Nodes[i]
			switch c.Name() {
			case "r", "fld":
				if t := c.Child("t"); t != nil {
					b.WriteString(t.Text)
				}
			case "br":
				b.WriteByte('\n')
			}
		}
		tp.Text = b.String()
		out = append(out, tp)
	}
	return out
}
