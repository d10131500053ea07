// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx reads PPTX presentations into slides and shapes in
// shape-tree order, resolving layouts, presenter notes, media, tables,
// charts and embedded objects through part relationships.
package pptx

import (
	"cmp"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/officemd/internal/ooxml"
)

const presentationPart = "ppt/presentation.xml"

// Presentation is an opened PPTX package.
type Presentation struct {
	pkg    *ooxml.Package
	slides []string // slide part names in presentation order
}

// Slide is one parsed slide.
type Slide struct {
	// Number is the 1-based position in the presentation.
	Number int

	// Part is the slide's package part name.
	Part string

	// LayoutName is the name of the slide layout, or "Unknown Layout".
	LayoutName string

	// Notes is the trimmed text of the notes slide body placeholder.
	Notes string

	Shapes []Shape
}

// Open opens the PPTX file at path. A file that is not a ZIP archive or
// lacks ppt/presentation.xml yields an error wrapping
// ooxml.ErrInvalidPackage.
func Open(filename string) (*Presentation, error) {
	pkg, err := ooxml.Open(filename, presentationPart)
	if err != nil {
		return nil, err
	}

	slides, err := slideOrder(pkg)
	if err != nil {
		pkg.Close()
		return nil, err
	}
	return &Presentation{pkg: pkg, slides: slides}, nil
}

// IsValid reports whether path is a ZIP archive containing
// ppt/presentation.xml.
func IsValid(filename string) bool {
	return ooxml.HasPart(filename, presentationPart)
}

// Close releases the underlying archive.
func (p *Presentation) Close() error {
	return p.pkg.Close()
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// Slide parses the slide at 1-based position n.
func (p *Presentation) Slide(n int) (*Slide, error) {
	if n < 1 || n > len(p.slides) {
		return nil, fmt.Errorf("slide %d out of range (1-%d)", n, len(p.slides))
	}
	part := p.slides[n-1]

	root, err := p.pkg.ParsePart(part)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", part, err)
	}
	rels, err := p.pkg.Rels(part)
	if err != nil {
		return nil, err
	}

	s := &Slide{
		Number:     n,
		Part:       part,
		LayoutName: p.layoutName(rels),
		Notes:      p.notes(rels),
	}
	if tree := root.Path("cSld", "spTree"); tree != nil {
		r := shapeReader{pkg: p.pkg, part: part, rels: rels}
		s.Shapes = r.tree(tree)
	}
	return s, nil
}

// Slides parses every slide in order.
func (p *Presentation) Slides() ([]*Slide, error) {
	out := make([]*Slide, 0, len(p.slides))
	for i := range p.slides {
		s, err := p.Slide(i + 1)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// slideOrder lists slide parts in p:sldIdLst order. Presentations without
// a usable list fall back to numeric file order.
func slideOrder(pkg *ooxml.Package) ([]string, error) {
	root, err := pkg.ParsePart(presentationPart)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ooxml.ErrInvalidPackage, presentationPart, err)
	}
	rels, err := pkg.Rels(presentationPart)
	if err != nil {
		return nil, err
	}

	var parts []string
	if list := root.Child("sldIdLst"); list != nil {
		for _, id := range list.Children("sldId") {
			part, ok := rels.Part(id.RelAttr("id"))
			if ok && pkg.Has(part) {
				parts = append(parts, part)
			}
		}
	}
	if len(parts) > 0 {
		return parts, nil
	}

	for _, name := range pkg.Names("ppt/slides/slide") {
		if strings.HasSuffix(name, ".xml") && path.Dir(name) == "ppt/slides" {
			parts = append(parts, name)
		}
	}
	slices.SortFunc(parts, func(a, b string) int {
		return cmp.Compare(slideNumber(a), slideNumber(b))
	})
	return parts, nil
}

// slideNumber extracts N from "ppt/slides/slideN.xml".
func slideNumber(part string) int {
	name := strings.TrimSuffix(strings.TrimPrefix(path.Base(part), "slide"), ".xml")
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0
	}
	return n
}

func (p *Presentation) layoutName(rels *ooxml.Relationships) string {
	const unknown = "Unknown Layout"
	part, ok := rels.FirstOfType(ooxml.RelSlideLayout)
	if !ok {
		return unknown
	}
	root, err := p.pkg.ParsePart(part)
	if err != nil {
		return unknown
	}
	if cSld := root.Child("cSld"); cSld != nil {
		if name := cSld.Attr("name"); name != "" {
			return name
		}
	}
	return unknown
}

// notes returns the text of the notes slide's body placeholder.
func (p *Presentation) notes(rels *ooxml.Relationships) string {
	part, ok := rels.FirstOfType(ooxml.RelNotesSlide)
	if !ok {
		return ""
	}
	root, err := p.pkg.ParsePart(part)
	if err != nil {
		return ""
	}
	tree := root.Path("cSld", "spTree")
	if tree == nil {
		return ""
	}
	for _, sp := range tree.FindAll("sp") {
		ph := sp.Path("nvSpPr", "nvPr", "ph")
		if ph == nil || ph.Attr("type") != "body" {
			continue
		}
		if body := sp.Child("txBody"); body != nil {
			return strings.TrimSpace(frameText(textParagraphs(body)))
		}
	}
	return ""
}
