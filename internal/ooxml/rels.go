// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// NSRelationships is the namespace of r:id style attributes.
const NSRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// Relationship types referenced by the walkers. Matching is done on the
// suffix so both transitional and strict namespaces resolve.
const (
	RelSlideLayout = "/slideLayout"
	RelNotesSlide  = "/notesSlide"
)

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// Relationships maps relationship IDs to entries for one source part.
type Relationships struct {
	source string
	byID   map[string]Relationship
	list   []Relationship
}

type relationshipsXML struct {
	Relationship []Relationship `xml:"Relationship"`
}

// Rels loads the relationships of sourcePart. A part without a .rels file
// has no relationships; that is not an error.
func (p *Package) Rels(sourcePart string) (*Relationships, error) {
	rels := &Relationships{source: sourcePart, byID: make(map[string]Relationship)}

	data, err := p.ReadPart(relsPath(sourcePart))
	if err != nil {
		if errors.Is(err, ErrPartNotFound) {
			return rels, nil
		}
		return nil, err
	}

	var doc relationshipsXML
	if err := Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing relationships of %s: %w", sourcePart, err)
	}
	for _, r := range doc.Relationship {
		rels.byID[r.ID] = r
		rels.list = append(rels.list, r)
	}
	return rels, nil
}

// Part resolves relationship id to a package part name. It returns false
// for unknown IDs and external targets.
func (r *Relationships) Part(id string) (string, bool) {
	rel, ok := r.byID[id]
	if !ok || strings.EqualFold(rel.TargetMode, "External") {
		return "", false
	}
	return ResolveTarget(r.source, rel.Target), true
}

// FirstOfType resolves the first relationship whose type ends with
// typeSuffix.
func (r *Relationships) FirstOfType(typeSuffix string) (string, bool) {
	for _, rel := range r.list {
		if strings.HasSuffix(rel.Type, typeSuffix) && !strings.EqualFold(rel.TargetMode, "External") {
			return ResolveTarget(r.source, rel.Target), true
		}
	}
	return "", false
}

// Unmarshal decodes XML data into v, honoring non-UTF-8 encoding
// declarations.
func Unmarshal(data []byte, v any) error {
	return newDecoder(bytes.NewReader(data)).Decode(v)
}
