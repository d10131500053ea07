// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"errors"

	"github.com/pdiddy/officemd/internal/ooxml"
)

type stylesXML struct {
	Styles []styleXML `xml:"style"`
}

type styleXML struct {
	Type    string `xml:"type,attr"`
	StyleID string `xml:"styleId,attr"`
	Default string `xml:"default,attr"`
	Name    struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
}

// defaultParagraphStyle keys the document's default paragraph style.
const defaultParagraphStyle = ""

// loadStyles maps paragraph style IDs to display names. Documents without
// a styles part resolve every paragraph to "Normal".
func loadStyles(pkg *ooxml.Package) (map[string]string, error) {
	styles := map[string]string{defaultParagraphStyle: "Normal"}

	data, err := pkg.ReadPart(stylesPart)
	if err != nil {
		if errors.Is(err, ooxml.ErrPartNotFound) {
			return styles, nil
		}
		return nil, err
	}

	var doc stylesXML
	if err := ooxml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for _, s := range doc.Styles {
		if s.Type != "paragraph" {
			continue
		}
		name := s.Name.Val
		if name == "" {
			name = s.StyleID
		}
		styles[s.StyleID] = displayName(name)
		if s.Default == "1" || s.Default == "true" {
			styles[defaultParagraphStyle] = displayName(name)
		}
	}
	return styles, nil
}

// displayName maps built-in lowercase style names ("heading 1") to the
// names Word shows in its UI ("Heading 1").
func displayName(name string) string {
	if builtin, ok := builtinNames[name]; ok {
		return builtin
	}
	return name
}

var builtinNames = map[string]string{
	"normal":    "Normal",
	"heading 1": "Heading 1",
	"heading 2": "Heading 2",
	"heading 3": "Heading 3",
	"heading 4": "Heading 4",
	"heading 5": "Heading 5",
	"heading 6": "Heading 6",
	"heading 7": "Heading 7",
	"heading 8": "Heading 8",
	"heading 9": "Heading 9",
	"title":     "Title",
	"subtitle":  "Subtitle",
	"caption":   "Caption",
}
