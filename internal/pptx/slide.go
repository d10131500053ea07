// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxFallbackTitle bounds the length of body text promoted to a title.
const maxFallbackTitle = 100

// Title returns the slide's title: the title placeholder's text when it
// has any, otherwise the first short non-empty text frame, otherwise
// "Slide N".
func (s *Slide) Title() string {
	for _, sh := range s.Shapes {
		if sh.Placeholder && sh.PlaceholderIdx == 0 {
			if t := strings.TrimSpace(sh.Text()); t != "" {
				return t
			}
			break
		}
	}
	for _, sh := range s.Shapes {
		if !sh.HasTextFrame() {
			continue
		}
		t := strings.TrimSpace(sh.Text())
		if t != "" && utf8.RuneCountInString(t) < maxFallbackTitle {
			return t
		}
	}
	return fmt.Sprintf("Slide %d", s.Number)
}
