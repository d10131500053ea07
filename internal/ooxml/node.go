// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ooxml

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is a generic XML element that keeps child order, which the typed
// struct decoding in encoding/xml does not preserve across element names.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []Node     `xml:",any"`
}

// Name returns the local element name without namespace.
func (n *Node) Name() string { return n.XMLName.Local }

// Is reports whether the node's local name is one of names.
func (n *Node) Is(names ...string) bool {
	for _, name := range names {
		if n.XMLName.Local == name {
			return true
		}
	}
	return false
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// AttrNS returns the value of the attribute in namespace space with the
// given local name.
func (n *Node) AttrNS(space, local string) string {
	for _, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// RelAttr returns a relationship-valued attribute such as r:id or r:embed.
func (n *Node) RelAttr(local string) string {
	return n.AttrNS(NSRelationships, local)
}

// Child returns the first direct child with the given local name.
func (n *Node) Child(local string) *Node {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

// Path follows a chain of first-child local names.
func (n *Node) Path(locals ...string) *Node {
	cur := n
	for _, l := range locals {
		if cur = cur.Child(l); cur == nil {
			return nil
		}
	}
	return cur
}

// Children returns all direct children with the given local name.
func (n *Node) Children(local string) []*Node {
	var out []*Node
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in document order. When
// visit returns false the node's children are skipped.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for i := range n.Nodes {
		n.Nodes[i].Walk(visit)
	}
}

// Find returns the first descendant (or n itself) with the given local
// name.
func (n *Node) Find(local string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.XMLName.Local == local {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant with the given local name, outermost
// first, without descending into matches.
func (n *Node) FindAll(local string) []*Node {
	var out []*Node
	for i := range n.Nodes {
		n.Nodes[i].Walk(func(c *Node) bool {
			if c.XMLName.Local == local {
				out = append(out, c)
				return false
			}
			return true
		})
	}
	return out
}

// TextOf concatenates the character data of every descendant with the
// given local name, e.g. TextOf("t") on a DrawingML text body.
func (n *Node) TextOf(local string) string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.XMLName.Local == local {
			b.WriteString(c.Text)
			return false
		}
		return true
	})
	return b.String()
}

// ParseNode decodes an XML document into a Node tree rooted at the
// document element.
func ParseNode(r io.Reader) (*Node, error) {
	var root Node
	if err := newDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// ParsePart decodes the named part into a Node tree.
func (p *Package) ParsePart(name string) (*Node, error) {
	rc, err := p.OpenPart(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseNode(rc)
}

// newDecoder returns an XML decoder that understands legacy charsets in
// the encoding declaration.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return d
}
