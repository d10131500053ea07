// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ooxml reads Office Open XML packages: the ZIP container, part
// relationships, and a generic element tree that format-specific walkers
// traverse in document order.
package ooxml

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	// ErrInvalidPackage reports a file that is not a usable OOXML package
	// of the expected kind (not a ZIP, or a required part is missing).
	ErrInvalidPackage = errors.New("invalid office package")

	// ErrPartNotFound reports a missing part inside a valid package.
	ErrPartNotFound = errors.New("part not found")
)

// Package is an opened OOXML ZIP container.
type Package struct {
	zr    *zip.ReadCloser
	files map[string]*zip.File
}

// Open opens the package at filename and checks that every required part
// exists. Failures to read the ZIP or missing parts wrap ErrInvalidPackage.
func Open(filename string, required ...string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrInvalidPackage, err)
	}

	p := &Package{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}

	for _, name := range required {
		if !p.Has(name) {
			zr.Close()
			return nil, fmt.Errorf("%w: missing required part %s", ErrInvalidPackage, name)
		}
	}
	return p, nil
}

// Close releases the underlying archive.
func (p *Package) Close() error {
	if p.zr == nil {
		return nil
	}
	err := p.zr.Close()
	p.zr = nil
	return err
}

// Has reports whether the package contains the named part.
func (p *Package) Has(name string) bool {
	_, ok := p.files[name]
	return ok
}

// Names returns the names of all parts with the given prefix.
func (p *Package) Names(prefix string) []string {
	var names []string
	for name := range p.files {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names
}

// OpenPart opens the named part for streaming reads.
func (p *Package) OpenPart(name string) (io.ReadCloser, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return f.Open()
}

// ReadPart returns the full content of the named part.
func (p *Package) ReadPart(name string) ([]byte, error) {
	rc, err := p.OpenPart(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// HasPart reports whether the file at filename is a ZIP archive that
// contains the named part. It never returns an error.
func HasPart(filename, part string) bool {
	p, err := Open(filename, part)
	if err != nil {
		return false
	}
	p.Close()
	return true
}

// relsPath returns the relationships part for a source part, e.g.
// "ppt/slides/slide1.xml" -> "ppt/slides/_rels/slide1.xml.rels".
func relsPath(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// ResolveTarget resolves a relationship target relative to its source
// part. Absolute targets ("/ppt/media/x.png") are taken from the package
// root.
func ResolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(sourcePart), target))
}
