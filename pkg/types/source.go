// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one source file.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionPartial ConversionStatus = "partial"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// SourceKind identifies the office format of a source file.
type SourceKind string

const (
	SourceDocx SourceKind = "docx"
	SourcePptx SourceKind = "pptx"
)

// Source holds the identity and file path of a document to convert.
type Source struct {
	// ID is a slug derived from the file name without extension.
	ID string `json:"id" yaml:"id"`

	// Path is the local filesystem path of the source document.
	Path string `json:"path" yaml:"path"`

	// Kind is the office format of the source.
	Kind SourceKind `json:"kind" yaml:"kind"`

	// ModTime is the source file's modification time, used for
	// incremental runs.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// Result describes what one conversion produced.
type Result struct {
	// Status is the conversion outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// DocID is the run identifier, when the pipeline assigns one.
	DocID string `json:"doc_id,omitempty" yaml:"doc_id,omitempty"`

	// OutputDir is the directory the outputs were written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Outputs lists the Markdown files written, in order.
	Outputs []string `json:"outputs" yaml:"outputs"`

	// Assets lists auxiliary files (charts, images, tables, objects).
	Assets []AssetMeta `json:"assets,omitempty" yaml:"assets,omitempty"`

	// Warnings counts recoverable problems (e.g. shapes that failed).
	Warnings int `json:"warnings" yaml:"warnings"`
}
