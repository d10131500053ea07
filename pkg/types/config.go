// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocxConfig holds settings for the document (DOCX) pipeline.
type DocxConfig struct {
	// InputDir is scanned for .docx files when no paths are given.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives the <base>_page_<n>.md files.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Frontmatter prepends YAML frontmatter to every page file.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`
}

// ChartConfig holds settings for chart re-rendering.
type ChartConfig struct {
	// Width and Height are the PNG dimensions in pixels.
	Width  int `json:"width" yaml:"width" mapstructure:"width"`
	Height int `json:"height" yaml:"height" mapstructure:"height"`
}

// PptxConfig holds settings for the presentation (PPTX) pipeline.
type PptxConfig struct {
	// OutputDir is the parent of each <base>_markdown directory; empty
	// means the current directory.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Chart configures chart rendering.
	Chart ChartConfig `json:"chart" yaml:"chart" mapstructure:"chart"`

	// WriteYAML also writes metadata.yaml next to metadata.json.
	WriteYAML bool `json:"write_yaml" yaml:"write_yaml" mapstructure:"write_yaml"`
}

// LedgerConfig holds settings for the conversion ledger database.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Incremental skips sources whose modification time is unchanged
	// since their last successful conversion.
	Incremental bool `json:"incremental" yaml:"incremental" mapstructure:"incremental"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for one officemd invocation.
type Config struct {
	Docx   DocxConfig   `json:"docx" yaml:"docx" mapstructure:"docx"`
	Pptx   PptxConfig   `json:"pptx" yaml:"pptx" mapstructure:"pptx"`
	Ledger LedgerConfig `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when no configuration is given.
func DefaultConfig() Config {
	return Config{
		Docx: DocxConfig{
			InputDir:  "word inmaa data",
			OutputDir: "markdown_split_pages",
		},
		Pptx: PptxConfig{
			Chart: ChartConfig{Width: 1000, Height: 600},
		},
		Ledger: LedgerConfig{
			Path: ".officemd/ledger.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
