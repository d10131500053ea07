// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AssetType categorizes an auxiliary file extracted from a presentation.
type AssetType string

const (
	AssetChart  AssetType = "chart"
	AssetImage  AssetType = "image"
	AssetTable  AssetType = "table"
	AssetObject AssetType = "object"
)

// AssetMeta records one extracted chart, image, table or embedded object.
type AssetMeta struct {
	DocID    string    `json:"doc_id" yaml:"doc_id"`
	SlideNum int       `json:"slide_num" yaml:"slide_num"`
	Type     AssetType `json:"type" yaml:"type"`

	// ChartID, ImageID and TableID carry the per-type identifier; only the
	// one matching Type is set.
	ChartID int    `json:"chart_id,omitempty" yaml:"chart_id,omitempty"`
	ImageID int    `json:"image_id,omitempty" yaml:"image_id,omitempty"`
	TableID string `json:"table_id,omitempty" yaml:"table_id,omitempty"`

	Filename string `json:"filename" yaml:"filename"`

	// Path is the file path of the asset, or a note when nothing was
	// written (e.g. a chart that could not be rendered).
	Path string `json:"path" yaml:"path"`
}

// SeriesData is one named data series of a chart.
type SeriesData struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// ChartData is the data extracted from a chart part.
type ChartData struct {
	Title       string       `json:"title" yaml:"title"`
	ChartType   string       `json:"chart_type" yaml:"chart_type"`
	Categories  []string     `json:"categories" yaml:"categories"`
	Series      []SeriesData `json:"series_data" yaml:"series_data"`
	Has3D       bool         `json:"has_3d" yaml:"has_3d"`
	DocID       string       `json:"doc_id" yaml:"doc_id"`
	IsHybrid    bool         `json:"is_hybrid,omitempty" yaml:"is_hybrid,omitempty"`
	TableLabels []string     `json:"table_labels,omitempty" yaml:"table_labels,omitempty"`
}

// TableData is the JSON document written for each presentation table.
type TableData struct {
	DocID    string     `json:"doc_id" yaml:"doc_id"`
	SlideNum int        `json:"slide_num" yaml:"slide_num"`
	Rows     [][]string `json:"rows" yaml:"rows"`
}

// OutputStructure describes the layout of a presentation output directory.
type OutputStructure struct {
	MainFile        string `json:"main_file" yaml:"main_file"`
	ChartsDirectory string `json:"charts_directory" yaml:"charts_directory"`
	ImagesDirectory string `json:"images_directory" yaml:"images_directory"`
	DataDirectory   string `json:"data_directory" yaml:"data_directory"`
	SummaryFile     string `json:"summary_file" yaml:"summary_file"`
}

// PresentationMetadata is the run summary written as metadata.json.
type PresentationMetadata struct {
	DocID           string          `json:"doc_id" yaml:"doc_id"`
	SourceFile      string          `json:"source_file" yaml:"source_file"`
	ConversionDate  string          `json:"conversion_date" yaml:"conversion_date"`
	TotalSlides     int             `json:"total_slides" yaml:"total_slides"`
	ChartsExtracted int             `json:"charts_extracted" yaml:"charts_extracted"`
	ImagesExtracted int             `json:"images_extracted" yaml:"images_extracted"`
	ChartMetadata   []AssetMeta     `json:"chart_metadata" yaml:"chart_metadata"`
	OutputStructure OutputStructure `json:"output_structure" yaml:"output_structure"`
}
