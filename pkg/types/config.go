// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractConfig holds settings for the outline extraction stage.
type ExtractConfig struct {
	// InputDir is the directory scanned for .pdf files (default "input").
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory [name].json outlines are written to
	// (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// IndexConfig holds settings for the outline index stage.
type IndexConfig struct {
	// IndexDir is the directory holding outline.db and export files
	// (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// OutlinesDir is the directory containing extracted outline JSON
	// files, normally the extraction OutputDir.
	OutlinesDir string `json:"outlines_dir" yaml:"outlines_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ReportConfig holds settings for the Markdown report stage.
type ReportConfig struct {
	// OutlinesDir is the directory containing extracted outline JSON files.
	OutlinesDir string `json:"outlines_dir" yaml:"outlines_dir"`

	// ReportsDir is the directory rendered Markdown reports are written to.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
}
