// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds one heading with document context for export.
type ExportEntry struct {
	DocID    string `json:"doc_id" yaml:"doc_id"`
	DocTitle string `json:"doc_title" yaml:"doc_title"`
	Level    string `json:"level" yaml:"level"`
	Text     string `json:"text" yaml:"text"`
	Page     int    `json:"page" yaml:"page"`
	Pos      int    `json:"pos" yaml:"pos"`
}

const exportLimit = 100000

// ExportYAML writes the outline index to IndexDir/export.yaml. It
// supports the same filters as Query.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the outline index to IndexDir/export.json. It
// supports the same filters as Query.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			DocID:    r.DocID,
			DocTitle: r.DocTitle,
			Level:    string(r.Level),
			Text:     r.Text,
			Page:     r.Page,
			Pos:      r.Pos,
		}
	}

	return entries, nil
}
