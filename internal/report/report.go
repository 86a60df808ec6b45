// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders extracted outlines as human-readable Markdown
// tables of contents. See docs/ARCHITECTURE § Reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Load reads and validates a per-document outline JSON file.
func Load(path string) (types.DocumentOutline, error) {
	var doc types.DocumentOutline
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("reading outline: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing outline: %w", err)
	}
	for i, e := range doc.Outline {
		if !e.Level.Valid() {
			return doc, fmt.Errorf("heading %d has invalid level %q", i, e.Level)
		}
	}
	return doc, nil
}

// indent maps heading levels to Markdown list nesting.
var indent = map[types.HeadingLevel]string{
	types.LevelH1: "",
	types.LevelH2: "  ",
	types.LevelH3: "    ",
}

// RenderTOC renders a document outline as a Markdown table of contents:
// the title as a top-level heading and each entry as a nested list item
// with its page number.
func RenderTOC(doc types.DocumentOutline) string {
	var b strings.Builder

	title := doc.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(doc.Outline) == 0 {
		b.WriteString("_No headings detected._\n")
		return b.String()
	}

	for _, e := range doc.Outline {
		fmt.Fprintf(&b, "%s- %s (p. %d)\n", indent[e.Level], e.Text, e.Page)
	}
	return b.String()
}

// BatchSummary holds counts from a batch render run.
type BatchSummary struct {
	Rendered int
	Failed   int
}

// RenderAll renders every outline JSON file in cfg.OutlinesDir to a
// Markdown file in cfg.ReportsDir, with per-file failure isolation.
func RenderAll(cfg types.ReportConfig, w io.Writer) (BatchSummary, error) {
	entries, err := os.ReadDir(cfg.OutlinesDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading outlines directory %s: %w", cfg.OutlinesDir, err)
	}
	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating reports directory %s: %w", cfg.ReportsDir, err)
	}

	var summary BatchSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ".json")

		doc, err := Load(filepath.Join(cfg.OutlinesDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", base, err)
			summary.Failed++
			continue
		}

		outPath := filepath.Join(cfg.ReportsDir, base+".md")
		if err := os.WriteFile(outPath, []byte(RenderTOC(doc)), 0o644); err != nil {
			return summary, fmt.Errorf("writing %s: %w", outPath, err)
		}

		fmt.Fprintf(w, "rendered %s\n", base)
		summary.Rendered++
	}

	fmt.Fprintf(w, "\n%d rendered, %d failed\n", summary.Rendered, summary.Failed)
	return summary, nil
}
