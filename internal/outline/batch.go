// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// SpanReader supplies the spans of a PDF file. The pdftext package
// provides the real implementation; tests supply fakes.
type SpanReader interface {
	ReadSpans(path string) ([]types.Span, error)
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted int
	Failed    int
}

// Total returns the number of PDFs processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Failed
}

// HasFailures reports whether any files failed extraction.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ExtractAll processes every .pdf file in cfg.InputDir, writing one
// [name].json outline per input to cfg.OutputDir. Parse failures are
// logged to w and counted; the batch continues with the next file. An
// unreadable input directory or unwritable output directory aborts the
// run.
func ExtractAll(reader SpanReader, cfg types.ExtractConfig, w io.Writer) (BatchSummary, error) {
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading input directory %s: %w", cfg.InputDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(cfg.InputDir, entry.Name()))
	}

	return ExtractPaths(reader, paths, cfg.OutputDir, w)
}

// ExtractPaths runs the extractor over an explicit list of PDF paths,
// printing per-file status to w and returning a summary.
func ExtractPaths(reader SpanReader, paths []string, outputDir string, w io.Writer) (BatchSummary, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	var summary BatchSummary
	for _, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outPath := filepath.Join(outputDir, base+".json")

		spans, err := reader.ReadSpans(path)
		if err != nil {
			fmt.Fprintf(w, "failed    %s: %v\n", base, err)
			summary.Failed++
			continue
		}

		doc := Build(spans)

		if err := WriteOutline(outPath, doc); err != nil {
			// The output directory went bad; nothing later will succeed.
			return summary, fmt.Errorf("writing %s: %w", outPath, err)
		}

		fmt.Fprintf(w, "extracted %s (%d headings)\n", base, len(doc.Outline))
		summary.Extracted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed (total: %d)\n",
		summary.Extracted, summary.Failed, summary.Total())
	return summary, nil
}

// WriteOutline serializes a DocumentOutline to path as indented JSON.
// Output is overwritten on every run; repeated runs over the same input
// produce byte-identical files.
func WriteOutline(path string, doc types.DocumentOutline) error {
	if doc.Outline == nil {
		doc.Outline = make([]types.OutlineEntry, 0)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling outline: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
