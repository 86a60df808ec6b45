// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts positioned text spans from PDF files and merges
// them into reading-order lines. See docs/ARCHITECTURE § Span Extraction.
package pdftext

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Reader extracts spans from PDF files on disk.
type Reader struct{}

// ReadSpans opens the PDF at path and returns every non-whitespace text
// span across all pages, in content-stream order. Corrupt or encrypted
// files return an error rather than aborting the batch.
func (Reader) ReadSpans(path string) (spans []types.Span, err error) {
	// The parser panics on some malformed files; turn that into a
	// per-file error.
	defer func() {
		if r := recover(); r != nil {
			spans = nil
			err = fmt.Errorf("parsing %s: %v", path, r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			spans = append(spans, types.Span{
				Text:     t.S,
				Font:     t.Font,
				FontSize: t.FontSize,
				Bold:     IsBoldFont(t.Font),
				Page:     i,
				X:        t.X,
				Y:        t.Y,
				W:        t.W,
			})
		}
	}

	return spans, nil
}

// IsBoldFont reports whether a PDF font name indicates a bold face.
func IsBoldFont(font string) bool {
	lower := strings.ToLower(font)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}
