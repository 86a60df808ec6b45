// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline derives a document outline (title plus H1/H2/H3
// headings) from PDF text spans using a two-pass font-size heuristic.
// See docs/ARCHITECTURE § Outline Heuristic.
package outline

import (
	"sort"
	"strings"

	"github.com/pdiddy/outline-engine/internal/pdftext"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// Build runs the heuristic over a document's spans and returns its
// outline. First pass: a font-size histogram over all pages determines
// the body size, the title claims the page-1 maximum size when it
// exceeds the body, and the largest remaining candidate sizes map to
// heading levels. Second pass: every merged line is classified against
// that map; lines whose size matches no level are discarded.
//
// A document with a single uniform size produces an empty title and
// outline. Bold and font-name attributes are carried on spans but do not
// affect level assignment; the heuristic is size-only.
func Build(spans []types.Span) types.DocumentOutline {
	lines, title, levels := derive(spans)

	entries := make([]types.OutlineEntry, 0)
	for _, line := range lines {
		level, ok := levels[line.Size]
		if !ok {
			continue
		}
		if !IsValidHeading(line.Text) {
			continue
		}
		entries = append(entries, types.OutlineEntry{
			Level: level,
			Text:  line.Text,
			Page:  line.Page,
		})
	}

	return types.DocumentOutline{Title: title, Outline: entries}
}

// derive computes the merged lines, title, and heading level map for a
// document. The title size is removed from the candidate set so title
// text never doubles as a heading.
func derive(spans []types.Span) ([]types.Line, string, LevelMap) {
	hist := NewSizeHistogram(spans)
	body := hist.BodySize()
	lines := pdftext.MergeLines(spans)

	title, titleSize := detectTitle(lines, body)

	candidates := hist.Candidates(body)
	if titleSize > 0 {
		kept := candidates[:0]
		for _, size := range candidates {
			if size != titleSize {
				kept = append(kept, size)
			}
		}
		candidates = kept
	}

	return lines, title, NewLevelMap(candidates)
}

// detectTitle finds the largest rounded size among page-1 lines. When it
// exceeds the body size, the title is all page-1 lines at that size
// joined in reading order; otherwise the title is empty and titleSize
// is 0.
func detectTitle(lines []types.Line, body int) (title string, titleSize int) {
	maxSize := 0
	for _, line := range lines {
		if line.Page != 1 {
			continue
		}
		if line.Size > maxSize {
			maxSize = line.Size
		}
	}
	if maxSize <= body {
		return "", 0
	}

	var parts []string
	for _, line := range lines {
		if line.Page == 1 && line.Size == maxSize {
			parts = append(parts, line.Text)
		}
	}
	return strings.Join(parts, " "), maxSize
}

// SizeCount is one histogram row in an Analysis.
type SizeCount struct {
	Size  int `json:"size" yaml:"size"`
	Count int `json:"count" yaml:"count"`
}

// Analysis is the font-size census reported by the inspect command.
type Analysis struct {
	SpanCount int            `json:"span_count" yaml:"span_count"`
	LineCount int            `json:"line_count" yaml:"line_count"`
	PageCount int            `json:"page_count" yaml:"page_count"`
	BodySize  int            `json:"body_size" yaml:"body_size"`
	Sizes     []SizeCount    `json:"sizes" yaml:"sizes"`
	Levels    map[string]int `json:"levels" yaml:"levels"`
	Title     string         `json:"title" yaml:"title"`
}

// Analyze reports the histogram and derived thresholds for a document
// without classifying its lines.
func Analyze(spans []types.Span) Analysis {
	hist := NewSizeHistogram(spans)
	body := hist.BodySize()
	candidates := hist.Candidates(body)
	lines, title, levels := derive(spans)

	pages := 0
	for _, s := range spans {
		if s.Page > pages {
			pages = s.Page
		}
	}

	sizes := make([]SizeCount, 0, len(hist))
	for _, size := range append(candidates, sortedRemaining(hist, candidates)...) {
		sizes = append(sizes, SizeCount{Size: size, Count: hist[size]})
	}

	levelSizes := make(map[string]int, len(levels))
	for size, level := range levels {
		levelSizes[string(level)] = size
	}

	return Analysis{
		SpanCount: len(spans),
		LineCount: len(lines),
		PageCount: pages,
		BodySize:  body,
		Sizes:     sizes,
		Levels:    levelSizes,
		Title:     title,
	}
}

// sortedRemaining returns the histogram sizes not already listed in head,
// descending.
func sortedRemaining(hist SizeHistogram, head []int) []int {
	seen := make(map[int]bool, len(head))
	for _, s := range head {
		seen[s] = true
	}
	var rest []int
	for size := range hist {
		if !seen[size] {
			rest = append(rest, size)
		}
	}
	// Candidates are already descending; keep the remainder descending too.
	sort.Sort(sort.Reverse(sort.IntSlice(rest)))
	return rest
}
