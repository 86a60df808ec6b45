// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

const (
	// rowTolerance is the Y distance within which spans belong to the
	// same row.
	rowTolerance = 3.0

	// wordGapFactor is the fraction of the font size beyond which a
	// horizontal gap between spans becomes a word boundary.
	wordGapFactor = 0.3
)

// MergeLines groups spans into rows by page and vertical position and
// joins each row into a Line. Lines come back in reading order: page
// ascending, then top-to-bottom (Y descending). A line's Size and Bold
// come from its leftmost span.
func MergeLines(spans []types.Span) []types.Line {
	byPage := make(map[int][]types.Span)
	var pages []int
	for _, s := range spans {
		if _, ok := byPage[s.Page]; !ok {
			pages = append(pages, s.Page)
		}
		byPage[s.Page] = append(byPage[s.Page], s)
	}
	sort.Ints(pages)

	var lines []types.Line
	for _, p := range pages {
		for _, row := range groupRows(byPage[p]) {
			line := joinRow(row)
			if line.Text == "" {
				continue
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// groupRows buckets one page's spans into rows by Y, returning rows
// sorted top-to-bottom.
func groupRows(spans []types.Span) [][]types.Span {
	type bucket struct {
		y     float64
		spans []types.Span
	}

	var buckets []bucket
	for _, s := range spans {
		placed := false
		for i := range buckets {
			if math.Abs(s.Y-buckets[i].y) <= rowTolerance {
				buckets[i].spans = append(buckets[i].spans, s)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{y: s.Y, spans: []types.Span{s}})
		}
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].y > buckets[j].y
	})

	rows := make([][]types.Span, len(buckets))
	for i, b := range buckets {
		rows[i] = b.spans
	}
	return rows
}

// joinRow orders a row's spans left-to-right and joins their text,
// inserting a space wherever the horizontal gap exceeds the word
// threshold for the current font size.
func joinRow(row []types.Span) types.Line {
	sort.Slice(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})

	var b strings.Builder
	var prevEnd float64
	for i, s := range row {
		if i > 0 {
			gap := s.X - prevEnd
			threshold := wordGapFactor * s.FontSize
			if threshold == 0 {
				threshold = 3.0
			}
			if gap > threshold {
				b.WriteString(" ")
			}
		}
		b.WriteString(s.Text)
		prevEnd = s.X + s.W
	}

	first := row[0]
	return types.Line{
		Text: strings.TrimSpace(b.String()),
		Size: int(math.Round(first.FontSize)),
		Bold: first.Bold,
		Page: first.Page,
		Y:    first.Y,
	}
}
