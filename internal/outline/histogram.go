// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"math"
	"sort"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// maxLevels caps the number of distinct heading levels. Sizes beyond the
// three largest candidates are treated as body-like.
const maxLevels = 3

// headingLevels orders the assignable levels from largest candidate size
// down.
var headingLevels = [maxLevels]types.HeadingLevel{
	types.LevelH1, types.LevelH2, types.LevelH3,
}

// SizeHistogram counts text span occurrences per rounded font size.
type SizeHistogram map[int]int

// NewSizeHistogram builds a histogram over all spans in the document.
func NewSizeHistogram(spans []types.Span) SizeHistogram {
	h := make(SizeHistogram, 8)
	for _, s := range spans {
		h[int(math.Round(s.FontSize))]++
	}
	return h
}

// BodySize returns the most frequent font size, assumed to be the body
// text. Ties break toward the smallest size, since body text is typically
// the most common small size. An empty histogram returns 0.
func (h SizeHistogram) BodySize() int {
	body, best := 0, 0
	for size, count := range h {
		if count > best || (count == best && size < body) {
			body, best = size, count
		}
	}
	return body
}

// Candidates returns the distinct sizes strictly greater than body,
// sorted descending.
func (h SizeHistogram) Candidates(body int) []int {
	var sizes []int
	for size := range h {
		if size > body {
			sizes = append(sizes, size)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

// LevelMap associates a font size with a heading rank. It is derived once
// per document and held immutable during the classification pass.
type LevelMap map[int]types.HeadingLevel

// NewLevelMap assigns the largest candidate sizes to H1, H2, and H3 in
// descending order. At most three sizes are mapped.
func NewLevelMap(candidates []int) LevelMap {
	m := make(LevelMap, maxLevels)
	for i, size := range candidates {
		if i >= maxLevels {
			break
		}
		m[size] = headingLevels[i]
	}
	return m
}
