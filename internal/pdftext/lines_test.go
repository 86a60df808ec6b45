// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func span(text string, size float64, page int, x, y float64) types.Span {
	return types.Span{Text: text, FontSize: size, Page: page, X: x, Y: y, W: size * 0.5 * float64(len(text))}
}

func TestMergeLines_ReadingOrder(t *testing.T) {
	spans := []types.Span{
		span("Second line", 10, 1, 72, 680),
		span("First line", 10, 1, 72, 700),
		span("Next page", 10, 2, 72, 700),
	}

	lines := MergeLines(spans)
	require.Len(t, lines, 3)

	assert.Equal(t, "First line", lines[0].Text)
	assert.Equal(t, "Second line", lines[1].Text)
	assert.Equal(t, "Next page", lines[2].Text)
	assert.Equal(t, 1, lines[0].Page)
	assert.Equal(t, 2, lines[2].Page)
}

func TestMergeLines_JoinsRowWithWordGaps(t *testing.T) {
	// Two spans on the same row separated by more than 30% of the font
	// size get a space; a tight gap does not.
	spans := []types.Span{
		{Text: "Hel", FontSize: 12, Page: 1, X: 72, Y: 700, W: 18},
		{Text: "lo", FontSize: 12, Page: 1, X: 90.5, Y: 700, W: 12},
		{Text: "world", FontSize: 12, Page: 1, X: 112, Y: 700, W: 30},
	}

	lines := MergeLines(spans)
	require.Len(t, lines, 1)
	assert.Equal(t, "Hello world", lines[0].Text)
}

func TestMergeLines_RowToleranceGroupsJitteredSpans(t *testing.T) {
	// Spans within 3pt of each other vertically belong to the same row.
	spans := []types.Span{
		span("left", 10, 1, 72, 700),
		span("right", 10, 1, 200, 701.5),
	}

	lines := MergeLines(spans)
	require.Len(t, lines, 1)
	assert.Equal(t, "left right", lines[0].Text)
}

func TestMergeLines_SizeAndBoldFromLeftmostSpan(t *testing.T) {
	spans := []types.Span{
		{Text: "tail", Font: "Helvetica", FontSize: 10, Page: 1, X: 200, Y: 700, W: 20},
		{Text: "Head", Font: "Helvetica-Bold", FontSize: 15.6, Bold: true, Page: 1, X: 72, Y: 700, W: 30},
	}

	lines := MergeLines(spans)
	require.Len(t, lines, 1)
	assert.Equal(t, 16, lines[0].Size)
	assert.True(t, lines[0].Bold)
}

func TestMergeLines_Empty(t *testing.T) {
	assert.Empty(t, MergeLines(nil))
}

func TestIsBoldFont(t *testing.T) {
	tests := []struct {
		font string
		want bool
	}{
		{"Helvetica-Bold", true},
		{"TimesNewRomanPS-BoldMT", true},
		{"Arial-Black", true},
		{"HelveticaNeue-Heavy", true},
		{"Helvetica", false},
		{"Times-Italic", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBoldFont(tt.font), "font %q", tt.font)
	}
}

func TestReadSpans_MissingFile(t *testing.T) {
	var r Reader
	_, err := r.ReadSpans("testdata/does-not-exist.pdf")
	require.Error(t, err)
}
