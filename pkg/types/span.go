// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Span is a contiguous run of text sharing font attributes, as reported
// by the PDF parser. Spans are read-only and discarded after classification.
type Span struct {
	// Text is the span content. Whitespace-only spans are dropped at
	// extraction time.
	Text string

	// Font is the PDF font name (e.g. "Helvetica-Bold").
	Font string

	// FontSize is the unrounded font size in points.
	FontSize float64

	// Bold records whether the font name indicates a bold face. Captured
	// for inspection but not used in level assignment.
	Bold bool

	// Page is the 1-based page number.
	Page int

	// X, Y are the span origin in page coordinates (Y grows upward).
	X, Y float64

	// W is the rendered width of the span.
	W float64
}

// Line is a row of spans merged by page and vertical position.
type Line struct {
	// Text is the joined span text in left-to-right order.
	Text string

	// Size is the rounded font size of the leftmost span in the row.
	Size int

	// Bold records whether the leftmost span uses a bold face.
	Bold bool

	// Page is the 1-based page number.
	Page int

	// Y is the vertical position of the row (higher Y is higher on the page).
	Y float64
}
