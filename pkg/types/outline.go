// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records shared across pipeline stages.
package types

// HeadingLevel is the rank assigned to an outline heading.
type HeadingLevel string

const (
	LevelH1 HeadingLevel = "H1"
	LevelH2 HeadingLevel = "H2"
	LevelH3 HeadingLevel = "H3"
)

// Valid reports whether l is one of the three supported heading levels.
func (l HeadingLevel) Valid() bool {
	switch l {
	case LevelH1, LevelH2, LevelH3:
		return true
	}
	return false
}

// OutlineEntry is a single classified heading, in document reading order.
type OutlineEntry struct {
	// Level is the heading rank: H1, H2, or H3.
	Level HeadingLevel `json:"level" yaml:"level"`

	// Text is the heading text with surrounding whitespace trimmed.
	Text string `json:"text" yaml:"text"`

	// Page is the 1-based page number the heading appears on.
	Page int `json:"page" yaml:"page"`
}

// DocumentOutline is the per-document extraction result written to
// [name].json. Outline is always serialized as a list, never null.
type DocumentOutline struct {
	// Title is the document title taken from the largest-font text on
	// page 1, or "" when no page-1 text exceeds the body size.
	Title string `json:"title" yaml:"title"`

	// Outline lists the classified headings in reading order.
	Outline []OutlineEntry `json:"outline" yaml:"outline"`
}
