// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"regexp"
	"strings"
)

// numericLinePattern matches lines that are only digits, dots, or a serial
// column label. Form fields and list markers ("3.", "1.2.", "S.No") match
// heading sizes in some documents but are not headings.
var numericLinePattern = regexp.MustCompile(`^(?i)([\d.]+|s\.no)$`)

// formFieldLabels lists common form labels that show up at heading sizes.
var formFieldLabels = map[string]bool{
	"name":         true,
	"age":          true,
	"date":         true,
	"relationship": true,
	"signature":    true,
}

// IsValidHeading applies content rules to a size-matched line: it must be
// non-empty, must not be a bare number or list marker, must not read like
// a form sentence (more than four words ending with a period), and must
// not be a common form-field label.
func IsValidHeading(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if numericLinePattern.MatchString(text) {
		return false
	}
	if strings.HasSuffix(text, ".") && len(strings.Fields(text)) > 4 {
		return false
	}
	if formFieldLabels[strings.ToLower(strings.TrimSuffix(text, "."))] {
		return false
	}
	return true
}
