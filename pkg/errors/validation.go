package errors

import (
	"regexp"
	"unicode"
)

// nodeIDPattern matches the node id grammar: a letter followed by
// letters, digits, underscores, or hyphens.
var nodeIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// maxSourceBytes bounds accepted diagram text. Diagrams are hand-written;
// anything larger is almost certainly not one.
const maxSourceBytes = 1 << 20

// ValidateNodeID validates a node id against the diagram id grammar.
// Ids that fail here could never have been parsed out of a diagram, so
// rejecting them early gives a clearer error than a silent no-op lookup.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	if !nodeIDPattern.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "invalid node id %q", id)
	}
	return nil
}

// ValidateSource validates raw diagram text before parsing.
//
// The parser itself never fails, so this is the only gate: it rejects
// empty input, oversized input, and text containing null bytes or other
// control characters that would corrupt stored diagrams.
func ValidateSource(source string) error {
	if source == "" {
		return New(ErrCodeInvalidSource, "diagram source cannot be empty")
	}
	if len(source) > maxSourceBytes {
		return New(ErrCodeInvalidSource, "diagram source too large (max %d bytes)", maxSourceBytes)
	}
	for _, r := range source {
		if r == '\x00' {
			return New(ErrCodeInvalidSource, "diagram source contains null bytes")
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return New(ErrCodeInvalidSource, "diagram source contains control characters")
		}
	}
	return nil
}

// ValidateName validates a diagram or session display name.
func ValidateName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}
