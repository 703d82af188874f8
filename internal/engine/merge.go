package engine

import (
	"regexp"
	"strings"
)

// Policy governs how a freshly synthesized note is reconciled with an
// existing one.
type Policy string

const (
	// PolicyPreserve replaces the metadata block and keeps the old body.
	PolicyPreserve Policy = "preserve"
	// PolicyOverwrite replaces the whole note.
	PolicyOverwrite Policy = "overwrite"
	// PolicySkip leaves an existing note untouched.
	PolicySkip Policy = "skip"
)

// boundaryRe matches a metadata boundary line.
var boundaryRe = regexp.MustCompile(`(?m)^---$`)

// Merge reconciles previously stored note text with freshly rendered text
// under the given policy. The boolean is false when no write is needed:
// skip with an existing note, or a result byte-identical to oldText.
//
// Under preserve, the old document's body is everything past its second
// boundary line, rejoined so boundary-like text inside the body survives.
// An old document without that structure is treated as pure body; a new
// document without it is already final and returned as-is.
func Merge(oldText, newText string, policy Policy) (string, bool) {
	switch policy {
	case PolicySkip:
		return "", false
	case PolicyOverwrite:
		if newText == oldText {
			return "", false
		}
		return newText, true
	}

	oldParts := boundaryRe.Split(oldText, -1)
	oldBody := oldText
	if len(oldParts) >= 3 {
		oldBody = strings.Join(oldParts[2:], "---")
	}

	newParts := boundaryRe.Split(newText, -1)
	if len(newParts) < 3 {
		// Malformed render output; nothing safe to merge.
		if newText == oldText {
			return "", false
		}
		return newText, true
	}
	newMeta := "---\n" + strings.TrimSpace(newParts[1]) + "\n---"

	if oldBody != "" && !strings.HasPrefix(oldBody, "\n") {
		oldBody = "\n" + oldBody
	}

	merged := newMeta + oldBody
	if merged == oldText {
		return "", false
	}
	return merged, true
}
