// Package fingerprint computes the digests used for change detection:
// a content fingerprint per bibliography entry and a fast abstract digest
// persisted in note frontmatter.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"io"
	"sort"

	"github.com/starford/ansuz/internal/bib"
)

// Entry returns the hex-encoded SHA-256 digest of the entry content that
// affects rendered output: type, fields, and creators. Field names are
// sorted so parser iteration order cannot change the result.
func Entry(e *bib.Entry) string {
	h := sha256.New()
	io.WriteString(h, "type\x00"+e.Type+"\x00")

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		io.WriteString(h, "field\x00"+name+"\x00")
		for _, v := range e.Fields[name].Values() {
			io.WriteString(h, v+"\x00")
		}
	}

	for _, c := range e.Creators {
		io.WriteString(h, "creator\x00"+c.First+"\x00"+c.Last+"\x00"+c.Literal+"\x00")
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Abstract returns a fast non-cryptographic digest of abstract text,
// suitable for storing in a note's frontmatter to skip redundant AI calls.
func Abstract(text string) string {
	h := fnv.New64a()
	io.WriteString(h, text)
	return fmt.Sprintf("%016x", h.Sum64())
}
