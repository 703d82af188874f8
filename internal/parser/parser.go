// Package parser splits note documents into their frontmatter metadata
// block and free-form body.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result holds the two logical regions of a note document.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
}

// Parse separates YAML frontmatter (between leading --- delimiters) from
// the body. Documents without the two-delimiter structure, and documents
// whose metadata block is not valid YAML, degrade to body-only with a nil
// Frontmatter.
func Parse(data []byte) *Result {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return &Result{Body: string(data)}
	}

	// Find end delimiter.
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter — treat everything as body.
		return &Result{Body: string(data)}
	}

	yamlBlock := rest[:idx]
	// Body starts after closing delimiter line.
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML — body only, no error.
		return &Result{Body: string(data)}
	}

	return &Result{Frontmatter: fm, Body: body}
}

// StringValue returns the frontmatter value for key rendered as a string,
// or "" when the key is absent, nil, or not a scalar.
func StringValue(fm map[string]interface{}, key string) string {
	if fm == nil {
		return ""
	}
	switch v := fm[key].(type) {
	case string:
		return v
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}
