// Package tags evaluates keyword-to-tag rules against entry text.
package tags

import (
	"encoding/json"
	"strings"
)

// Rule maps a keyword to a tag. A rule matches when its keyword occurs as a
// case-insensitive substring of the entry text; an empty keyword never
// matches.
type Rule struct {
	ID      string `yaml:"id"`
	Keyword string `yaml:"keyword"`
	Tag     string `yaml:"tag"`
}

// Derive returns the deduplicated tags whose rules match any of the given
// text fields, preserving first-match order.
func Derive(texts []string, rules []Rule) []string {
	content := strings.ToLower(strings.Join(texts, " "))

	seen := make(map[string]struct{})
	var out []string
	for _, rule := range rules {
		keyword := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if keyword == "" || !strings.Contains(content, keyword) {
			continue
		}
		if _, dup := seen[rule.Tag]; dup {
			continue
		}
		seen[rule.Tag] = struct{}{}
		out = append(out, rule.Tag)
	}
	return out
}

// Serialize renders tags as a bracketed JSON list literal for embedding in
// a metadata block. It stays valid YAML even when tags contain spaces or
// punctuation. An empty set serializes to "".
func Serialize(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return ""
	}
	return string(b)
}
