package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ncitekey: smith2020\nyear: 2020\n---\n# Deep Learning\nBody text.\n")
	r := Parse(input)
	if r.Frontmatter == nil {
		t.Fatal("expected frontmatter")
	}
	if got := StringValue(r.Frontmatter, "citekey"); got != "smith2020" {
		t.Errorf("citekey = %q", got)
	}
	if got := StringValue(r.Frontmatter, "year"); got != "2020" {
		t.Errorf("year = %q", got)
	}
	if r.Body != "# Deep Learning\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r := Parse(input)
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Body != string(input) {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r := Parse(input)
	// Invalid YAML falls back to treating everything as body.
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
	if r.Body != string(input) {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	input := []byte("---\ncitekey: x\nno closing delimiter\n")
	r := Parse(input)
	if r.Frontmatter != nil {
		t.Error("expected nil frontmatter when delimiter is unclosed")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	// Rendering then re-parsing the metadata block must reproduce the pairs.
	input := []byte("---\ncitekey: smith2020\ntitle: \"Deep Learning\"\ntags: [\"ml\", \"dl\"]\n---\nBody\n")
	r := Parse(input)
	if StringValue(r.Frontmatter, "title") != "Deep Learning" {
		t.Errorf("title = %q", StringValue(r.Frontmatter, "title"))
	}
	tags, ok := r.Frontmatter["tags"].([]interface{})
	if !ok || len(tags) != 2 || tags[0] != "ml" {
		t.Errorf("tags = %v", r.Frontmatter["tags"])
	}
}

func TestStringValue_NonScalar(t *testing.T) {
	fm := map[string]interface{}{"list": []interface{}{"a"}, "none": nil}
	if StringValue(fm, "list") != "" {
		t.Error("list value should render empty")
	}
	if StringValue(fm, "none") != "" {
		t.Error("nil value should render empty")
	}
	if StringValue(nil, "x") != "" {
		t.Error("nil map should render empty")
	}
}
