package fingerprint

import (
	"testing"

	"github.com/starford/ansuz/internal/bib"
)

func baseEntry() *bib.Entry {
	return &bib.Entry{
		Key:  "smith2020",
		Type: "article",
		Fields: map[string]bib.FieldValue{
			"title":   bib.Scalar("Deep Learning"),
			"year":    bib.Scalar("2020"),
			"journal": bib.Scalar("Nature"),
		},
		Creators: []bib.Creator{{First: "John", Last: "Smith"}},
	}
}

func TestEntry_Deterministic(t *testing.T) {
	a, b := baseEntry(), baseEntry()
	if Entry(a) != Entry(b) {
		t.Error("equal entries must have equal fingerprints")
	}

	// Insertion order must not matter.
	c := baseEntry()
	c.Fields = map[string]bib.FieldValue{
		"journal": bib.Scalar("Nature"),
		"year":    bib.Scalar("2020"),
		"title":   bib.Scalar("Deep Learning"),
	}
	if Entry(a) != Entry(c) {
		t.Error("field insertion order changed the fingerprint")
	}
}

func TestEntry_Sensitivity(t *testing.T) {
	base := Entry(baseEntry())

	fieldChanged := baseEntry()
	fieldChanged.Fields["journal"] = bib.Scalar("Science")
	if Entry(fieldChanged) == base {
		t.Error("field value change not detected")
	}

	creatorChanged := baseEntry()
	creatorChanged.Creators = []bib.Creator{{First: "Jane", Last: "Smith"}}
	if Entry(creatorChanged) == base {
		t.Error("creator change not detected")
	}

	typeChanged := baseEntry()
	typeChanged.Type = "book"
	if Entry(typeChanged) == base {
		t.Error("type change not detected")
	}

	fieldAdded := baseEntry()
	fieldAdded.Fields["abstract"] = bib.Scalar("Text")
	if Entry(fieldAdded) == base {
		t.Error("added field not detected")
	}
}

func TestEntry_FieldNameValueBoundary(t *testing.T) {
	// "ab"+"c" vs "a"+"bc" must not collide.
	a := &bib.Entry{Fields: map[string]bib.FieldValue{"ab": bib.Scalar("c")}}
	b := &bib.Entry{Fields: map[string]bib.FieldValue{"a": bib.Scalar("bc")}}
	if Entry(a) == Entry(b) {
		t.Error("name/value boundary collision")
	}
}

func TestAbstract(t *testing.T) {
	a := Abstract("some abstract text")
	if a != Abstract("some abstract text") {
		t.Error("abstract digest must be deterministic")
	}
	if a == Abstract("some abstract text.") {
		t.Error("abstract change not detected")
	}
	if len(a) != 16 {
		t.Errorf("digest length = %d, want 16 hex chars", len(a))
	}
}
