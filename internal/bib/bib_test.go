package bib

import (
	"strings"
	"testing"
)

const sampleBib = `@article{smith2020,
  title   = {Deep Learning},
  author  = {Smith, John and Doe, Jane},
  year    = {2020},
  journal = {Nature},
}

@book{jones2019,
  title  = {Systems},
  author = {Jones, Alice},
  year   = {2019},
}
`

func TestParse_Basic(t *testing.T) {
	lib := Parse([]byte(sampleBib))
	if len(lib.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", lib.Diagnostics)
	}
	if len(lib.Entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(lib.Entries))
	}

	e := lib.Entries[0]
	if e.Key != "smith2020" {
		t.Errorf("key = %q", e.Key)
	}
	if e.Type != "article" {
		t.Errorf("type = %q", e.Type)
	}
	if e.Field("title") != "Deep Learning" {
		t.Errorf("title = %q", e.Field("title"))
	}
	if e.Field("nosuch") != "" {
		t.Errorf("missing field should be empty")
	}
	if len(e.Creators) != 2 || e.Creators[0].Last != "Smith" || e.Creators[0].First != "John" {
		t.Errorf("creators = %+v", e.Creators)
	}
}

func TestParseCreators(t *testing.T) {
	got := parseCreators("Smith, John and {ACME Research Group} and Ada Lovelace and Plato")
	want := []Creator{
		{Last: "Smith", First: "John"},
		{Literal: "ACME Research Group"},
		{First: "Ada", Last: "Lovelace"},
		{Last: "Plato"},
	}
	if len(got) != len(want) {
		t.Fatalf("creators = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("creator[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParse_MalformedRecordIsolated(t *testing.T) {
	src := "@article{broken,\n  title = {Unclosed\n\n" + sampleBib
	lib := Parse([]byte(src))
	if len(lib.Entries) < 2 {
		t.Fatalf("good records should survive a malformed one, got %d entries", len(lib.Entries))
	}
	if len(lib.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for the malformed record")
	}
	if lib.Diagnostics[0].Line != 1 {
		t.Errorf("diagnostic line = %d, want 1", lib.Diagnostics[0].Line)
	}
	if !strings.Contains(lib.Diagnostics[0].String(), "line 1") {
		t.Errorf("diagnostic string = %q", lib.Diagnostics[0].String())
	}
}

func TestParse_Empty(t *testing.T) {
	lib := Parse([]byte("% just a comment\n"))
	if len(lib.Entries) != 0 || len(lib.Diagnostics) != 0 {
		t.Errorf("entries = %d, diagnostics = %d", len(lib.Entries), len(lib.Diagnostics))
	}
}

func TestFieldValue_List(t *testing.T) {
	v := List("first", "second")
	if v.Canonical() != "first" {
		t.Errorf("canonical = %q", v.Canonical())
	}
	if len(v.Values()) != 2 {
		t.Errorf("values = %v", v.Values())
	}
	if List().Canonical() != "" {
		t.Error("empty list canonical should be empty string")
	}
}

func TestAuthorString_Fallbacks(t *testing.T) {
	cases := []struct {
		name  string
		entry *Entry
		want  string
	}{
		{
			name: "structured creators win",
			entry: &Entry{
				Fields:   map[string]FieldValue{"author": Scalar("raw ignored")},
				Creators: []Creator{{First: "John", Last: "Smith"}, {Literal: "ACME"}},
			},
			want: "Smith, ACME",
		},
		{
			name:  "raw list",
			entry: &Entry{Fields: map[string]FieldValue{"author": List("Smith", "Doe")}},
			want:  "Smith, Doe",
		},
		{
			name:  "raw string",
			entry: &Entry{Fields: map[string]FieldValue{"author": Scalar("J. Smith et al.")}},
			want:  "J. Smith et al.",
		},
		{
			name:  "missing",
			entry: &Entry{Fields: map[string]FieldValue{}},
			want:  "Unknown Author",
		},
		{
			name:  "empty raw",
			entry: &Entry{Fields: map[string]FieldValue{"author": Scalar("")}},
			want:  "Unknown Author",
		},
	}
	for _, tc := range cases {
		if got := tc.entry.AuthorString(); got != tc.want {
			t.Errorf("%s: author = %q, want %q", tc.name, got, tc.want)
		}
	}
}
