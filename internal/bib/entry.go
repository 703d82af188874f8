// Package bib defines the bibliography entry model consumed by the sync
// engine and adapts the external BibTeX parser to it.
package bib

import "strings"

// FieldValue is a bibliography field value: either a single string or an
// ordered list of strings. The first list element is canonical.
type FieldValue struct {
	scalar string
	list   []string
	isList bool
}

// Scalar wraps a single string value.
func Scalar(s string) FieldValue {
	return FieldValue{scalar: s}
}

// List wraps an ordered list of string values.
func List(vs ...string) FieldValue {
	return FieldValue{list: vs, isList: true}
}

// Canonical returns the scalar value, or the first list element.
func (v FieldValue) Canonical() string {
	if v.isList {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.scalar
}

// Values returns all values in order.
func (v FieldValue) Values() []string {
	if v.isList {
		return v.list
	}
	if v.scalar == "" {
		return nil
	}
	return []string{v.scalar}
}

// IsList reports whether the value holds a list.
func (v FieldValue) IsList() bool { return v.isList }

// Creator is one structured author record. Literal is set for corporate
// names that must not be split into first/last parts.
type Creator struct {
	First   string
	Last    string
	Literal string
}

// Entry is one bibliographic record. Key is the stable identity joining the
// record to its note.
type Entry struct {
	Key      string
	Type     string
	Fields   map[string]FieldValue
	Creators []Creator
}

// Field returns the canonical string value of the named field, or "" when
// the field is absent.
func (e *Entry) Field(name string) string {
	v, ok := e.Fields[name]
	if !ok {
		return ""
	}
	return v.Canonical()
}

// AuthorString flattens the entry's author information for display, falling
// back through structured creators, the raw author field as list, the raw
// field as bare string, and finally a fixed sentinel.
func (e *Entry) AuthorString() string {
	if len(e.Creators) > 0 {
		parts := make([]string, 0, len(e.Creators))
		for _, c := range e.Creators {
			switch {
			case c.Literal != "":
				parts = append(parts, c.Literal)
			case c.Last != "":
				parts = append(parts, c.Last)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	raw, ok := e.Fields["author"]
	if !ok {
		return "Unknown Author"
	}
	if raw.IsList() {
		if vs := raw.Values(); len(vs) > 0 {
			return strings.Join(vs, ", ")
		}
		return "Unknown Author"
	}
	if s := raw.Canonical(); s != "" {
		return s
	}
	return "Unknown Author"
}
