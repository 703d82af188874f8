package bib

import (
	"fmt"
	"strings"

	"github.com/nickng/bibtex"
)

// Diagnostic describes one record that failed to parse. Line is the
// 1-based line number where the record starts.
type Diagnostic struct {
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %v", d.Line, d.Err)
}

// Library is the result of parsing a bibliography source: the records that
// parsed, in source order, plus a diagnostic per record that did not.
type Library struct {
	Entries     []*Entry
	Diagnostics []Diagnostic
}

// Parse splits raw BibTeX source into records and parses each one
// independently, so a single malformed record yields a diagnostic instead
// of failing the whole file.
func Parse(data []byte) *Library {
	lib := &Library{}
	for _, rec := range splitRecords(string(data)) {
		parsed, err := bibtex.Parse(strings.NewReader(rec.text))
		if err != nil {
			lib.Diagnostics = append(lib.Diagnostics, Diagnostic{Line: rec.line, Err: err})
			continue
		}
		for _, be := range parsed.Entries {
			lib.Entries = append(lib.Entries, convert(be))
		}
	}
	return lib
}

type record struct {
	line int
	text string
}

// splitRecords cuts the source at lines starting a new @record. Text before
// the first @ (comments, stray prose) is dropped.
func splitRecords(src string) []record {
	var out []record
	var cur *record
	for i, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &record{line: i + 1}
		}
		if cur != nil {
			cur.text += line + "\n"
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

func convert(be *bibtex.BibEntry) *Entry {
	e := &Entry{
		Key:    be.CiteName,
		Type:   be.Type,
		Fields: make(map[string]FieldValue, len(be.Fields)),
	}
	for name, val := range be.Fields {
		e.Fields[name] = Scalar(val.String())
	}
	if author := e.Field("author"); author != "" {
		e.Creators = parseCreators(author)
	}
	return e
}

// parseCreators splits a BibTeX author field on " and " and derives
// first/last name parts. Brace-wrapped names are kept literal.
func parseCreators(author string) []Creator {
	var out []Creator
	for _, name := range strings.Split(author, " and ") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
			out = append(out, Creator{Literal: strings.Trim(name, "{}")})
			continue
		}
		if i := strings.Index(name, ","); i >= 0 {
			out = append(out, Creator{
				Last:  strings.TrimSpace(name[:i]),
				First: strings.TrimSpace(name[i+1:]),
			})
			continue
		}
		fields := strings.Fields(name)
		if len(fields) == 1 {
			out = append(out, Creator{Last: fields[0]})
			continue
		}
		out = append(out, Creator{
			First: strings.Join(fields[:len(fields)-1], " "),
			Last:  fields[len(fields)-1],
		})
	}
	return out
}
