package engine

import (
	"context"
	"log/slog"

	"github.com/starford/ansuz/internal/annotate"
	"github.com/starford/ansuz/internal/attach"
	"github.com/starford/ansuz/internal/bib"
	"github.com/starford/ansuz/internal/fingerprint"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/tags"
	"github.com/starford/ansuz/internal/template"
)

// aiKeys are the annotation fields carried in a note's metadata block.
var aiKeys = []string{"ai_problem", "ai_method", "ai_result", "ai_future_work", "ai_model", "ai_abstract_hash"}

// Synthesizer converts one bibliography entry, plus optional AI annotation,
// into rendered note text.
type Synthesizer struct {
	annotator annotate.Annotator
	opts      Options
	logger    *slog.Logger
}

// NewSynthesizer builds a synthesizer. annotator may be nil when AI is
// disabled or unconfigured.
func NewSynthesizer(annotator annotate.Annotator, opts Options, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{annotator: annotator, opts: opts, logger: logger}
}

// Synthesize renders the note text for entry. existingFM is the metadata
// block of the previously stored note, if any; it is consulted for the AI
// cache (ai_abstract_hash) so unchanged abstracts skip the external call.
func (s *Synthesizer) Synthesize(ctx context.Context, e *bib.Entry, existingFM map[string]interface{}) (string, error) {
	record := s.buildRecord(e)

	if s.opts.AIEnabled {
		s.fillAIFields(ctx, e, existingFM, record)
	}

	tmpl := s.opts.Template
	if tmpl == "" {
		tmpl = template.Default(s.opts.AIEnabled)
	}
	return template.Render(record, tmpl)
}

// buildRecord assembles the flat render data record. Every placeholder key
// used by the default templates is present, defaulting to empty string.
func (s *Synthesizer) buildRecord(e *bib.Entry) map[string]string {
	title := e.Field("title")
	abstract := e.Field("abstract")
	journal := e.Field("journal")

	pdfPath := attach.Resolve(e.Field("file"), s.opts.PDFRoot)

	displayAbstract := abstract
	if displayAbstract == "" {
		displayAbstract = "No abstract available."
	}

	record := map[string]string{
		"citekey":  e.Key,
		"title":    title,
		"author":   e.AuthorString(),
		"year":     e.Field("year"),
		"journal":  journal,
		"type":     e.Type,
		"abstract": displayAbstract,
		"tags":     tags.Serialize(tags.Derive([]string{title, abstract, journal}, s.opts.Rules)),
		"pdf_path": pdfPath,
		"pdf_link": attach.LinkMarkup(pdfPath),
	}
	for _, k := range aiKeys {
		record[k] = ""
	}
	return record
}

// fillAIFields populates the ai_* record keys: carried forward verbatim
// from the existing note when the abstract fingerprint matches, freshly
// analyzed otherwise. Annotator failure degrades to empty fields.
func (s *Synthesizer) fillAIFields(ctx context.Context, e *bib.Entry, existingFM map[string]interface{}, record map[string]string) {
	abstract := e.Field("abstract")
	if abstract == "" {
		s.logger.Debug("synth: no abstract, skipping annotation", slog.String("key", e.Key))
		return
	}

	hash := fingerprint.Abstract(abstract)
	if existingFM != nil && parser.StringValue(existingFM, "ai_abstract_hash") == hash {
		s.logger.Debug("synth: annotation cache hit", slog.String("key", e.Key))
		for _, k := range aiKeys {
			record[k] = parser.StringValue(existingFM, k)
		}
		return
	}

	if s.annotator == nil {
		return
	}
	ann, err := s.annotator.Analyze(ctx, abstract, s.opts.AIHints)
	if err != nil {
		s.logger.Warn("synth: annotation failed",
			slog.String("key", e.Key),
			slog.String("error", err.Error()))
		return
	}
	if ann == nil {
		s.logger.Debug("synth: annotator unavailable", slog.String("key", e.Key))
		return
	}

	record["ai_problem"] = ann.Problem
	record["ai_method"] = ann.Method
	record["ai_result"] = ann.Result
	record["ai_future_work"] = ann.FutureWork
	record["ai_model"] = s.opts.AIModel
	record["ai_abstract_hash"] = hash
}
