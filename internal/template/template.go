// Package template renders note text from a flat data record using
// mustache templates.
package template

import (
	"fmt"

	"github.com/cbroglie/mustache"

	"github.com/starford/ansuz/internal/apperr"
)

// defaultTemplate is the built-in note template. Tags and the attachment
// link are triple-braced: tags are a pre-serialized list literal and the
// link is markdown markup, neither of which may be escaped.
const defaultTemplate = `---
citekey: {{citekey}}
title: "{{title}}"
author: "{{author}}"
year: {{year}}
journal: "{{journal}}"
type: {{type}}
tags: {{{tags}}}
---

# {{title}}

{{{pdf_link}}}

## Summary

- {{abstract}}

## Methodology

-

## Results

-

## Open Questions

-

## Ideas

-
`

// defaultTemplateAI extends the metadata block with the AI annotation
// fields. The keys are present even when annotation is unavailable so the
// block shape is stable.
const defaultTemplateAI = `---
citekey: {{citekey}}
title: "{{title}}"
author: "{{author}}"
year: {{year}}
journal: "{{journal}}"
type: {{type}}
tags: {{{tags}}}
ai_problem: "{{ai_problem}}"
ai_method: "{{ai_method}}"
ai_result: "{{ai_result}}"
ai_future_work: "{{ai_future_work}}"
ai_model: "{{ai_model}}"
ai_abstract_hash: "{{ai_abstract_hash}}"
---

# {{title}}

{{{pdf_link}}}

## Summary

- {{abstract}}

## AI Analysis

- Problem: {{ai_problem}}
- Method: {{ai_method}}
- Result: {{ai_result}}
- Future work: {{ai_future_work}}

## Methodology

-

## Results

-

## Open Questions

-

## Ideas

-
`

// Default returns the built-in template, with or without the AI fields.
func Default(withAI bool) string {
	if withAI {
		return defaultTemplateAI
	}
	return defaultTemplate
}

// Render substitutes record values into tmpl. An empty tmpl selects the
// built-in default without AI fields. Placeholders missing from the record
// render as empty strings. A malformed template is an error; no diagnostic
// text is ever returned as note content.
func Render(record map[string]string, tmpl string) (string, error) {
	if tmpl == "" {
		tmpl = defaultTemplate
	}
	out, err := mustache.Render(tmpl, record)
	if err != nil {
		return "", fmt.Errorf("template: %w: %v", apperr.ErrRenderFailed, err)
	}
	return out, nil
}
