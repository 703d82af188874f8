// Package annotate extracts structured fields from paper abstracts via an
// external AI service.
package annotate

import "context"

// Annotation is the structured result of analyzing one abstract.
type Annotation struct {
	Problem    string
	Method     string
	Result     string
	FutureWork string
}

// Hints are candidate vocabularies passed to the annotator to steer its
// output. All slices may be empty.
type Hints struct {
	Tasks   []string
	Methods []string
	Targets []string
}

// Annotator analyzes abstract text. A (nil, nil) return means the service
// is unavailable (missing credentials, empty model response); a non-nil
// error means the call failed. Callers degrade both cases to empty fields.
type Annotator interface {
	Analyze(ctx context.Context, abstract string, hints Hints) (*Annotation, error)
}
