package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

var fenceRe = regexp.MustCompile("```json\n?|\n?```")

// Gemini calls the Google generative language API to analyze abstracts.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini returns an annotator for the given model. An empty apiKey is
// allowed; Analyze then reports unavailability instead of failing.
func NewGemini(apiKey, model string, timeout time.Duration) *Gemini {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewGeminiWithBaseURL allows injecting a custom endpoint (used in tests).
func NewGeminiWithBaseURL(apiKey, model string, timeout time.Duration, baseURL string) *Gemini {
	g := NewGemini(apiKey, model, timeout)
	if baseURL != "" {
		g.baseURL = baseURL
	}
	return g
}

// APIError is a non-2xx response from the annotation service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("annotate: api error: status=%d", e.StatusCode)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze sends the abstract to the model and parses its strict-JSON reply.
func (g *Gemini) Analyze(ctx context.Context, abstract string, hints Hints) (*Annotation, error) {
	if g.apiKey == "" {
		return nil, nil
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(abstract, hints)}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("annotate: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("annotate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotate: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("annotate: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		// Empty model response: unavailable, not an error.
		return nil, nil
	}

	return parseAnnotation(out.Candidates[0].Content.Parts[0].Text)
}

func buildPrompt(abstract string, hints Hints) string {
	var b strings.Builder
	b.WriteString("You are an expert researcher. Analyze the following abstract and extract the key information.\n\n")
	b.WriteString("Abstract:\n\"")
	b.WriteString(abstract)
	b.WriteString("\"\n\n")
	if len(hints.Tasks) > 0 {
		fmt.Fprintf(&b, "Candidate tasks: %s\n", strings.Join(hints.Tasks, ", "))
	}
	if len(hints.Methods) > 0 {
		fmt.Fprintf(&b, "Candidate methods: %s\n", strings.Join(hints.Methods, ", "))
	}
	if len(hints.Targets) > 0 {
		fmt.Fprintf(&b, "Candidate targets: %s\n", strings.Join(hints.Targets, ", "))
	}
	b.WriteString("\nOutput strict JSON with the keys:\n")
	b.WriteString("- \"problem\": the problem the authors want to solve\n")
	b.WriteString("- \"method\": the methods used\n")
	b.WriteString("- \"result\": the results obtained\n")
	b.WriteString("- \"future_work\": future challenges or limitations mentioned\n")
	b.WriteString("\nDo not include markdown code blocks or any other text.\n")
	return b.String()
}

// parseAnnotation decodes the model's JSON reply, tolerating stray markdown
// code fences. Replies missing required keys yield (nil, error).
func parseAnnotation(text string) (*Annotation, error) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	var raw struct {
		Problem    string `json:"problem"`
		Method     string `json:"method"`
		Result     string `json:"result"`
		FutureWork string `json:"future_work"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("annotate: parse model reply: %w", err)
	}
	if raw.Problem == "" || raw.Method == "" || raw.Result == "" {
		return nil, fmt.Errorf("annotate: model reply missing required keys")
	}
	if raw.FutureWork == "" {
		raw.FutureWork = "Not stated."
	}
	return &Annotation{
		Problem:    raw.Problem,
		Method:     raw.Method,
		Result:     raw.Result,
		FutureWork: raw.FutureWork,
	}, nil
}
