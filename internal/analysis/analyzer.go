// Package analysis turns a canvas into a structured consultant report via
// the Gemini API, with a two-attempt escalation policy: a schema-constrained
// request first, then one unconstrained retry parsed leniently.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

// Generator is the slice of the Gemini client the analyzer needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithSchema(ctx context.Context, prompt string, schema map[string]any) (string, error)
}

// Analyzer runs the two-stage analysis pipeline.
type Analyzer struct {
	client Generator
	log    *zap.Logger
}

// NewAnalyzer builds an analyzer on top of a Gemini client.
func NewAnalyzer(client Generator, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{client: client, log: log}
}

// Analyze submits the canvas and returns the parsed report. Any failure of
// the structured attempt (schema rejection, transport error, empty or
// malformed response) triggers exactly one fallback attempt; if that also
// fails the error is returned and no partial result is produced. Results are
// never cached: every call is a fresh request.
func (a *Analyzer) Analyze(ctx context.Context, data canvas.CanvasData) (*canvas.AnalysisResult, error) {
	prompt := BuildPrompt(data)

	result, err := a.tryStructured(ctx, prompt)
	if err != nil {
		a.log.Warn("structured analysis failed, falling back to text generation", zap.Error(err))
		result, err = a.tryFallback(ctx, prompt)
	}
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return result, nil
}

// tryStructured issues the schema-constrained request and parses the reply
// strictly as JSON.
func (a *Analyzer) tryStructured(ctx context.Context, prompt string) (*canvas.AnalysisResult, error) {
	text, err := a.client.GenerateWithSchema(ctx, prompt, ResultSchema())
	if err != nil {
		return nil, err
	}
	return decodeResult(text)
}

// tryFallback issues the unconstrained request with an explicit raw-JSON
// instruction and strips a surrounding fenced code block before parsing.
func (a *Analyzer) tryFallback(ctx context.Context, prompt string) (*canvas.AnalysisResult, error) {
	text, err := a.client.Generate(ctx, prompt+fallbackSuffix)
	if err != nil {
		return nil, err
	}
	return decodeResult(stripFence(text))
}

func decodeResult(text string) (*canvas.AnalysisResult, error) {
	var result canvas.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}
	return &result, nil
}

var (
	taggedFence   = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n\\s*```")
	untaggedFence = regexp.MustCompile("(?s)```(.*?)```")
)

// stripFence extracts the body of a fenced code block (language-tagged or
// not) from the response text; text without a fence passes through.
func stripFence(text string) string {
	if m := taggedFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := untaggedFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
