// Package narrative turns chunks of posts into candidate narrative sets by
// prompting the text-generation service, and consolidates the two candidate
// sets of a split platform into one.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"loom/internal/core"
	"loom/internal/llmgen"
	"loom/internal/parse"
	"loom/internal/platform"
)

// maxCaptionChars bounds the caption length in the prompt's post lines.
const maxCaptionChars = 280

type schemaExample struct {
	Handle  string `json:"handle" jsonschema:"required"`
	Excerpt string `json:"excerpt" jsonschema:"required"`
	URL     string `json:"url" jsonschema:"required"`
}

type schemaNarrative struct {
	Name     string          `json:"name" jsonschema:"required"`
	Summary  string          `json:"summary" jsonschema:"required"`
	Examples []schemaExample `json:"examples" jsonschema:"required"`
}

type schemaPayload struct {
	Narratives []schemaNarrative `json:"narratives" jsonschema:"required"`
}

var narrativesSchema = llmgen.GenerateSchema[schemaPayload]()

// Extractor makes the per-chunk and merge calls for one pipeline run.
// Exactly one request is sent per call; malformed output is not retried and
// surfaces as a parse error.
type Extractor struct {
	gen         llmgen.Generator
	model       string
	temperature float64
	topic       string
}

// NewExtractor creates an extractor bound to a generator. Model may be empty
// to use the generator's default; topic frames the analysis domain.
func NewExtractor(gen llmgen.Generator, model string, temperature float64, topic string) *Extractor {
	return &Extractor{gen: gen, model: model, temperature: temperature, topic: topic}
}

// ExtractChunk asks the model for 2-3 candidate narratives covering one
// chunk of a platform's posts.
func (e *Extractor) ExtractChunk(ctx context.Context, p core.Platform, posts []core.Post) (core.NarrativeSet, error) {
	lines := make([]string, len(posts))
	for i, post := range posts {
		lines[i] = formatPost(post)
	}
	prompt := buildExtractPrompt(platform.DisplayName(p), e.topic, strings.Join(lines, "\n"))

	text, err := e.gen.Generate(ctx, llmgen.Request{
		Model:       e.model,
		System:      SystemInstruction,
		Prompt:      prompt,
		Temperature: e.temperature,
		JSONOnly:    true,
		Schema:      narrativesSchema,
		SchemaName:  "Narratives",
	})
	if err != nil {
		return core.NarrativeSet{}, fmt.Errorf("extract %s chunk: %w", p, err)
	}

	return parse.Narratives(text)
}

// Merge consolidates the candidate sets of a platform's two chunks into one
// bounded set. Only invoked when the platform was split.
func (e *Extractor) Merge(ctx context.Context, p core.Platform, a, b core.NarrativeSet) (core.NarrativeSet, error) {
	jsonA, err := json.Marshal(a)
	if err != nil {
		return core.NarrativeSet{}, fmt.Errorf("serialize candidate set A: %w", err)
	}
	jsonB, err := json.Marshal(b)
	if err != nil {
		return core.NarrativeSet{}, fmt.Errorf("serialize candidate set B: %w", err)
	}

	prompt := buildMergePrompt(platform.DisplayName(p), string(jsonA), string(jsonB))

	text, err := e.gen.Generate(ctx, llmgen.Request{
		Model:       e.model,
		System:      SystemInstruction,
		Prompt:      prompt,
		Temperature: e.temperature,
		JSONOnly:    true,
		Schema:      narrativesSchema,
		SchemaName:  "Narratives",
	})
	if err != nil {
		return core.NarrativeSet{}, fmt.Errorf("merge %s narratives: %w", p, err)
	}

	return parse.Narratives(text)
}

// formatPost renders one post as a single prompt line:
// - @author: "caption" (url), with the caption capped at 280 characters and
// newlines collapsed to spaces.
func formatPost(p core.Post) string {
	caption := strings.TrimSpace(p.CleanedCaption)
	caption = strings.ReplaceAll(caption, "\r", " ")
	caption = strings.ReplaceAll(caption, "\n", " ")
	if runes := []rune(caption); len(runes) > maxCaptionChars {
		caption = string(runes[:maxCaptionChars-3]) + "..."
	}

	author := strings.TrimSpace(p.Author)
	if author == "" {
		author = "unknown"
	}

	return fmt.Sprintf(`- @%s: "%s" (%s)`, author, caption, strings.TrimSpace(p.URL))
}
