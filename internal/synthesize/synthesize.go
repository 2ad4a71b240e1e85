// Package synthesize performs the second-level merge: it takes the full
// concatenated multi-platform section text and asks the model for one final
// fixed-size set of narratives. Unlike the per-chunk stages the output here
// is prose/markdown for direct report consumption and is not re-parsed.
package synthesize

import (
	"context"
	"fmt"

	"loom/internal/llmgen"
)

// SystemInstruction frames the final merge call.
const SystemInstruction = "You are a social media narrative analyst."

const finalPromptTemplate = `
You are a social media analyst specializing in narrative research. You are given a combined collection of narrative summaries and post excerpts gathered from several social media platforms. The summaries were originally generated per platform, but your task is to treat them as one unified dataset.

Your goals are:

1. Identify and merge the themes across the entire dataset into **exactly 3 narratives**. Merge overlapping or semantically similar narratives into one; do not output more or fewer than 3.
2. For each narrative:
   - Start with a **bolded title** naming the narrative.
   - On its own line, write a clear and concise summary (2 to 4 sentences) that captures the core idea, tone, and emotional resonance.
   - List **5 to 6 example posts** that best illustrate the narrative, numbered as: N. @user: "<excerpt>" (<URL>)
3. Preserve the original wording of every excerpt and every URL exactly as given; never paraphrase an example.
4. Ensure the output is structured and readable, suitable for inclusion in a research report.

Focus on understanding patterns, emotions, and frames of thought expressed by the public.

Here is the full combined content:
"""
%s
"""
`

// Synthesizer makes the one cross-platform merge call per run.
type Synthesizer struct {
	gen         llmgen.Generator
	model       string
	temperature float64
}

// New creates a synthesizer bound to a generator. Model may be empty to use
// the generator's default.
func New(gen llmgen.Generator, model string, temperature float64) *Synthesizer {
	return &Synthesizer{gen: gen, model: model, temperature: temperature}
}

// Final merges the combined section text into the final three narratives.
// The raw model text is returned as-is; service failures propagate to the
// caller, which owns the degradation policy.
func (s *Synthesizer) Final(ctx context.Context, combined string) (string, error) {
	text, err := s.gen.Generate(ctx, llmgen.Request{
		Model:       s.model,
		System:      SystemInstruction,
		Prompt:      fmt.Sprintf(finalPromptTemplate, combined),
		Temperature: s.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("synthesize final narratives: %w", err)
	}
	return text, nil
}
