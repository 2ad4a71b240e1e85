// Package render converts validated narrative sets into the deterministic
// text blocks that make up the report document. Downstream report consumers
// parse the structural markers (narrative numbering, "Summary:"/"Examples:"
// labels), so the format here is load-bearing and must stay byte-stable.
package render

import (
	"fmt"
	"strings"

	"loom/internal/core"
	"loom/internal/platform"
)

// DefaultMaxExamples caps the example lines rendered per narrative.
const DefaultMaxExamples = 10

// ErrorPlaceholder is the section body used when a platform's narratives
// could not be generated; recipients expect a report artifact every run.
const ErrorPlaceholder = "[No narratives generated due to error]"

// EmptyCorpusDocument is the whole report body when no posts survived
// caption filtering.
const EmptyCorpusDocument = "No posts to summarize.\n"

// FinalSectionTitle heads the cross-platform synthesis in the document.
const FinalSectionTitle = "Final Narratives"

// Section renders one platform's narrative set. A set with zero narratives
// still yields a valid section: title and label, no narrative blocks.
func Section(p core.Platform, set core.NarrativeSet, maxExamples int) string {
	if maxExamples <= 0 {
		maxExamples = DefaultMaxExamples
	}

	lines := []string{platform.DisplayName(p), "Narratives"}

	for idx, n := range set.Narratives {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			name = fmt.Sprintf("Narrative %d", idx+1)
		}
		lines = append(lines, fmt.Sprintf("# Narrative %d: %s", idx+1, name))

		if summary := strings.TrimSpace(n.Summary); summary != "" {
			lines = append(lines, "Summary: "+summary)
		}
		lines = append(lines, "", "Examples:")

		examples := n.Examples
		if len(examples) > maxExamples {
			examples = examples[:maxExamples]
		}
		for _, ex := range examples {
			handle := strings.TrimSpace(ex.Handle)
			if handle == "" {
				handle = "@unknown"
			}
			excerpt := strings.ReplaceAll(strings.TrimSpace(ex.Excerpt), "\n", " ")
			lines = append(lines, fmt.Sprintf(`- %s: "%s" (%s)`, handle, excerpt, strings.TrimSpace(ex.URL)))
		}

		lines = append(lines, "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n ") + "\n"
}

// Placeholder renders the stand-in section for a platform whose generation
// failed, so the report still carries one section per platform.
func Placeholder(p core.Platform) string {
	lines := []string{platform.DisplayName(p), "Narratives", ErrorPlaceholder}
	return strings.Join(lines, "\n") + "\n"
}

// Document assembles the full report text: all platform sections in order,
// then the synthesized final section. An empty report states that there was
// no content rather than producing an empty file.
func Document(r core.Report) string {
	if len(r.Sections) == 0 {
		return EmptyCorpusDocument
	}

	var b strings.Builder
	for i, s := range r.Sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Body)
	}

	if r.Synthesis != "" {
		b.WriteString("\n\n")
		b.WriteString(FinalSectionTitle + "\n\n")
		b.WriteString(strings.TrimRight(r.Synthesis, "\n") + "\n")
	}

	return b.String()
}
