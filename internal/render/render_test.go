package render

import (
	"fmt"
	"strings"
	"testing"

	"loom/internal/core"
)

func exampleN(n int) []core.Example {
	examples := make([]core.Example, n)
	for i := range examples {
		examples[i] = core.Example{
			Handle:  fmt.Sprintf("@user%d", i),
			Excerpt: fmt.Sprintf("excerpt %d", i),
			URL:     fmt.Sprintf("https://example.com/%d", i),
		}
	}
	return examples
}

func TestSectionFormat(t *testing.T) {
	set := core.NarrativeSet{Narratives: []core.Narrative{
		{
			Name:    "Aid Access",
			Summary: "Posts describe blocked convoys.",
			Examples: []core.Example{
				{Handle: "@a", Excerpt: "convoys waiting", URL: "https://x.com/a/1"},
			},
		},
	}}

	got := Section(core.PlatformInstagram, set, 10)
	want := strings.Join([]string{
		"Instagram",
		"Narratives",
		"# Narrative 1: Aid Access",
		"Summary: Posts describe blocked convoys.",
		"",
		"Examples:",
		`- @a: "convoys waiting" (https://x.com/a/1)`,
		"",
	}, "\n")

	if got != want {
		t.Errorf("Section output mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestSectionDefaults(t *testing.T) {
	set := core.NarrativeSet{Narratives: []core.Narrative{
		{
			// No name, no summary: defaults apply, summary line omitted.
			Examples: []core.Example{
				{Excerpt: "multi\nline excerpt", URL: "u"},
			},
		},
	}}

	got := Section(core.PlatformTikTok, set, 10)

	if !strings.Contains(got, "# Narrative 1: Narrative 1") {
		t.Errorf("Missing name should default to 'Narrative 1', got:\n%s", got)
	}
	if strings.Contains(got, "Summary:") {
		t.Error("Empty summary must not produce a Summary line")
	}
	if !strings.Contains(got, `- @unknown: "multi line excerpt" (u)`) {
		t.Errorf("Missing handle should default to @unknown and newlines collapse, got:\n%s", got)
	}
}

func TestSectionExampleCap(t *testing.T) {
	for _, k := range []int{0, 3, 10, 15} {
		set := core.NarrativeSet{Narratives: []core.Narrative{
			{Name: "N", Examples: exampleN(k)},
		}}
		got := Section(core.PlatformReddit, set, 10)

		count := strings.Count(got, "\n- @user")
		want := k
		if want > 10 {
			want = 10
		}
		if count != want {
			t.Errorf("k=%d: expected %d example lines, got %d", k, want, count)
		}
	}
}

func TestSectionZeroNarratives(t *testing.T) {
	got := Section(core.PlatformYouTube, core.NarrativeSet{}, 10)
	want := "YouTube\nNarratives\n"
	if got != want {
		t.Errorf("Empty set should render title and label only, got %q", got)
	}
}

func TestSectionDeterministic(t *testing.T) {
	set := core.NarrativeSet{Narratives: []core.Narrative{
		{Name: "A", Summary: "s", Examples: exampleN(4)},
		{Name: "B", Examples: exampleN(2)},
	}}

	first := Section(core.PlatformTwitter, set, 10)
	second := Section(core.PlatformTwitter, set, 10)
	if first != second {
		t.Error("Rendering the same input twice must be byte-identical")
	}
}

func TestPlaceholder(t *testing.T) {
	got := Placeholder(core.PlatformInstagram)
	if !strings.HasPrefix(got, "Instagram\nNarratives\n") {
		t.Errorf("Placeholder should keep the section frame, got %q", got)
	}
	if !strings.Contains(got, ErrorPlaceholder) {
		t.Error("Placeholder should carry the error marker text")
	}
}

func TestDocumentEmptyCorpus(t *testing.T) {
	got := Document(core.Report{})
	if got != EmptyCorpusDocument {
		t.Errorf("Empty report should state there is no content, got %q", got)
	}
}

func TestDocumentAssembly(t *testing.T) {
	r := core.Report{
		Sections: []core.Section{
			{Platform: core.PlatformInstagram, Body: "Instagram\nNarratives\n"},
			{Platform: core.PlatformTikTok, Body: "TikTok\nNarratives\n"},
		},
		Synthesis: "**Narrative 1: Aid Access**\nSummary here.\n1. @a: \"x\" (u)\n",
	}

	got := Document(r)

	iIdx := strings.Index(got, "Instagram")
	tIdx := strings.Index(got, "TikTok")
	fIdx := strings.Index(got, FinalSectionTitle)
	if iIdx < 0 || tIdx < 0 || fIdx < 0 {
		t.Fatalf("Document missing sections:\n%s", got)
	}
	if !(iIdx < tIdx && tIdx < fIdx) {
		t.Error("Sections must appear in order with the final section last")
	}
	if !strings.Contains(got, "Instagram\nNarratives\n\n\nTikTok") {
		t.Errorf("Sections should be separated by a blank line, got:\n%s", got)
	}
}
