// Package clean normalizes raw captions into the canonical form the rest of
// the pipeline works with: lowercase, punctuation stripped, whitespace
// collapsed. The transform is total and idempotent.
package clean

import (
	"regexp"
	"strings"

	"loom/internal/core"
)

var (
	// Keep letters, digits, underscore, whitespace, hashtags and handles.
	// Captions are multilingual, so the letter/digit classes are Unicode.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s#@]`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

// Caption returns the cleaned form of a raw caption.
func Caption(text string) string {
	text = strings.ToLower(text)
	text = disallowed.ReplaceAllString(text, "")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Records fills CleanedCaption for every post from its RawCaption. Posts that
// already carry a cleaned caption are left untouched. The input slice is not
// modified; a new slice is returned.
func Records(posts []core.Post) []core.Post {
	out := make([]core.Post, len(posts))
	for i, p := range posts {
		if p.CleanedCaption == "" {
			p.CleanedCaption = Caption(p.RawCaption)
		}
		out[i] = p
	}
	return out
}
