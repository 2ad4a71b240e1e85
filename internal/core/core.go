package core

import "time"

// Platform identifies the social network a post was captured from.
type Platform string

const (
	PlatformInstagram      Platform = "instagram"
	PlatformTikTok         Platform = "tiktok"
	PlatformTwitter        Platform = "twitter"
	PlatformReddit         Platform = "reddit"
	PlatformRedditPosts    Platform = "reddit_posts"
	PlatformRedditComments Platform = "reddit_comments"
	PlatformYouTube        Platform = "youtube"
	PlatformUnknown        Platform = "unknown"
)

// Post represents one captured social media item. It is created by the
// scraping/enrichment layer and consumed read-only by the pipeline; the only
// field the pipeline may fill in is CleanedCaption.
type Post struct {
	Platform       Platform `json:"platform"`        // Originating platform, empty when unknown upstream
	Keyword        string   `json:"keyword"`         // Search term that produced this post
	Author         string   `json:"author"`          // Author handle or name, may be empty/"unknown"
	URL            string   `json:"url"`             // Canonical permalink, may be empty
	RawCaption     string   `json:"raw_caption"`     // Caption/body text as captured
	CleanedCaption string   `json:"cleaned_caption"` // Normalized caption; empty string when unrecoverable
}

// Example is one cited post supporting a narrative.
type Example struct {
	Handle  string `json:"handle"`  // Author handle, "@unknown" when missing
	Excerpt string `json:"excerpt"` // Short excerpt from the post
	URL     string `json:"url"`     // Permalink of the cited post
}

// Narrative is a named, summarized theme inferred from a batch of posts.
type Narrative struct {
	Name     string    `json:"name"`     // Short descriptive title
	Summary  string    `json:"summary"`  // 2-4 sentence summary
	Examples []Example `json:"examples"` // Supporting citations
}

// NarrativeSet is the validated result of one extractor or merger call:
// an ordered sequence of at most a few narratives.
type NarrativeSet struct {
	Narratives []Narrative `json:"narratives"`
}

// Section is one platform's rendered narrative block. Immutable once produced.
type Section struct {
	Platform Platform `json:"platform"`
	Title    string   `json:"title"` // Display name of the platform
	Body     string   `json:"body"`  // Rendered text block
}

// Failure records a platform whose narratives could not be generated.
// The run continues past it; the section is replaced by a placeholder.
type Failure struct {
	Platform Platform `json:"platform"`
	Stage    string   `json:"stage"`   // "extract", "merge" or "synthesize"
	Message  string   `json:"message"` // Human-readable error description
}

// Report is the result of one pipeline run: one section per platform in
// first-seen order, followed by the cross-platform synthesis.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Sections    []Section `json:"sections"`
	Synthesis   string    `json:"synthesis"` // Final merged narratives, prose/markdown
	Failures    []Failure `json:"failures"`
}
