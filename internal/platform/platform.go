// Package platform groups cleaned posts by their originating platform and
// infers the platform from the post URL when the scraper did not record one.
package platform

import (
	"strings"

	"loom/internal/core"
)

// Group is one platform's posts in their original relative order.
type Group struct {
	Platform core.Platform
	Posts    []core.Post
}

// Infer determines the platform from well-known host substrings in the URL.
// Precedence matches the upstream scrapers: instagram, tiktok, twitter/x,
// reddit, youtube; anything else is unknown.
func Infer(url string) core.Platform {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "instagram.com"):
		return core.PlatformInstagram
	case strings.Contains(u, "tiktok.com"):
		return core.PlatformTikTok
	case strings.Contains(u, "x.com"), strings.Contains(u, "twitter.com"):
		return core.PlatformTwitter
	case strings.Contains(u, "reddit.com"):
		return core.PlatformReddit
	case strings.Contains(u, "youtube.com"), strings.Contains(u, "youtu.be"):
		return core.PlatformYouTube
	default:
		return core.PlatformUnknown
	}
}

// Partition groups posts by platform, preserving input order within each
// group and ordering groups by first appearance. Posts whose cleaned caption
// is empty after trimming carry no narrative value and are dropped before
// grouping so they never reach the extractor. Posts without a platform get
// one inferred from their URL.
func Partition(posts []core.Post) []Group {
	var groups []Group
	index := make(map[core.Platform]int)

	for _, p := range posts {
		if strings.TrimSpace(p.CleanedCaption) == "" {
			continue
		}
		if p.Platform == "" {
			p.Platform = Infer(p.URL)
		}
		i, ok := index[p.Platform]
		if !ok {
			i = len(groups)
			index[p.Platform] = i
			groups = append(groups, Group{Platform: p.Platform})
		}
		groups[i].Posts = append(groups[i].Posts, p)
	}

	return groups
}

var displayNames = map[core.Platform]string{
	core.PlatformInstagram:      "Instagram",
	core.PlatformTikTok:         "TikTok",
	core.PlatformTwitter:        "Twitter",
	"x":                         "Twitter",
	"x_search":                  "Twitter",
	core.PlatformReddit:         "Reddit",
	core.PlatformRedditPosts:    "Reddit Posts",
	core.PlatformRedditComments: "Reddit Comments",
	core.PlatformYouTube:        "YouTube",
}

// DisplayName returns the human-readable section title for a platform.
// Unknown platforms are title-cased with underscores turned into spaces.
func DisplayName(p core.Platform) string {
	key := core.Platform(strings.ToLower(strings.TrimSpace(string(p))))
	if name, ok := displayNames[key]; ok {
		return name
	}
	return titleCase(strings.ReplaceAll(string(key), "_", " "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
