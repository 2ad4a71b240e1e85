// Package chunk partitions a platform's posts into the work units that are
// sent to the text-generation service, one request per chunk.
package chunk

import "loom/internal/core"

// DefaultThreshold is the post count above which a platform is split in two.
const DefaultThreshold = 30

// Split produces the chunks for one platform. With n posts and threshold t:
// n == 0 yields no chunks, n <= t yields a single chunk, and n > t yields
// exactly two chunks split at ceil(n/2), so the first chunk carries the extra
// post when n is odd. Order is preserved.
func Split(posts []core.Post, threshold int) [][]core.Post {
	n := len(posts)
	if n == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if n <= threshold {
		return [][]core.Post{posts}
	}
	mid := (n + 1) / 2
	return [][]core.Post{posts[:mid], posts[mid:]}
}
