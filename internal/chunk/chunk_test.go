package chunk

import (
	"fmt"
	"testing"

	"loom/internal/core"
)

func makePosts(n int) []core.Post {
	posts := make([]core.Post, n)
	for i := range posts {
		posts[i] = core.Post{CleanedCaption: fmt.Sprintf("post %d", i)}
	}
	return posts
}

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		n         int
		threshold int
		sizes     []int
	}{
		{0, 30, nil},
		{1, 30, []int{1}},
		{30, 30, []int{30}},
		{31, 30, []int{16, 15}},
		{45, 30, []int{23, 22}},
		{60, 30, []int{30, 30}},
		{5, 4, []int{3, 2}},
	}

	for _, tt := range tests {
		chunks := Split(makePosts(tt.n), tt.threshold)
		if len(chunks) != len(tt.sizes) {
			t.Errorf("n=%d t=%d: expected %d chunks, got %d", tt.n, tt.threshold, len(tt.sizes), len(chunks))
			continue
		}
		for i, want := range tt.sizes {
			if len(chunks[i]) != want {
				t.Errorf("n=%d t=%d: chunk %d has %d posts, want %d", tt.n, tt.threshold, i, len(chunks[i]), want)
			}
		}
	}
}

func TestSplitInvariant(t *testing.T) {
	threshold := 30
	for n := 0; n <= 100; n++ {
		chunks := Split(makePosts(n), threshold)

		switch {
		case n == 0:
			if len(chunks) != 0 {
				t.Errorf("n=0: expected 0 chunks, got %d", len(chunks))
			}
		case n <= threshold:
			if len(chunks) != 1 {
				t.Errorf("n=%d: expected 1 chunk, got %d", n, len(chunks))
			}
		default:
			if len(chunks) != 2 {
				t.Errorf("n=%d: expected 2 chunks, got %d", n, len(chunks))
				continue
			}
			a, b := len(chunks[0]), len(chunks[1])
			if a+b != n {
				t.Errorf("n=%d: chunk sizes %d+%d do not sum to n", n, a, b)
			}
			if a-b != 0 && a-b != 1 {
				t.Errorf("n=%d: larger chunk must come first and differ by at most 1, got %d and %d", n, a, b)
			}
		}
	}
}

func TestSplitPreservesOrder(t *testing.T) {
	posts := makePosts(45)
	chunks := Split(posts, 30)

	i := 0
	for _, c := range chunks {
		for _, p := range c {
			want := fmt.Sprintf("post %d", i)
			if p.CleanedCaption != want {
				t.Fatalf("Position %d: expected %q, got %q", i, want, p.CleanedCaption)
			}
			i++
		}
	}
}
