// Package parse extracts a narrative set from the free-form text a
// generation model returns. Models are instructed to reply with JSON only,
// but in practice wrap it in prose or markdown fences, so extraction runs a
// tolerance chain: raw JSON first, then a fenced ```json block, then the
// first balanced brace-delimited object anywhere in the text.
package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"loom/internal/core"
)

// ParseError reports that no valid narrative object could be extracted from
// a model response. Raw carries the original text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse narratives from model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// Narratives extracts and validates a narrative set from raw model text.
// The three strategies are attempted in order; the first success wins. A
// top-level object without a "narratives" key is rejected rather than
// silently treated as empty.
func Narratives(text string) (core.NarrativeSet, error) {
	candidates := [][]byte{[]byte(text)}

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, []byte(m[1]))
	}
	if obj, ok := firstBalancedObject(text); ok {
		candidates = append(candidates, []byte(obj))
	}

	var lastErr error
	for _, c := range candidates {
		set, err := decodeSet(c)
		if err == nil {
			return set, nil
		}
		lastErr = err
	}

	return core.NarrativeSet{}, &ParseError{Raw: text, Err: lastErr}
}

func decodeSet(data []byte) (core.NarrativeSet, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return core.NarrativeSet{}, err
	}
	raw, ok := top["narratives"]
	if !ok {
		return core.NarrativeSet{}, fmt.Errorf(`object has no "narratives" key`)
	}

	var narratives []core.Narrative
	if string(raw) != "null" {
		if err := json.Unmarshal(raw, &narratives); err != nil {
			return core.NarrativeSet{}, fmt.Errorf("invalid narratives array: %w", err)
		}
	}

	for i := range narratives {
		narratives[i].Name = strings.TrimSpace(narratives[i].Name)
		narratives[i].Summary = strings.TrimSpace(narratives[i].Summary)
		for j := range narratives[i].Examples {
			ex := &narratives[i].Examples[j]
			ex.Handle = strings.TrimSpace(ex.Handle)
			ex.Excerpt = strings.TrimSpace(ex.Excerpt)
			ex.URL = strings.TrimSpace(ex.URL)
		}
	}

	return core.NarrativeSet{Narratives: narratives}, nil
}

// firstBalancedObject scans for the first '{' and returns the substring up
// to its matching '}', honoring nested braces and JSON string literals.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
