package synthesize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"loom/internal/llmgen"
)

type fakeGenerator struct {
	requests []llmgen.Request
	response string
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, req llmgen.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestFinal(t *testing.T) {
	gen := &fakeGenerator{response: "**Narrative 1: Aid Access**\nSummary.\n1. @a: \"x\" (u)"}
	s := New(gen, "final-model", 0.4)

	combined := "Instagram\nNarratives\n# Narrative 1: Aid Access\n"
	out, err := s.Final(context.Background(), combined)
	if err != nil {
		t.Fatalf("Final failed: %v", err)
	}
	if out != gen.response {
		t.Errorf("Final must return the raw model text unchanged, got %q", out)
	}

	if len(gen.requests) != 1 {
		t.Fatalf("Expected exactly one generation request, got %d", len(gen.requests))
	}
	req := gen.requests[0]
	if req.JSONOnly {
		t.Error("Synthesis output is prose, not JSON")
	}
	if req.System != SystemInstruction {
		t.Errorf("Unexpected system instruction: %q", req.System)
	}
	if req.Temperature != 0.4 {
		t.Errorf("Expected temperature 0.4, got %v", req.Temperature)
	}
	if !strings.Contains(req.Prompt, combined) {
		t.Error("Prompt should embed the combined section text")
	}
	if !strings.Contains(req.Prompt, "exactly 3 narratives") {
		t.Error("Prompt should pin the narrative count to exactly 3")
	}
	if !strings.Contains(req.Prompt, "5 to 6 example posts") {
		t.Error("Prompt should ask for 5 to 6 examples per narrative")
	}
}

func TestFinalPropagatesServiceError(t *testing.T) {
	cause := &llmgen.ServiceError{Provider: "gemini", Err: errors.New("network down")}
	gen := &fakeGenerator{err: cause}
	s := New(gen, "", 0.4)

	_, err := s.Final(context.Background(), "text")
	if err == nil {
		t.Fatal("Expected error to propagate")
	}
	var serr *llmgen.ServiceError
	if !errors.As(err, &serr) {
		t.Errorf("Expected *llmgen.ServiceError in chain, got %v", err)
	}
}
