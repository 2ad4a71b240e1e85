// Package llmgen abstracts the text-generation service behind a single
// synchronous call. The pipeline never talks to a provider SDK directly; it
// depends on the Generator interface so tests can inject a double and so the
// Gemini and OpenAI backends stay interchangeable.
package llmgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Request describes one generation call.
type Request struct {
	Model       string         // Model identifier; empty uses the backend default
	System      string         // System instruction
	Prompt      string         // User prompt text
	Temperature float64        // Sampling temperature
	JSONOnly    bool           // Ask the backend for a JSON-only response
	Schema      map[string]any // Optional response schema, used with JSONOnly
	SchemaName  string         // Name for the schema when the backend requires one
}

// Generator is the opaque text-generation capability. Implementations make
// exactly one network request per call and never retry.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ServiceError wraps a transport or API failure from a generation backend so
// callers can tell "service unreachable" apart from "service replied garbage"
// (which surfaces as a parse error instead).
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s generation call failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// GenerateSchema reflects a JSON schema map from T for backends that support
// strict structured output.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(fmt.Sprintf("marshal reflected schema: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(fmt.Sprintf("unmarshal reflected schema: %v", err))
	}
	delete(m, "$schema")
	return m
}
