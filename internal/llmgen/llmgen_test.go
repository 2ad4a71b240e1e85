package llmgen

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestServiceErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("429 too many requests")
	err := &ServiceError{Provider: "openai", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ServiceError should unwrap to its cause")
	}
	var serr *ServiceError
	if !errors.As(error(err), &serr) {
		t.Error("errors.As should match *ServiceError")
	}
	if !strings.Contains(err.Error(), "openai") {
		t.Errorf("Error message should name the provider, got %q", err.Error())
	}
}

func TestGenerateSchema(t *testing.T) {
	type example struct {
		Handle  string `json:"handle" jsonschema:"required"`
		Excerpt string `json:"excerpt" jsonschema:"required"`
	}
	type payload struct {
		Examples []example `json:"examples" jsonschema:"required"`
	}

	schema := GenerateSchema[payload]()

	if schema["type"] != "object" {
		t.Errorf("Expected top-level object schema, got %v", schema["type"])
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("Expected properties map, got %T", schema["properties"])
	}
	if _, ok := props["examples"]; !ok {
		t.Error("Schema should include the examples property")
	}
	if _, ok := schema["$schema"]; ok {
		t.Error("Reflected schema should not carry the $schema marker")
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewGemini(t.Context(), "", ""); err == nil {
		t.Error("Expected an error when no API key is available")
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewOpenAI("", ""); err == nil {
		t.Error("Expected an error when no API key is available")
	}
}
