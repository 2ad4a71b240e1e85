package llmgen

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured or requested.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini generates text through the Google Gemini API.
type Gemini struct {
	modelName string
	gClient   *genai.Client
}

// NewGemini creates a Gemini-backed generator. The API key falls back to the
// GEMINI_API_KEY environment variable when not supplied.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{modelName: modelName, gClient: gClient}, nil
}

// Generate makes a single GenerateContent request.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	modelName := g.modelName
	if req.Model != "" {
		modelName = req.Model
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: req.Prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.JSONOnly {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.gClient.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return "", &ServiceError{Provider: "gemini", Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &ServiceError{Provider: "gemini", Err: fmt.Errorf("empty response from model")}
	}

	return text, nil
}

// ModelName returns the model this generator defaults to.
func (g *Gemini) ModelName() string {
	return g.modelName
}
