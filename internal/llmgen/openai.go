package llmgen

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// DefaultOpenAIModel is used when no model is configured or requested.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI generates text through the OpenAI Responses API.
type OpenAI struct {
	modelName string
	client    *openai.Client
}

// NewOpenAI creates an OpenAI-backed generator. The API key falls back to
// the OPENAI_API_KEY environment variable when not supplied.
func NewOpenAI(apiKey, modelName string) (*OpenAI, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required. Set OPENAI_API_KEY or ai.openai.api_key in the config file")
	}
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{modelName: modelName, client: &client}, nil
}

// Generate makes a single Responses API request.
func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	modelName := o.modelName
	if req.Model != "" {
		modelName = req.Model
	}

	params := responses.ResponseNewParams{
		Model: modelName,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Prompt, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if req.System != "" {
		params.Instructions = openai.String(req.System)
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.JSONOnly && req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "Response"
		}
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   name,
					Schema: req.Schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		}
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", &ServiceError{Provider: "openai", Err: err}
	}

	text := resp.OutputText()
	if text == "" {
		return "", &ServiceError{Provider: "openai", Err: fmt.Errorf("empty response from model")}
	}

	return text, nil
}

// ModelName returns the model this generator defaults to.
func (o *OpenAI) ModelName() string {
	return o.modelName
}
