// internal/workers/assessment/submit-assessment/genai.go
package submitassessment

import (
	"context"
	"fmt"

	commonhttp "salesfit-assessment/internal/common/http"

	"google.golang.org/genai"
)

// GenAIGenerator answers prompts with the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator builds a Gemini client. httpClient carries the transport
// timeout and may be nil.
func NewGenAIGenerator(ctx context.Context, cfg *Config, httpClient *commonhttp.Client) (*GenAIGenerator, error) {
	if !cfg.HasCredential() {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient.HTTPClient()
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
