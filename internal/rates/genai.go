package rates

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator is the genai-backed implementation of Generator. The
// client is constructed once at the composition root and shared; API
// credentials come from the environment (GEMINI_API_KEY).
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator bound to the given model name.
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiGenerator: create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// RequestStructured issues a structured-output request: the response MIME
// type is pinned to JSON so the model cannot reply with prose.
func (g *GeminiGenerator) RequestStructured(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("RequestStructured: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("RequestStructured: empty response from model")
	}
	return text, nil
}

// RequestWithSearch issues a search-augmented request. Grounded responses
// come back as free text; the caller extracts the embedded array.
func (g *GeminiGenerator) RequestWithSearch(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("RequestWithSearch: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("RequestWithSearch: empty response from model")
	}
	return text, nil
}
