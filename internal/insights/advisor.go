package insights

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Fallback texts shown when no advice can be produced.
const (
	TextNoAdvisor = "Connect your AI brain to get personalized financial strategies."
	TextEmpty     = "I couldn't generate insights at this moment. Try again later."
	TextError     = "Error generating insights. Check your connection."
)

// DefaultModel is the Gemini model used for advice.
const DefaultModel = "gemini-2.5-flash"

// Advisor turns a digest into advice text.
type Advisor interface {
	Advise(ctx context.Context, d Digest) (string, error)
}

// GeminiAdvisor calls the Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

// NewGeminiAdvisor builds an advisor from an API key. An empty model selects
// DefaultModel.
func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiAdvisor{client: client, model: model}, nil
}

func (a *GeminiAdvisor) Advise(ctx context.Context, d Digest) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(d.Prompt()), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return TextEmpty, nil
	}
	return text, nil
}

// StaticAdvisor is used when no API key is configured. It always returns the
// same placeholder.
type StaticAdvisor struct{}

func (StaticAdvisor) Advise(context.Context, Digest) (string, error) {
	return TextNoAdvisor, nil
}
