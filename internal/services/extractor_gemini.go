package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"tripgen/internal/planner"
	"tripgen/pkg/utils"
)

type GeminiExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

func (e *GeminiExtractor) Extract(ctx context.Context, text string) (planner.Preferences, error) {
	m := e.client.GenerativeModel(e.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(512)

	prompt := extractionInstruction + "\n\nRequest:\n" + text
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return planner.Preferences{}, fmt.Errorf("%w: gemini: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return planner.Preferences{}, fmt.Errorf("%w: gemini returned no content", utils.ErrUnexpectedBehaviorOfAI)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return decodePreferences(sb.String())
}

func (e *GeminiExtractor) Close() error {
	return e.client.Close()
}
