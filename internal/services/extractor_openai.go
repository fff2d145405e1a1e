package services

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"tripgen/internal/planner"
	"tripgen/pkg/utils"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIExtractor struct {
	client chatCompleter
	model  string
}

func NewOpenAIExtractor(apiKey, model string) *OpenAIExtractor {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIExtractor{client: openai.NewClient(apiKey), model: model}
}

func (e *OpenAIExtractor) Extract(ctx context.Context, text string) (planner.Preferences, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionInstruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.1,
	})
	if err != nil {
		return planner.Preferences{}, fmt.Errorf("%w: openai: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	if len(resp.Choices) == 0 {
		return planner.Preferences{}, fmt.Errorf("%w: openai returned no choices", utils.ErrUnexpectedBehaviorOfAI)
	}
	return decodePreferences(resp.Choices[0].Message.Content)
}

func decodePreferences(raw string) (planner.Preferences, error) {
	var out extractedPreferences
	if err := json.Unmarshal([]byte(utils.ExtractJSONObject(raw)), &out); err != nil {
		return planner.Preferences{}, fmt.Errorf("%w: decode preferences: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	return out.toPreferences(), nil
}
