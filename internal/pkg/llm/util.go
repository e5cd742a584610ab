package llm

import (
	"SocialPulse/internal/api/config"
	"context"
	"errors"
	log "log/slog"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

var ErrLLMDisabled = errors.New("llm is not configured")

func readPrompt(file string, fallback string) string {
	data, err := os.ReadFile(file)
	if err != nil {
		log.Warn("Prompt file not found, using built-in prompt", "file", file)
		return fallback
	}
	return string(data)
}

func fetchModel(ctx context.Context, systemPrompt string, userPrompt string, temp float64) (string, error) {
	if llmClient == nil {
		return "", ErrLLMDisabled
	}
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer TextSem.Release(1)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}
	log.InfoContext(ctx, "Requesting LLM")
	resp, err := llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.TextModel),
		llms.WithTemperature(temp),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
