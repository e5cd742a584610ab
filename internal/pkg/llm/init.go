package llm

import (
	"SocialPulse/internal/api/config"
	log "log/slog"
	"path/filepath"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

var queryPrompt string
var insightScorePrompt string

// InitLLM llm.enable 关闭时不创建客户端，Enabled 返回 false
func InitLLM() error {
	cfg := config.Cfg.LLM
	if !cfg.Enable {
		log.Info("LLM disabled, natural language queries fall back to analytics summary")
		return nil
	}

	llm, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)
	if err != nil {
		log.Error("LLM init failed", "err", err)
		return err
	}

	llmClient = llm

	queryPrompt = readPrompt(filepath.Join(cfg.PromptPath, "query.txt"), defaultQueryPrompt)
	insightScorePrompt = readPrompt(filepath.Join(cfg.PromptPath, "insight-score.txt"), defaultInsightScorePrompt)

	log.Info("LLM initialized", "model", cfg.TextModel)
	return nil
}

// Enabled 是否已配置可用的大模型
func Enabled() bool {
	return llmClient != nil
}

const defaultQueryPrompt = `You are a social media analytics assistant.
You receive a user's question and a JSON document with their analytics for the recent window.
Answer in at most five sentences using only numbers present in the JSON. If the data cannot answer the question, say so.`

const defaultInsightScorePrompt = `You rate how actionable a social media insight is.
Reply with a single integer from 1 to 10 and nothing else.`
