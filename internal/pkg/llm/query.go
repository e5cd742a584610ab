package llm

import (
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Assistant 基于大模型回答分析问题、给洞察打分
type Assistant struct{}

func NewAssistant() *Assistant {
	return &Assistant{}
}

func (a *Assistant) Enabled() bool {
	return Enabled()
}

// AnswerQuery facts 为该用户近期的分析摘要，模型只能引用其中的数据
func (a *Assistant) AnswerQuery(ctx context.Context, question string, facts map[string]any) (string, error) {
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return "", err
	}
	userPrompt := fmt.Sprintf("Question: %s\n\nAnalytics JSON:\n%s", question, factsJSON)

	answer, err := fetchModel(ctx, queryPrompt, userPrompt, 0.2)
	if err != nil {
		log.ErrorContext(ctx, "LLM query failed", "err", err)
		return "", err
	}
	return answer, nil
}

// ScoreInsight 返回 1~10 的优先级，模型输出无法解析时返回错误
func (a *Assistant) ScoreInsight(ctx context.Context, title, description string) (int, error) {
	answer, err := fetchModel(ctx, insightScorePrompt, title+"\n"+description, 0)
	if err != nil {
		return 0, err
	}
	return ParseScore(answer)
}

// ParseScore 取回复中的第一个整数并限制在 [1, 10]
func ParseScore(answer string) (int, error) {
	fields := strings.FieldsFunc(answer, func(r rune) bool { return r < '0' || r > '9' })
	if len(fields) == 0 {
		return 0, fmt.Errorf("no score in llm answer: %q", answer)
	}
	score, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, err
	}
	return min(max(score, 1), 10), nil
}
