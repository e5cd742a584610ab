package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/llm"
	"SocialPulse/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const answerTopPosts = 5

// QueryAnswerer 回答自然语言分析问题
type QueryAnswerer interface {
	Answer(ctx context.Context, userID uint64, question string) (*model.QueryResult, error)
}

type analyticsAnswerer struct {
	postSvc   PostService
	assistant *llm.Assistant
	days      int
}

// NewAnalyticsAnswerer 先汇总近期分析数据；启用大模型时交给模型作答，否则直接返回摘要
func NewAnalyticsAnswerer(postSvc PostService, assistant *llm.Assistant, days int) QueryAnswerer {
	return &analyticsAnswerer{
		postSvc:   postSvc,
		assistant: assistant,
		days:      days,
	}
}

func (a *analyticsAnswerer) Answer(ctx context.Context, userID uint64, question string) (*model.QueryResult, error) {
	query := &dto.AnalyticsQuery{Days: a.days, Limit: answerTopPosts}
	top, err := a.postSvc.TopPerforming(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	types, err := a.postSvc.ContentComparison(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	summary := map[string]any{
		"window_days":   a.days,
		"top_posts":     top,
		"content_types": types,
	}
	results := make([]any, 0, len(top))
	for _, p := range top {
		results = append(results, p)
	}

	result := &model.QueryResult{
		Query:   question,
		Answer:  summarize(a.days, top, types),
		Source:  "analytics",
		Results: results,
		Summary: summary,
	}

	if a.assistant != nil && a.assistant.Enabled() {
		answer, err := a.assistant.AnswerQuery(ctx, question, summary)
		if err != nil {
			log.WarnContext(ctx, "llm answer failed, fall back to summary", "err", err)
			return result, nil
		}
		result.Answer = answer
		result.Source = "llm"
	}
	return result, nil
}

func summarize(days int, top []*dto.PostPerformanceDTO, types []*dto.ContentTypeStatDTO) string {
	if len(types) == 0 {
		return fmt.Sprintf("No posts were found in the last %d days.", days)
	}
	var b strings.Builder
	best := types[0]
	fmt.Fprintf(&b, "In the last %d days your best content type is %s with an average engagement rate of %.2f%% over %d posts.",
		days, best.ContentType, best.AvgEngagementRate, best.Count)
	if len(top) > 0 {
		fmt.Fprintf(&b, " Your top post (%s, %s) reached %.2f%% engagement.",
			top[0].ContentType, top[0].PostedAt.UTC().Format(time.DateOnly), top[0].EngagementRate)
	}
	return b.String()
}

type QueryService interface {
	// Execute 创建查询并经任务状态机执行，query_text 为空返回 ErrQueryTextEmpty
	Execute(ctx context.Context, userID uint64, req *dto.QueryExecuteDTO) (*dto.QueryDTO, error)
	ListQueries(ctx context.Context, userID uint64, status string) ([]*dto.QueryDTO, error)
	GetQuery(ctx context.Context, userID, id uint64) (*dto.QueryDTO, error)
	DeleteQuery(ctx context.Context, userID, id uint64) error
}

type queryServiceImpl struct {
	queryRepo repository.QueryRepo
	runner    JobRunner
	answerer  QueryAnswerer
}

func NewQueryService(queryRepo repository.QueryRepo, runner JobRunner, answerer QueryAnswerer) QueryService {
	return &queryServiceImpl{
		queryRepo: queryRepo,
		runner:    runner,
		answerer:  answerer,
	}
}

func (s *queryServiceImpl) Execute(ctx context.Context, userID uint64, req *dto.QueryExecuteDTO) (*dto.QueryDTO, error) {
	text := strings.TrimSpace(req.QueryText)
	if text == "" {
		return nil, ErrQueryTextEmpty
	}

	query := &model.Query{
		UserID:    userID,
		QueryText: text,
		Status:    model.JobStatusPending,
	}
	if err := s.queryRepo.CreateQuery(ctx, query); err != nil {
		return nil, err
	}
	if err := s.runner.StartJob(ctx, query.ID); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.answerer.Answer(ctx, userID, text)
	if err != nil {
		log.ErrorContext(ctx, "execute query error", "query_id", query.ID, "err", err)
		return nil, err
	}
	elapsed := time.Since(start).Seconds()

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	err = s.runner.CompleteJob(ctx, query.ID, map[string]any{
		"response":       result.Answer,
		"response_data":  string(payload),
		"execution_time": elapsed,
	})
	if err != nil {
		return nil, err
	}
	return s.GetQuery(ctx, userID, query.ID)
}

func (s *queryServiceImpl) ListQueries(ctx context.Context, userID uint64, status string) ([]*dto.QueryDTO, error) {
	list, err := s.queryRepo.ListQueries(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.QueryDTO, 0, len(list))
	for _, q := range list {
		res = append(res, toQueryDTO(q))
	}
	return res, nil
}

func (s *queryServiceImpl) GetQuery(ctx context.Context, userID, id uint64) (*dto.QueryDTO, error) {
	query, err := s.queryRepo.GetOwnedQuery(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return nil, ErrQueryNotFound
	}
	return toQueryDTO(query), nil
}

func (s *queryServiceImpl) DeleteQuery(ctx context.Context, userID, id uint64) error {
	rows, err := s.queryRepo.DeleteQuery(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrQueryNotFound
	}
	return nil
}

func toQueryDTO(q *model.Query) *dto.QueryDTO {
	res := &dto.QueryDTO{
		ID:            q.ID,
		QueryText:     q.QueryText,
		Response:      q.Response,
		ExecutionTime: q.ExecutionTime,
		Status:        q.Status,
		CreatedAt:     q.CreatedAt,
		CompletedAt:   q.CompletedAt,
	}
	if q.ResponseData != nil {
		if raw, err := json.Marshal(q.ResponseData); err == nil {
			_ = json.Unmarshal(raw, &res.ResponseData)
		}
	}
	return res
}
