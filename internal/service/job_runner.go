package service

import (
	"SocialPulse/internal/model"
	"SocialPulse/internal/repository"
	"context"
	"maps"
)

// JobRunner 报告 / 查询任务状态机：pending -> processing -> completed，只进不退。
// 执行失败的任务停留在 processing，不会自动重试
type JobRunner interface {
	StartJob(ctx context.Context, id uint64) error
	CompleteJob(ctx context.Context, id uint64, result map[string]any) error
}

type jobRunnerImpl struct {
	jobRepo repository.JobRepo
}

func NewJobRunner(jobRepo repository.JobRepo) JobRunner {
	return &jobRunnerImpl{
		jobRepo: jobRepo,
	}
}

func (s *jobRunnerImpl) StartJob(ctx context.Context, id uint64) error {
	return s.transition(ctx, id, model.JobStatusPending, model.JobStatusProcessing, nil)
}

// CompleteJob result 中的字段与 completed_at 一起写入
func (s *jobRunnerImpl) CompleteJob(ctx context.Context, id uint64, result map[string]any) error {
	fields := make(map[string]any, len(result)+1)
	maps.Copy(fields, result)
	fields["completed_at"] = nowFunc().UTC()
	return s.transition(ctx, id, model.JobStatusProcessing, model.JobStatusCompleted, fields)
}

func (s *jobRunnerImpl) transition(ctx context.Context, id uint64, from, to string, fields map[string]any) error {
	rows, err := s.jobRepo.UpdateStatus(ctx, id, from, to, fields)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	status, err := s.jobRepo.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	if status == "" {
		return ErrJobNotFound
	}
	return ErrInvalidTransition
}
