package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/logger"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/minio"
	"SocialPulse/internal/pkg/report"
	"SocialPulse/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"path"
	"time"

	"github.com/google/uuid"
)

type ReportService interface {
	CreateReport(ctx context.Context, userID uint64, req *dto.ReportCreateDTO) (*dto.ReportDTO, error)
	GetReport(ctx context.Context, userID, id uint64) (*dto.ReportDTO, error)
	ListReports(ctx context.Context, userID uint64, query *dto.ReportListQuery) ([]*dto.ReportDTO, error)
	UpdateReport(ctx context.Context, userID, id uint64, req *dto.ReportUpdateDTO) (*dto.ReportDTO, error)
	DeleteReport(ctx context.Context, userID, id uint64) error
	// GenerateReport 将报告置为 processing 并在后台渲染，完成后写入 file_key
	GenerateReport(ctx context.Context, userID, id uint64) (*dto.ReportDTO, error)
	DownloadReport(ctx context.Context, userID, id uint64) (*dto.ReportDownloadDTO, error)
}

// ReportSources 报告内容的数据来源
type ReportSources struct {
	Posts       PostService
	Hashtags    HashtagService
	Patterns    PatternService
	Audiences   AudienceService
	Comments    CommentService
	Competitors CompetitorService
}

type reportServiceImpl struct {
	reportRepo    repository.ReportRepo
	runner        JobRunner
	store         minio.ReportStore
	postSvc       PostService
	hashtagSvc    HashtagService
	patternSvc    PatternService
	audienceSvc   AudienceService
	commentSvc    CommentService
	competitorSvc CompetitorService
	presignTTL    time.Duration
	metrics       *metrics.Metrics
	async         func(func())
}

func NewReportService(
	reportRepo repository.ReportRepo,
	runner JobRunner,
	store minio.ReportStore,
	sources ReportSources,
	presignTTL time.Duration,
	m *metrics.Metrics,
) ReportService {
	return &reportServiceImpl{
		reportRepo:    reportRepo,
		runner:        runner,
		store:         store,
		postSvc:       sources.Posts,
		hashtagSvc:    sources.Hashtags,
		patternSvc:    sources.Patterns,
		audienceSvc:   sources.Audiences,
		commentSvc:    sources.Comments,
		competitorSvc: sources.Competitors,
		presignTTL:    presignTTL,
		metrics:       m,
		async:         func(f func()) { go f() },
	}
}

func (s *reportServiceImpl) CreateReport(ctx context.Context, userID uint64, req *dto.ReportCreateDTO) (*dto.ReportDTO, error) {
	if !report.Supported(req.Format) {
		return nil, ErrFormatNotSupported
	}
	rep := &model.Report{
		UserID:      userID,
		ReportType:  req.ReportType,
		Title:       req.Title,
		Description: req.Description,
		Format:      req.Format,
		Filters: model.ReportFilters{
			Days:        req.Filters.Days,
			AccountID:   req.Filters.AccountID,
			Platform:    req.Filters.Platform,
			ContentType: req.Filters.ContentType,
			HashtagID:   req.Filters.HashtagID,
		},
		Status: model.JobStatusPending,
	}
	if err := s.reportRepo.CreateReport(ctx, rep); err != nil {
		return nil, err
	}
	return toReportDTO(rep), nil
}

func (s *reportServiceImpl) getOwned(ctx context.Context, userID, id uint64) (*model.Report, error) {
	rep, err := s.reportRepo.GetOwnedReport(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}
	return rep, nil
}

func (s *reportServiceImpl) GetReport(ctx context.Context, userID, id uint64) (*dto.ReportDTO, error) {
	rep, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toReportDTO(rep), nil
}

func (s *reportServiceImpl) ListReports(ctx context.Context, userID uint64, query *dto.ReportListQuery) ([]*dto.ReportDTO, error) {
	list, err := s.reportRepo.ListReports(ctx, userID, repository.ReportFilter{
		ReportType: query.ReportType,
		Status:     query.Status,
	})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ReportDTO, 0, len(list))
	for _, r := range list {
		res = append(res, toReportDTO(r))
	}
	return res, nil
}

func (s *reportServiceImpl) UpdateReport(ctx context.Context, userID, id uint64, req *dto.ReportUpdateDTO) (*dto.ReportDTO, error) {
	rep, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if req.Title != nil {
		fields["title"] = *req.Title
		rep.Title = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		rep.Description = req.Description
	}
	if len(fields) > 0 {
		if err = s.reportRepo.UpdateReport(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return toReportDTO(rep), nil
}

func (s *reportServiceImpl) DeleteReport(ctx context.Context, userID, id uint64) error {
	rep, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	rows, err := s.reportRepo.DeleteReport(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}
	if rep.FileKey != nil {
		if err = s.store.Delete(ctx, *rep.FileKey); err != nil {
			log.WarnContext(ctx, "delete report file error", "report_id", id, "file_key", *rep.FileKey, "err", err)
		}
	}
	return nil
}

func (s *reportServiceImpl) GenerateReport(ctx context.Context, userID, id uint64) (*dto.ReportDTO, error) {
	rep, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err = s.runner.StartJob(ctx, rep.ID); err != nil {
		return nil, err
	}
	rep.Status = model.JobStatusProcessing

	jobCtx := logger.NewJobContext(context.WithoutCancel(ctx), "report")
	snapshot := *rep
	s.async(func() {
		s.render(jobCtx, &snapshot)
	})
	return toReportDTO(rep), nil
}

// render 渲染失败时报告停留在 processing
func (s *reportServiceImpl) render(ctx context.Context, rep *model.Report) {
	start := time.Now()
	err := s.renderAndStore(ctx, rep)
	if s.metrics != nil {
		s.metrics.ReportsRendered.WithLabelValues(rep.Format, metrics.Result(err)).Inc()
	}
	if err != nil {
		log.ErrorContext(ctx, "render report error", "report_id", rep.ID, "format", rep.Format, "err", err)
		return
	}
	log.InfoContext(ctx, "report rendered", "report_id", rep.ID, "format", rep.Format, "cost", time.Since(start).String())
}

func (s *reportServiceImpl) renderAndStore(ctx context.Context, rep *model.Report) error {
	doc, err := s.buildDocument(ctx, rep)
	if err != nil {
		return err
	}
	file, err := report.Render(rep.Format, doc)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("reports/%d/%s.%s", rep.UserID, uuid.NewString(), file.Extension)
	if err = s.store.Upload(ctx, key, file.Data, file.ContentType); err != nil {
		return err
	}
	return s.runner.CompleteJob(ctx, rep.ID, map[string]any{"file_key": key})
}

func (s *reportServiceImpl) DownloadReport(ctx context.Context, userID, id uint64) (*dto.ReportDownloadDTO, error) {
	rep, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rep.Status != model.JobStatusCompleted {
		return nil, ErrReportNotReady
	}
	if rep.FileKey == nil || *rep.FileKey == "" {
		return nil, ErrReportFileNotFound
	}

	name := fmt.Sprintf("%s-report-%d%s", rep.ReportType, rep.ID, path.Ext(*rep.FileKey))
	url, err := s.store.PresignedURL(ctx, *rep.FileKey, name, s.presignTTL)
	if err != nil {
		return nil, err
	}
	return &dto.ReportDownloadDTO{
		URL:       url,
		ExpiresAt: nowFunc().UTC().Add(s.presignTTL),
	}, nil
}

func toReportDTO(r *model.Report) *dto.ReportDTO {
	return &dto.ReportDTO{
		ID:          r.ID,
		ReportType:  r.ReportType,
		Title:       r.Title,
		Description: r.Description,
		Format:      r.Format,
		Filters: dto.ReportFiltersDTO{
			Days:        r.Filters.Days,
			AccountID:   r.Filters.AccountID,
			Platform:    r.Filters.Platform,
			ContentType: r.Filters.ContentType,
			HashtagID:   r.Filters.HashtagID,
		},
		HasFile:     r.FileKey != nil && *r.FileKey != "",
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}
