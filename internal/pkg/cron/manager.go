package cron

import (
	"SocialPulse/internal/api/config"
	"SocialPulse/internal/job"
	log "log/slog"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	specs             config.CronConfig
	accountSyncJob    *job.AccountSyncJob
	patternFoldJob    *job.PatternFoldJob
	insightJob        *job.InsightJob
	competitorSyncJob *job.CompetitorSyncJob
}

func NewCronManager(
	specs config.CronConfig,
	accountSyncJob *job.AccountSyncJob,
	patternFoldJob *job.PatternFoldJob,
	insightJob *job.InsightJob,
	competitorSyncJob *job.CompetitorSyncJob,
) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		specs:             specs,
		accountSyncJob:    accountSyncJob,
		patternFoldJob:    patternFoldJob,
		insightJob:        insightJob,
		competitorSyncJob: competitorSyncJob,
	}
}

// RegisterJobs 注册定时任务，表达式含秒。表达式为空的任务不注册，返回实际注册的数量
func (s *Manager) RegisterJobs() (int, error) {
	jobs := []struct {
		name string
		spec string
		job  cron.Job
	}{
		{"account_sync", s.specs.AccountSync, s.accountSyncJob},
		{"pattern_fold", s.specs.PatternFold, s.patternFoldJob},
		{"insight_generate", s.specs.InsightGenerate, s.insightJob},
		{"competitor_sync", s.specs.CompetitorSync, s.competitorSyncJob},
	}
	registered := 0
	for _, j := range jobs {
		if j.spec == "" {
			log.Info("cron job disabled", "job", j.name)
			continue
		}
		if _, err := s.engine.AddJob(j.spec, j.job); err != nil {
			return registered, errors.Wrapf(err, "register cron job %s", j.name)
		}
		registered++
		log.Info("cron job registered", "job", j.name, "spec", j.spec)
	}
	return registered, nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在运行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
