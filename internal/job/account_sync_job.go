package job

import (
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/service"
	"context"
	log "log/slog"
)

type AccountSyncJob struct {
	accountSvc service.AccountService
	metrics    *metrics.Metrics
}

func NewAccountSyncJob(accountSvc service.AccountService, m *metrics.Metrics) *AccountSyncJob {
	return &AccountSyncJob{accountSvc: accountSvc, metrics: m}
}

func (s *AccountSyncJob) Run() {
	run("account_sync", "", s.metrics, func(ctx context.Context) error {
		synced, err := s.accountSvc.SyncActiveAccounts(ctx)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "sync active accounts success", "account_count", synced)
		return nil
	})
}
