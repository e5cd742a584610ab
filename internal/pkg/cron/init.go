package cron

import (
	log "log/slog"

	"github.com/pkg/errors"
)

// InitCron 注册全部任务后启动引擎，一个任务都没有时不启动
func InitCron(mgr *Manager) error {
	n, err := mgr.RegisterJobs()
	if err != nil {
		return errors.Wrap(err, "init cron")
	}
	if n == 0 {
		log.Warn("no cron job enabled, engine not started")
		return nil
	}
	mgr.Start()
	log.Info("cron engine started", "jobs", n)
	return nil
}
