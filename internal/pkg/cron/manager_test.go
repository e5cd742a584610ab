package cron

import (
	"SocialPulse/internal/api/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterJobsSkipsEmptySpec(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{PatternFold: "0 */10 * * * *"}, nil, nil, nil, nil)

	n, err := mgr.RegisterJobs()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, mgr.engine.Entries(), 1)
}

func TestRegisterJobsRejectsBadSpec(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{AccountSync: "every hour"}, nil, nil, nil, nil)

	_, err := mgr.RegisterJobs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account_sync")
}

func TestInitCronWithoutJobs(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{}, nil, nil, nil, nil)
	require.NoError(t, InitCron(mgr))
	assert.Empty(t, mgr.engine.Entries())
}
