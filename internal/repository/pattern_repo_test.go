package repository

import (
	"SocialPulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldSnapshotSkipsSeenMetric(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEngagementPatternRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `engagement_fold_cursors` WHERE post_id = \\? .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "metric_id", "updated_at"}).AddRow(3, 20, time.Now()))
	mock.ExpectCommit()

	called := false
	applied, err := repo.FoldSnapshot(context.Background(),
		model.PatternKey{SocialAccountID: 1, HourOfDay: 9, DayOfWeek: 0}, 3, 20,
		func(p *model.EngagementPattern) { called = true })
	require.NoError(t, err)
	assert.False(t, applied)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoldSnapshotAppliesUnderRowLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEngagementPatternRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `engagement_fold_cursors` WHERE post_id = \\? .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "metric_id", "updated_at"}))
	mock.ExpectExec("INSERT INTO `engagement_patterns`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT \\* FROM `engagement_patterns` WHERE social_account_id = \\? AND hour_of_day = \\? AND day_of_week = \\? .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "social_account_id", "hour_of_day", "day_of_week", "avg_engagement_rate",
			"avg_likes", "avg_comments", "avg_shares", "post_count", "created_at", "updated_at",
		}).AddRow(1, 1, 9, 0, 2.0, 10, 1, 0, 1, now, now))
	mock.ExpectExec("UPDATE `engagement_patterns` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `engagement_fold_cursors`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var seen model.EngagementPattern
	applied, err := repo.FoldSnapshot(context.Background(),
		model.PatternKey{SocialAccountID: 1, HourOfDay: 9, DayOfWeek: 0}, 3, 21,
		func(p *model.EngagementPattern) {
			p.PostCount++
			seen = *p
		})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(2), seen.PostCount)
	assert.Equal(t, 2.0, seen.AvgEngagementRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
