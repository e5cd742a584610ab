package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var metricColumns = []string{
	"id", "post_id", "likes_count", "comments_count", "shares_count", "saves_count",
	"views_count", "reach", "impressions", "engagement_rate", "recorded_at",
}

func TestGetLatestMetricsKeysByPost(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostMetricRepository(db)
	now := time.Now()

	mock.ExpectQuery("ROW_NUMBER\\(\\) OVER \\(PARTITION BY pm.post_id ORDER BY pm.recorded_at DESC, pm.id DESC\\)").
		WithArgs(uint64(1), uint64(2), uint64(3)).
		WillReturnRows(sqlmock.NewRows(metricColumns).
			AddRow(10, 1, 5, 1, 0, 0, 0, 0, 0, 2.5, now).
			AddRow(12, 2, 8, 2, 1, 0, 0, 0, 0, 4.0, now))

	latest, err := repo.GetLatestMetrics(context.Background(), []uint64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, uint64(10), latest[1].ID)
	assert.Equal(t, 4.0, latest[2].EngagementRate)
	_, ok := latest[3]
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestMetricsEmptyInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostMetricRepository(db)

	latest, err := repo.GetLatestMetrics(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, latest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestMetricMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostMetricRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `post_metrics` WHERE post_id = \\? ORDER BY recorded_at DESC, id DESC").
		WillReturnRows(sqlmock.NewRows(metricColumns))

	metric, err := repo.GetLatestMetric(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, metric)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMetricClearsFoldCursor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostMetricRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `post_metrics` WHERE post_id IN \\(SELECT p.id FROM posts p .*\\) AND id = \\?").
		WithArgs(uint64(7), uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `engagement_fold_cursors` WHERE metric_id = \\?").
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.DeleteMetric(context.Background(), 7, 21)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMetricNotOwnedKeepsCursor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostMetricRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `post_metrics`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.DeleteMetric(context.Background(), 8, 21)
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
