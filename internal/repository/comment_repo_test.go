package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCommentersRestrictsWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)
	since := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM `comments` WHERE post_id IN \\(SELECT p.id FROM posts p .*\\) AND posted_at >= \\? GROUP BY `?username`? ORDER BY comment_count DESC, username ASC LIMIT \\?").
		WithArgs(uint64(7), since, 5).
		WillReturnRows(sqlmock.NewRows([]string{"username", "comment_count", "avg_sentiment", "total_likes", "latest_comment_at"}).
			AddRow("alice", 3, 0.4, 12, latest))

	stats, err := repo.TopCommenters(context.Background(), 7, since, 5)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "alice", stats[0].Username)
	assert.Equal(t, int64(3), stats[0].CommentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
