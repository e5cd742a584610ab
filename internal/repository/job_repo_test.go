package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepoGetStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportJobRepository(db)

	mock.ExpectQuery("SELECT `status` FROM `reports` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("processing"))
	mock.ExpectQuery("SELECT `status` FROM `reports` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	status, err := repo.GetStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "processing", status)

	status, err = repo.GetStatus(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "", status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepoUpdateStatusGuardsSourceState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueryJobRepository(db)

	mock.ExpectExec("UPDATE `queries` SET .*`status`=\\? WHERE id = \\? AND status = \\?").
		WithArgs(sqlmock.AnyArg(), "completed", uint64(9), "processing").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.UpdateStatus(context.Background(), 9, "processing", "completed", map[string]any{
		"completed_at": time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
