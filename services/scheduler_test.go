package services

import (
	"testing"
	"time"

	"SocialScheduler/database"
	"SocialScheduler/metrics"
	"SocialScheduler/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchedulerWithMock(t *testing.T) (*Scheduler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewScheduler(&database.Database{DB: db}, metrics.NewCollector(), time.Minute), mock
}

func TestRunOnce_PublishesDuePosts(t *testing.T) {
	s, mock := newSchedulerWithMock(t)

	// Freeze time one hour past the scheduled date.
	frozen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return frozen })

	rows := sqlmock.NewRows([]string{"id", "user_id"}).
		AddRow("p1", "u1").
		AddRow("p2", "u1")

	mock.ExpectQuery(`UPDATE posts\s+SET status = \$1, scheduled_date = NULL`).
		WithArgs(models.StatusPublished, frozen, models.StatusScheduled, frozen).
		WillReturnRows(rows)

	n, err := s.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunOnce_FuturePostsUntouched(t *testing.T) {
	s, mock := newSchedulerWithMock(t)

	// The clock sits before any scheduled date, so the conditional update
	// matches nothing.
	frozen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return frozen })

	mock.ExpectQuery(`UPDATE posts`).
		WithArgs(models.StatusPublished, frozen, models.StatusScheduled, frozen).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	n, err := s.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunOnce_QueryErrorLeavesRowsForNextTick(t *testing.T) {
	s, mock := newSchedulerWithMock(t)

	mock.ExpectQuery(`UPDATE posts`).
		WillReturnError(assert.AnError)

	n, err := s.RunOnce()
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulerStartStop(t *testing.T) {
	s, _ := newSchedulerWithMock(t)

	require.NoError(t, s.Start())
	s.Stop()
}
