package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

var availabilityRowColumns = []string{"id", "teacher_id", "date", "start_minutes", "end_minutes", "is_available", "memo", "created_at", "updated_at"}

func TestTeacherAvailabilityRepositoryListAvailable(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherAvailabilityRepository(db)

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE date BETWEEN $1 AND $2 AND is_available = TRUE")).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows(availabilityRowColumns).AddRow("a1", "t1", start, 1020, 1130, true, nil, start, start))

	rows, err := repo.ListAvailable(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Contains(1020, 1070))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherAvailabilityRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherAvailabilityRepository(db)

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE date BETWEEN $1 AND $2 AND teacher_id = $3 ORDER BY date ASC, start_minutes ASC")).
		WithArgs(start, start, "t1").
		WillReturnRows(sqlmock.NewRows(availabilityRowColumns))

	rows, err := repo.List(context.Background(), "t1", start, start)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherAvailabilityRepositoryReplaceRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherAvailabilityRepository(db)

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teacher_weekly_availabilities WHERE teacher_id = $1 AND date BETWEEN $2 AND $3")).
		WithArgs("t1", start, end).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (teacher_id, date, start_minutes, end_minutes) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "t1", start, 1020, 1130, true, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (teacher_id, date, start_minutes, end_minutes) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "t1", start, 1020, 1130, true, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	windows := []models.TeacherAvailability{
		{Date: start, StartMinutes: 1020, EndMinutes: 1130, IsAvailable: true},
		{Date: start, StartMinutes: 1020, EndMinutes: 1130, IsAvailable: true},
	}
	inserted, err := repo.ReplaceRange(context.Background(), "t1", start, end, windows)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherAvailabilityRepositoryDeleteWindow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherAvailabilityRepository(db)

	date := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teacher_weekly_availabilities WHERE teacher_id = $1 AND date = $2")).
		WithArgs("t1", date, 1020, 1080).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.DeleteWindow(context.Background(), "t1", date, 1020, 1080)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
