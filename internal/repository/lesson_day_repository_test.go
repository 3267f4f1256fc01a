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

func TestLessonDayRepositoryInsertMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonDayRepository(db)

	first := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	label := "3.2~"
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (date) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), first, 2025, 3, 1, label, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.InsertMissing(context.Background(), []models.LessonDay{{Date: first, Year: 2025, Month: 3, WeekOfMonth: 1, WeekLabel: &label, HasHomework: true}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonDayRepositoryListMonth(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonDayRepository(db)

	first := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM lesson_days WHERE year = $1 AND month = $2 ORDER BY date ASC")).
		WithArgs(2025, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "year", "month", "week_of_month", "week_label", "has_homework", "created_at"}).
			AddRow("d1", first, 2025, 3, 1, "3.2~", true, first))

	days, err := repo.ListMonth(context.Background(), 2025, 3)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "3.2~", *days[0].WeekLabel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
