package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

func TestScheduleSettingRepositoryFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSettingRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_settings ORDER BY created_at ASC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "weekdays", "start_time_minutes", "end_time_minutes", "lesson_duration_minutes", "break_duration_minutes", "timezone", "created_at", "updated_at"}).
			AddRow("cfg", "{1,3,5}", 1020, 1320, 50, 10, "Asia/Seoul", now, now))

	setting, err := repo.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pq.Int64Array{1, 3, 5}, setting.Weekdays)
	assert.Equal(t, 1320, setting.EndTimeMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSettingRepositoryFindMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSettingRepository(db)

	mock.ExpectQuery("FROM schedule_settings").WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestScheduleSettingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSettingRepository(db)

	mock.ExpectExec("INSERT INTO schedule_settings").
		WithArgs(sqlmock.AnyArg(), "{0,1,2,3,4,5,6}", 1020, 1320, 50, 10, "Asia/Seoul", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	setting := &models.ScheduleSetting{
		Weekdays:              pq.Int64Array{0, 1, 2, 3, 4, 5, 6},
		StartTimeMinutes:      1020,
		EndTimeMinutes:        1320,
		LessonDurationMinutes: 50,
		BreakDurationMinutes:  10,
		Timezone:              "Asia/Seoul",
	}
	require.NoError(t, repo.Create(context.Background(), setting))
	assert.NotEmpty(t, setting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
