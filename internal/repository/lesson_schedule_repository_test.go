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

var lessonRowColumns = []string{"id", "teacher_id", "student_id", "date", "start_minutes", "end_minutes", "status", "memo", "created_at", "updated_at"}

func lessonWeek() (time.Time, time.Time) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 6)
}

func TestLessonScheduleRepositoryListScopesTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonScheduleRepository(db)

	start, end := lessonWeek()
	columns := append(append([]string{}, lessonRowColumns...), "teacher_name", "student_name", "student_grade")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.date BETWEEN $1 AND $2 AND l.teacher_id = $3 ORDER BY l.date ASC, l.start_minutes ASC, u.name ASC")).
		WithArgs(start, end, "t1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("l1", "t1", "s1", start, 1020, 1070, "DRAFT", nil, start, start, "Kim", "Lee", 5))

	rows, err := repo.List(context.Background(), models.AccessScope{UserID: "t1", Role: models.RoleTeacher}, models.LessonScheduleFilter{Start: start, End: end, TeacherID: "other"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kim", rows[0].TeacherName)
	assert.Equal(t, models.LessonStatusDraft, rows[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonScheduleRepositoryReplaceDraftsInTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonScheduleRepository(db)

	start, end := lessonWeek()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("lesson_schedules:2025-03-03").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lesson_schedules WHERE date BETWEEN $1 AND $2 AND status = $3")).
		WithArgs(start, end, models.LessonStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT ON CONSTRAINT uq_lesson_schedule_slot DO NOTHING")).
		WithArgs(
			sqlmock.AnyArg(), "t1", "s1", start, 1020, 1070, models.LessonStatusDraft, nil, sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), "t1", "s2", start, 1080, 1130, models.LessonStatusDraft, nil, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.LockWeek(context.Background(), tx, start))
	deleted, err := repo.DeleteDrafts(context.Background(), tx, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	inserted, err := repo.InsertDrafts(context.Background(), tx, []models.LessonSchedule{
		{TeacherID: "t1", StudentID: "s1", Date: start, StartMinutes: 1020, EndMinutes: 1070},
		{TeacherID: "t1", StudentID: "s2", Date: start, StartMinutes: 1080, EndMinutes: 1130},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonScheduleRepositoryInsertDraftsEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonScheduleRepository(db)

	inserted, err := repo.InsertDrafts(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonScheduleRepositoryConfirmRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonScheduleRepository(db)

	start, end := lessonWeek()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE lesson_schedules SET status = $3")).
		WithArgs(start, end, models.LessonStatusConfirmed, sqlmock.AnyArg(), models.LessonStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 7))

	count, err := repo.ConfirmRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonScheduleRepositoryFindDraftConflicts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonScheduleRepository(db)

	start, _ := lessonWeek()
	mock.ExpectQuery(regexp.QuoteMeta("AND (l.teacher_id = $4 OR l.student_id = $5)")).
		WithArgs("l1", models.LessonStatusDraft, start, "t1", "s1", 1020, 1070).
		WillReturnRows(sqlmock.NewRows(lessonRowColumns).
			AddRow("l2", "t1", "s9", start, 1040, 1090, "DRAFT", nil, start, start))

	rows, err := repo.FindDraftConflicts(context.Background(), models.LessonSchedule{
		ID: "l1", TeacherID: "t1", StudentID: "s1", Date: start, StartMinutes: 1020, EndMinutes: 1070,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "l2", rows[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonScheduleRepositoryDeleteOnlyDrafts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lesson_schedules WHERE id = $1 AND status = $2")).
		WithArgs("l1", models.LessonStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "l1")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
