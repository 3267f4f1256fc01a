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

var dashboardTeacher = models.AccessScope{UserID: "t1", Role: models.RoleTeacher}

func TestDashboardRepositoryStudentCountsScoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students s WHERE EXISTS (SELECT 1 FROM teacher_students ts WHERE ts.student_id = s.id AND ts.teacher_id = $1)")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"total", "inactive"}).AddRow(7, 2))

	counts, err := repo.StudentCounts(context.Background(), dashboardTeacher)
	require.NoError(t, err)
	assert.Equal(t, 7, counts.Total)
	assert.Equal(t, 2, counts.Inactive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryRecordTotalsAdminUnscoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM daily_records d")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "present", "homework_submitted"}).AddRow(10, 8, 5))

	totals, err := repo.RecordTotals(context.Background(), models.AccessScope{UserID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.DashboardRecordTotals{Total: 10, Present: 8, HomeworkSubmitted: 5}, totals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryWeeklySummariesScopesJoin(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	day := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN daily_records d ON d.lesson_day_id = ld.id AND EXISTS (SELECT 1 FROM teacher_students ts WHERE ts.student_id = d.student_id AND ts.teacher_id = $1)")).
		WithArgs("t1", 2025, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "week_label", "record_count", "present_count", "late_count", "absent_count", "homework_submitted"}).
			AddRow("d1", day, "3.2~", 4, 2, 1, 1, 3))

	weeks, err := repo.WeeklySummaries(context.Background(), dashboardTeacher, 2025, 3)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 4, weeks[0].RecordCount)
	assert.Equal(t, 1, weeks[0].AbsentCount)
	require.NotNil(t, weeks[0].WeekLabel)
	assert.Equal(t, "3.2~", *weeks[0].WeekLabel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryRecentRecordsLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY d.updated_at DESC")).
		WithArgs("t1", 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "student_name", "grade_number", "lesson_day_id", "lesson_date", "week_label", "attendance_status", "homework_status", "memo", "updated_at"}))

	rows, err := repo.RecentRecords(context.Background(), dashboardTeacher, 4)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryAbsentStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	absent := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.last_absent_date IS NOT NULL AND EXISTS (SELECT 1 FROM teacher_students ts WHERE ts.student_id = s.id AND ts.teacher_id = $1)")).
		WithArgs("t1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "grade_number", "last_absent_date"}).AddRow("s1", "Ann", 8, absent))

	rows, err := repo.AbsentStudents(context.Background(), dashboardTeacher, 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].LastAbsentDate)
	assert.Equal(t, absent, *rows[0].LastAbsentDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
