package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type mockDailyRecordRepo struct {
	records    map[string]models.DailyRecord
	lastFilter models.DailyRecordFilter
}

func (m *mockDailyRecordRepo) Upsert(ctx context.Context, record *models.DailyRecord) error {
	if m.records == nil {
		m.records = map[string]models.DailyRecord{}
	}
	m.records[record.StudentID+"|"+record.LessonDayID] = *record
	return nil
}

func (m *mockDailyRecordRepo) List(ctx context.Context, scope models.AccessScope, filter models.DailyRecordFilter) ([]models.DailyRecordView, error) {
	m.lastFilter = filter
	return nil, nil
}

func newDailyRecordFixture() (*DailyRecordService, *mockDailyRecordRepo) {
	return newDailyRecordFixtureWithCache(nil)
}

func newDailyRecordFixtureWithCache(cache cacheInvalidator) (*DailyRecordService, *mockDailyRecordRepo) {
	students := newMockStudentRepo()
	students.students["s1"] = models.Student{ID: "s1", Name: "Ann", GradeNumber: 3}
	students.students["s2"] = models.Student{ID: "s2", Name: "Ben", GradeNumber: 5}
	students.links["t1|s1"] = true

	days := newMockLessonDayRepo()
	_ = days.InsertMissing(context.Background(), BuildMonthLessonDays(2025, 3))

	repo := &mockDailyRecordRepo{}
	return NewDailyRecordService(repo, students, days, cache, nil, nil), repo
}

func TestDailyRecordServiceUpsertDefaultsAndActor(t *testing.T) {
	svc, repo := newDailyRecordFixture()

	record, err := svc.Upsert(context.Background(), teacherScope, dto.UpsertDailyRecordRequest{StudentID: "s1", LessonDayID: "ld-2025-03-02"})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceNone, record.AttendanceStatus)
	assert.Equal(t, models.HomeworkNone, record.HomeworkStatus)
	require.NotNil(t, record.TeacherID)
	assert.Equal(t, "t1", *record.TeacherID)

	_, err = svc.Upsert(context.Background(), teacherScope, dto.UpsertDailyRecordRequest{
		StudentID:        "s1",
		LessonDayID:      "ld-2025-03-02",
		AttendanceStatus: "LATE",
		HomeworkStatus:   "SUBMITTED",
	})
	require.NoError(t, err)
	require.Len(t, repo.records, 1)
	stored := repo.records["s1|ld-2025-03-02"]
	assert.Equal(t, models.AttendanceLate, stored.AttendanceStatus)
	assert.Equal(t, models.HomeworkSubmitted, stored.HomeworkStatus)
}

func TestDailyRecordServiceUpsertAccess(t *testing.T) {
	svc, _ := newDailyRecordFixture()

	_, err := svc.Upsert(context.Background(), teacherScope, dto.UpsertDailyRecordRequest{StudentID: "s2", LessonDayID: "ld-2025-03-02"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Upsert(context.Background(), adminScope, dto.UpsertDailyRecordRequest{StudentID: "s2", LessonDayID: "ld-2025-03-02"})
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), adminScope, dto.UpsertDailyRecordRequest{StudentID: "s2", LessonDayID: "missing"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Upsert(context.Background(), adminScope, dto.UpsertDailyRecordRequest{StudentID: "s2", LessonDayID: "ld-2025-03-02", AttendanceStatus: "SICK"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestDailyRecordServiceListParsesRange(t *testing.T) {
	svc, repo := newDailyRecordFixture()

	_, err := svc.List(context.Background(), teacherScope, dto.DailyRecordQuery{StudentID: "s1", Start: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "s1", repo.lastFilter.StudentID)
	require.NotNil(t, repo.lastFilter.Start)
	assert.Equal(t, "2025-03-01", DateKey(*repo.lastFilter.Start))
	assert.Nil(t, repo.lastFilter.End)

	_, err = svc.List(context.Background(), teacherScope, dto.DailyRecordQuery{End: "03/01/2025"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestDailyRecordServiceUpsertDropsDashboards(t *testing.T) {
	cache := &countingInvalidator{}
	svc, _ := newDailyRecordFixtureWithCache(cache)

	_, err := svc.Upsert(context.Background(), teacherScope, dto.UpsertDailyRecordRequest{StudentID: "s1", LessonDayID: "ld-2025-03-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:*"}, cache.patterns)

	_, err = svc.Upsert(context.Background(), teacherScope, dto.UpsertDailyRecordRequest{StudentID: "s2", LessonDayID: "ld-2025-03-02"})
	require.Error(t, err)
	assert.Len(t, cache.patterns, 1)
}
