package service

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// 2025-03-03 is a Monday.
var assignerWeek = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return assignerWeek.AddDate(0, 0, offset)
}

func window(teacherID string, date time.Time, start, end int) models.TeacherAvailability {
	return models.TeacherAvailability{TeacherID: teacherID, Date: date, StartMinutes: start, EndMinutes: end, IsAvailable: true}
}

func TestAutoAssignSingleTeacherSingleStudent(t *testing.T) {
	placements := AutoAssign(AssignmentInput{
		WeekStart:    assignerWeek,
		Setting:      mondaySetting(),
		Teachers:     []models.Teacher{{ID: "t1", Name: "Kim"}},
		Students:     []models.Student{{ID: "s1", Name: "Lee"}},
		Availability: []models.TeacherAvailability{window("t1", day(0), 1020, 1130)},
	})

	require.Len(t, placements, 1)
	p := placements[0]
	assert.Equal(t, "t1", p.TeacherID)
	assert.Equal(t, "s1", p.StudentID)
	assert.Equal(t, "2025-03-03", DateKey(p.Date))
	assert.Equal(t, 1020, p.StartMinutes)
	assert.Equal(t, 1070, p.EndMinutes)
	assert.Equal(t, models.LessonStatusDraft, p.Status)
}

func TestAutoAssignFirstFitOrdering(t *testing.T) {
	placements := AutoAssign(AssignmentInput{
		WeekStart: assignerWeek,
		Setting:   mondaySetting(),
		Teachers:  []models.Teacher{{ID: "t1"}, {ID: "t2"}},
		Students:  []models.Student{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}, {ID: "s4"}},
		Availability: []models.TeacherAvailability{
			window("t1", day(0), 1020, 1140),
			window("t2", day(0), 1020, 1140),
		},
	})

	require.Len(t, placements, 4)
	assert.Equal(t, [4]string{"t1", "t1", "t2", "t2"}, [4]string{placements[0].TeacherID, placements[1].TeacherID, placements[2].TeacherID, placements[3].TeacherID})
	assert.Equal(t, 1020, placements[0].StartMinutes)
	assert.Equal(t, 1080, placements[1].StartMinutes)
	assert.Equal(t, 1020, placements[2].StartMinutes)
	assert.Equal(t, 1080, placements[3].StartMinutes)
}

func TestAutoAssignRequiresFullContainment(t *testing.T) {
	placements := AutoAssign(AssignmentInput{
		WeekStart:    assignerWeek,
		Setting:      mondaySetting(),
		Teachers:     []models.Teacher{{ID: "t1"}},
		Students:     []models.Student{{ID: "s1"}},
		Availability: []models.TeacherAvailability{window("t1", day(0), 1030, 1140)},
	})

	require.Len(t, placements, 1)
	assert.Equal(t, 1080, placements[0].StartMinutes)
}

func TestAutoAssignSkipsNonOperatingDays(t *testing.T) {
	placements := AutoAssign(AssignmentInput{
		WeekStart: assignerWeek,
		Setting:   mondaySetting(),
		Teachers:  []models.Teacher{{ID: "t1"}},
		Students:  []models.Student{{ID: "s1"}},
		Availability: []models.TeacherAvailability{
			window("t1", day(1), 1020, 1140),
			window("t1", day(2), 1020, 1140),
		},
	})
	assert.Empty(t, placements)
}

func TestAutoAssignIgnoresUnavailableRows(t *testing.T) {
	unavailable := window("t1", day(0), 1020, 1140)
	unavailable.IsAvailable = false

	placements := AutoAssign(AssignmentInput{
		WeekStart:    assignerWeek,
		Setting:      mondaySetting(),
		Teachers:     []models.Teacher{{ID: "t1"}},
		Students:     []models.Student{{ID: "s1"}},
		Availability: []models.TeacherAvailability{unavailable},
	})
	assert.Empty(t, placements)
}

func TestAutoAssignLeavesExtraStudentsUnplaced(t *testing.T) {
	placements := AutoAssign(AssignmentInput{
		WeekStart:    assignerWeek,
		Setting:      mondaySetting(),
		Teachers:     []models.Teacher{{ID: "t1"}},
		Students:     []models.Student{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}},
		Availability: []models.TeacherAvailability{window("t1", day(0), 1020, 1140)},
	})

	require.Len(t, placements, 2)
	assert.Equal(t, "s1", placements[0].StudentID)
	assert.Equal(t, "s2", placements[1].StudentID)
}

func TestAutoAssignSeedsExistingPlacements(t *testing.T) {
	existing := []models.LessonSchedule{{
		TeacherID: "t1", StudentID: "s9", Date: day(0), StartMinutes: 1020, EndMinutes: 1070, Status: models.LessonStatusConfirmed,
	}}
	placements := AutoAssign(AssignmentInput{
		WeekStart:    assignerWeek,
		Setting:      mondaySetting(),
		Teachers:     []models.Teacher{{ID: "t1"}},
		Students:     []models.Student{{ID: "s9"}, {ID: "s1"}},
		Availability: []models.TeacherAvailability{window("t1", day(0), 1020, 1140)},
		Existing:     existing,
	})

	require.Len(t, placements, 1)
	assert.Equal(t, "s1", placements[0].StudentID)
	assert.Equal(t, 1080, placements[0].StartMinutes)
}

func TestAutoAssignInvariantsOverFullWeek(t *testing.T) {
	setting := models.ScheduleSetting{
		Weekdays:              pq.Int64Array{0, 1, 2, 3, 4, 5, 6},
		StartTimeMinutes:      1020,
		EndTimeMinutes:        1320,
		LessonDurationMinutes: 50,
		BreakDurationMinutes:  10,
	}
	teachers := []models.Teacher{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}
	var students []models.Student
	for _, id := range []string{"s01", "s02", "s03", "s04", "s05", "s06", "s07", "s08", "s09", "s10", "s11", "s12"} {
		students = append(students, models.Student{ID: id})
	}
	availability := []models.TeacherAvailability{
		window("t1", day(0), 1020, 1140),
		window("t1", day(3), 1100, 1320),
		window("t2", day(1), 1020, 1200),
		window("t2", day(1), 1260, 1320),
		window("t3", day(5), 1000, 1400),
		window("t3", day(9), 1020, 1320),
	}
	in := AssignmentInput{WeekStart: assignerWeek, Setting: setting, Teachers: teachers, Students: students, Availability: availability}

	first := AutoAssign(in)
	second := AutoAssign(in)
	assert.Equal(t, first, second)
	require.NotEmpty(t, first)

	perStudent := map[string]int{}
	for i, p := range first {
		perStudent[p.StudentID]++

		contained := false
		for _, a := range availability {
			if a.TeacherID == p.TeacherID && DateKey(a.Date) == DateKey(p.Date) && a.Contains(p.StartMinutes, p.EndMinutes) {
				contained = true
			}
		}
		assert.True(t, contained, "placement %d outside availability", i)

		for j := i + 1; j < len(first); j++ {
			q := first[j]
			if !p.Date.Equal(q.Date) {
				continue
			}
			overlap := p.StartMinutes < q.EndMinutes && p.EndMinutes > q.StartMinutes
			if p.TeacherID == q.TeacherID || p.StudentID == q.StudentID {
				assert.False(t, overlap, "placements %d and %d double booked", i, j)
			}
		}
	}
	for id, n := range perStudent {
		assert.Equal(t, 1, n, "student %s placed more than once", id)
	}
}
