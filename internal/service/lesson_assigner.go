package service

import (
	"time"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// AssignmentInput carries everything the greedy assigner reads. Teachers and
// students are visited in the order given, which callers keep name ascending.
type AssignmentInput struct {
	WeekStart    time.Time
	Setting      models.ScheduleSetting
	Teachers     []models.Teacher
	Students     []models.Student
	Availability []models.TeacherAvailability
	// Existing placements are treated as booked and their students as
	// already scheduled. Leave empty to ignore confirmed rows.
	Existing []models.LessonSchedule
}

type interval struct {
	start int
	end   int
}

// bookingIndex tracks accepted intervals per teacher/date and student/date.
type bookingIndex map[string][]interval

func bookingKey(kind, id string, date time.Time) string {
	return kind + ":" + id + "|" + DateKey(date)
}

func (b bookingIndex) overlaps(key string, start, end int) bool {
	for _, iv := range b[key] {
		if iv.start < end && iv.end > start {
			return true
		}
	}
	return false
}

func (b bookingIndex) add(teacherID, studentID string, date time.Time, start, end int) {
	iv := interval{start: start, end: end}
	tk := bookingKey("t", teacherID, date)
	sk := bookingKey("s", studentID, date)
	b[tk] = append(b[tk], iv)
	b[sk] = append(b[sk], iv)
}

func (b bookingIndex) free(teacherID, studentID string, date time.Time, start, end int) bool {
	return !b.overlaps(bookingKey("t", teacherID, date), start, end) &&
		!b.overlaps(bookingKey("s", studentID, date), start, end)
}

// AutoAssign places at most one lesson per student for the week using first
// fit: students outer, teachers inner, dates chronological, slots by start.
// The result is DRAFT placements in acceptance order.
func AutoAssign(in AssignmentInput) []models.LessonSchedule {
	template := slotsByWeekday(GenerateWeeklySlots(in.Setting))
	dates := weekDates(in.WeekStart)

	windows := make(map[string]map[string][]models.TeacherAvailability)
	for _, a := range in.Availability {
		if !a.IsAvailable {
			continue
		}
		byDate, ok := windows[a.TeacherID]
		if !ok {
			byDate = make(map[string][]models.TeacherAvailability)
			windows[a.TeacherID] = byDate
		}
		key := DateKey(a.Date)
		byDate[key] = append(byDate[key], a)
	}

	booked := bookingIndex{}
	scheduled := make(map[string]bool)
	for _, existing := range in.Existing {
		booked.add(existing.TeacherID, existing.StudentID, civilDate(existing.Date), existing.StartMinutes, existing.EndMinutes)
		scheduled[existing.StudentID] = true
	}

	placements := make([]models.LessonSchedule, 0, len(in.Students))
	for _, student := range in.Students {
		if scheduled[student.ID] {
			continue
		}
	search:
		for _, teacher := range in.Teachers {
			byDate := windows[teacher.ID]
			if len(byDate) == 0 {
				continue
			}
			for _, date := range dates {
				if !in.Setting.OperatesOn(date.Weekday()) {
					continue
				}
				available := byDate[DateKey(date)]
				if len(available) == 0 {
					continue
				}
				for _, slot := range template[int(date.Weekday())] {
					if !coveredBy(available, slot) {
						continue
					}
					if !booked.free(teacher.ID, student.ID, date, slot.StartMinutes, slot.EndMinutes) {
						continue
					}
					booked.add(teacher.ID, student.ID, date, slot.StartMinutes, slot.EndMinutes)
					scheduled[student.ID] = true
					placements = append(placements, models.LessonSchedule{
						TeacherID:    teacher.ID,
						StudentID:    student.ID,
						Date:         date,
						StartMinutes: slot.StartMinutes,
						EndMinutes:   slot.EndMinutes,
						Status:       models.LessonStatusDraft,
					})
					break search
				}
			}
		}
	}
	return placements
}

func coveredBy(windows []models.TeacherAvailability, slot models.TimeSlot) bool {
	for _, w := range windows {
		if w.Contains(slot.StartMinutes, slot.EndMinutes) {
			return true
		}
	}
	return false
}
