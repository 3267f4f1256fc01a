package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

const dateLayout = "2006-01-02"

var weekdayShortNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// GenerateWeeklySlots lays out the template grid for every operating weekday
// in the order the setting lists them. Each day holds at least one slot; the
// last slot of a day is clipped to the closing time.
func GenerateWeeklySlots(setting models.ScheduleSetting) []models.TimeSlot {
	window := setting.EndTimeMinutes - setting.StartTimeMinutes
	if window <= 0 || setting.LessonDurationMinutes <= 0 {
		return []models.TimeSlot{}
	}
	blockLength := setting.LessonDurationMinutes + setting.BreakDurationMinutes
	count := (window + setting.BreakDurationMinutes) / blockLength
	if count < 1 {
		count = 1
	}

	slots := make([]models.TimeSlot, 0, count*len(setting.Weekdays))
	for _, day := range setting.Weekdays {
		cursor := setting.StartTimeMinutes
		for i := 0; i < count; i++ {
			end := cursor + setting.LessonDurationMinutes
			if end > setting.EndTimeMinutes {
				end = setting.EndTimeMinutes
			}
			slots = append(slots, models.TimeSlot{Weekday: int(day), StartMinutes: cursor, EndMinutes: end})
			cursor += blockLength
			if cursor >= setting.EndTimeMinutes {
				break
			}
		}
	}
	return slots
}

// slotsByWeekday groups template slots per weekday ordered by start time.
func slotsByWeekday(slots []models.TimeSlot) map[int][]models.TimeSlot {
	grouped := make(map[int][]models.TimeSlot)
	for _, slot := range slots {
		grouped[slot.Weekday] = append(grouped[slot.Weekday], slot)
	}
	for day := range grouped {
		daySlots := grouped[day]
		sort.SliceStable(daySlots, func(i, j int) bool {
			return daySlots[i].StartMinutes < daySlots[j].StartMinutes
		})
	}
	return grouped
}

// FormatMinutes renders minutes since midnight as HH:MM.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseMinutes converts HH:MM into minutes since midnight. 24:00 is accepted
// as the end of day.
func ParseMinutes(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	total := hours*60 + minutes
	if hours < 0 || minutes < 0 || minutes > 59 || total > 24*60 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return total, nil
}

// SlotLabel renders a slot as "Mon 17:00~17:50".
func SlotLabel(slot models.TimeSlot) string {
	name := "?"
	if slot.Weekday >= 0 && slot.Weekday < len(weekdayShortNames) {
		name = weekdayShortNames[slot.Weekday]
	}
	return fmt.Sprintf("%s %s~%s", name, FormatMinutes(slot.StartMinutes), FormatMinutes(slot.EndMinutes))
}

// IsSlotBlocked reports whether a recurring block matches the slot exactly.
func IsSlotBlocked(slot models.TimeSlot, blocks []models.TeacherUnavailableSlot) bool {
	for _, block := range blocks {
		if block.Weekday == slot.Weekday && block.StartMinutes == slot.StartMinutes && block.EndMinutes == slot.EndMinutes {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
}

// DateKey renders the calendar date part of t.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekDates returns the seven calendar dates starting at weekStart.
func weekDates(weekStart time.Time) []time.Time {
	start := civilDate(weekStart)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}
