package dto

import "github.com/noah-isme/lesson-board-api/internal/models"

// UpdateScheduleSettingRequest replaces the operating configuration.
type UpdateScheduleSettingRequest struct {
	Weekdays              []int  `json:"weekdays" validate:"required,min=1,dive,min=0,max=6"`
	StartTimeMinutes      int    `json:"startTimeMinutes" validate:"min=0,max=1410"`
	EndTimeMinutes        int    `json:"endTimeMinutes" validate:"min=1,max=1440"`
	LessonDurationMinutes int    `json:"lessonDurationMinutes" validate:"min=30,max=180"`
	BreakDurationMinutes  int    `json:"breakDurationMinutes" validate:"min=0,max=60"`
	Timezone              string `json:"timezone"`
}

// SlotView annotates a template slot for one teacher's grid.
type SlotView struct {
	models.TimeSlot
	Blocked bool `json:"blocked"`
}

// SlotGridResponse returns the weekly template derived from the setting.
type SlotGridResponse struct {
	Setting *models.ScheduleSetting `json:"setting"`
	Slots   []SlotView              `json:"slots"`
}
