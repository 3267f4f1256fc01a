package dto

// WeekRangeRequest selects the seven calendar dates an action applies to.
type WeekRangeRequest struct {
	WeekStart string `json:"weekStart" validate:"required"`
	WeekEnd   string `json:"weekEnd" validate:"required"`
}

// WeekActionResponse reports the outcome of auto-schedule and confirm.
type WeekActionResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// UpdateLessonScheduleRequest edits a DRAFT placement.
type UpdateLessonScheduleRequest struct {
	TeacherID    string  `json:"teacherId" validate:"required"`
	StudentID    string  `json:"studentId" validate:"required"`
	Date         string  `json:"date" validate:"required"`
	StartMinutes int     `json:"startMinutes" validate:"min=0,max=1439"`
	EndMinutes   int     `json:"endMinutes" validate:"min=1,max=1440,gtfield=StartMinutes"`
	Memo         *string `json:"memo"`
}

// LessonScheduleQuery filters the lesson board listing and export.
type LessonScheduleQuery struct {
	Start  string `form:"start" json:"start"`
	End    string `form:"end" json:"end"`
	Format string `form:"format" json:"format"`
}
