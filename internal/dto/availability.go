package dto

// AvailabilityWindow is one date-specific window submitted by a teacher.
type AvailabilityWindow struct {
	Date         string  `json:"date" validate:"required"`
	StartMinutes int     `json:"startMinutes" validate:"min=0,max=1439"`
	EndMinutes   int     `json:"endMinutes" validate:"min=1,max=1440,gtfield=StartMinutes"`
	IsAvailable  *bool   `json:"isAvailable"`
	Memo         *string `json:"memo"`
}

// Available defaults to true when the flag is omitted.
func (w AvailabilityWindow) Available() bool {
	return w.IsAvailable == nil || *w.IsAvailable
}

// SetAvailabilityRequest upserts or clears a single window.
type SetAvailabilityRequest struct {
	TeacherID string `json:"teacherId"`
	AvailabilityWindow
}

// ReplaceAvailabilityRequest replaces every window of a teacher inside a range.
type ReplaceAvailabilityRequest struct {
	TeacherID string               `json:"teacherId"`
	StartDate string               `json:"startDate" validate:"required"`
	EndDate   string               `json:"endDate" validate:"required"`
	Windows   []AvailabilityWindow `json:"windows" validate:"dive"`
}

// AvailabilityQuery filters availability listings.
type AvailabilityQuery struct {
	TeacherID string `form:"teacherId" json:"teacherId"`
	Start     string `form:"start" json:"start"`
	End       string `form:"end" json:"end"`
}

// CreateUnavailableSlotRequest registers a recurring weekly block.
type CreateUnavailableSlotRequest struct {
	TeacherID    string  `json:"teacherId"`
	Weekday      int     `json:"weekday" validate:"min=0,max=6"`
	StartMinutes int     `json:"startMinutes" validate:"min=0,max=1439"`
	EndMinutes   int     `json:"endMinutes" validate:"min=1,max=1440,gtfield=StartMinutes"`
	Memo         *string `json:"memo"`
}
