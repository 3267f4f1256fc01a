package dto

import "github.com/noah-isme/lesson-board-api/internal/models"

// DashboardStats carries the headline roster and record figures.
// Rates are whole percentages over every visible daily record.
type DashboardStats struct {
	TotalStudents  int `json:"total_students"`
	ActiveStudents int `json:"active_students"`
	AttendanceRate int `json:"attendance_rate"`
	HomeworkRate   int `json:"homework_rate"`
}

// DashboardResponse is the home dashboard of the caller's scope.
type DashboardResponse struct {
	Year              int                                `json:"year"`
	Month             int                                `json:"month"`
	Stats             DashboardStats                     `json:"stats"`
	Weeks             []models.DashboardWeek             `json:"weeks"`
	RecentRecords     []models.DashboardRecentRecord     `json:"recent_records"`
	AttentionStudents []models.DashboardAttentionStudent `json:"attention_students"`
}

// DashboardQuery selects the month summarised by the dashboard. Zero values mean the current month.
type DashboardQuery struct {
	Year  int `form:"year" validate:"omitempty,min=2000,max=2100"`
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
}
