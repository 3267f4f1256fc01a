package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/middleware"
	"github.com/noah-isme/lesson-board-api/internal/models"
)

// Handlers groups every HTTP handler mounted under the API prefix.
type Handlers struct {
	Auth            *AuthHandler
	ScheduleSetting *ScheduleSettingHandler
	Availability    *AvailabilityHandler
	Unavailable     *UnavailableSlotHandler
	LessonSchedule  *LessonScheduleHandler
	Teacher         *TeacherHandler
	Student         *StudentHandler
	DailyRecord     *DailyRecordHandler
	Dashboard       *DashboardHandler
	Metrics         *MetricsHandler
}

// RegisterRoutes mounts health endpoints at the root and the API under prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, tokens middleware.TokenValidator) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group("/" + strings.Trim(prefix, "/"))
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens))
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	anyStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)

	secured.GET("/auth/me", anyStaff, h.Auth.Me)
	secured.GET("/dashboard", anyStaff, h.Dashboard.Summary)

	secured.GET("/schedule-settings", anyStaff, h.ScheduleSetting.Get)
	secured.PUT("/schedule-settings", adminOnly, h.ScheduleSetting.Update)
	secured.GET("/schedule-settings/slots", anyStaff, h.ScheduleSetting.Slots)

	secured.GET("/teacher-weekly-availability", anyStaff, h.Availability.List)
	secured.POST("/teacher-weekly-availability", anyStaff, h.Availability.Set)
	secured.PUT("/teacher-weekly-availability", anyStaff, h.Availability.Replace)

	secured.GET("/teacher-unavailable", anyStaff, h.Unavailable.List)
	secured.POST("/teacher-unavailable", anyStaff, h.Unavailable.Create)
	secured.DELETE("/teacher-unavailable/:id", anyStaff, h.Unavailable.Delete)

	lessons := secured.Group("/lesson-schedules")
	lessons.GET("", anyStaff, h.LessonSchedule.List)
	lessons.GET("/export", anyStaff, h.LessonSchedule.Export)
	lessons.POST("/auto-schedule", adminOnly, h.LessonSchedule.AutoSchedule)
	lessons.POST("/confirm", adminOnly, h.LessonSchedule.Confirm)
	lessons.PUT("/:id", adminOnly, h.LessonSchedule.Update)
	lessons.DELETE("/:id", adminOnly, h.LessonSchedule.Delete)

	teachers := secured.Group("/teachers", adminOnly)
	teachers.GET("", h.Teacher.List)
	teachers.POST("", h.Teacher.Create)
	teachers.GET("/:id", h.Teacher.Get)
	teachers.PUT("/:id", h.Teacher.Update)
	teachers.DELETE("/:id", h.Teacher.Delete)

	secured.GET("/students", anyStaff, h.Student.List)
	secured.POST("/students", adminOnly, h.Student.Create)
	secured.GET("/students/:id", anyStaff, h.Student.Get)
	secured.PATCH("/students/:id", adminOnly, h.Student.Update)
	secured.POST("/teacher-students", adminOnly, h.Student.Link)
	secured.DELETE("/teacher-students", adminOnly, h.Student.Unlink)

	secured.GET("/lesson-days", anyStaff, h.DailyRecord.ListLessonDays)
	secured.POST("/lesson-days", adminOnly, h.DailyRecord.EnsureLessonDays)
	secured.GET("/daily-records", anyStaff, h.DailyRecord.ListRecords)
	secured.POST("/daily-records", anyStaff, h.DailyRecord.UpsertRecord)
}
