package service

import (
	"time"

	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

func requireAdmin(scope models.AccessScope) error {
	if !scope.IsAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "admin role required")
	}
	return nil
}

// resolveTeacherID picks the teacher a request acts on. Teachers always act
// on themselves; admins must name a teacher unless allowAll is set.
func resolveTeacherID(scope models.AccessScope, requested string, allowAll bool) (string, error) {
	if scope.IsAdmin() {
		if requested == "" && !allowAll {
			return "", appErrors.Clone(appErrors.ErrValidation, "teacherId is required")
		}
		return requested, nil
	}
	if scope.Role != models.RoleTeacher || scope.UserID == "" {
		return "", appErrors.Clone(appErrors.ErrForbidden, "forbidden")
	}
	if requested != "" && requested != scope.UserID {
		return "", appErrors.Clone(appErrors.ErrForbidden, "teachers can only manage their own schedule")
	}
	return scope.UserID, nil
}

// parseDateRange parses an inclusive YYYY-MM-DD range.
func parseDateRange(startValue, endValue string) (time.Time, time.Time, error) {
	if startValue == "" || endValue == "" {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "start and end dates are required")
	}
	start, err := ParseDate(startValue)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
	}
	end, err := ParseDate(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end date")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "end date is before start date")
	}
	return start, end, nil
}

// parseWeek parses a range that must cover exactly seven calendar dates.
func parseWeek(weekStart, weekEnd string) (time.Time, time.Time, error) {
	start, end, err := parseDateRange(weekStart, weekEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.Equal(start.AddDate(0, 0, 6)) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "weekEnd must be six days after weekStart")
	}
	return start, end, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paginate clamps the requested page the same way the repositories do.
func paginate(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
