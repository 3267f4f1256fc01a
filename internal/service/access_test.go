package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

var (
	adminScope   = models.AccessScope{UserID: "admin", Role: models.RoleAdmin}
	teacherScope = models.AccessScope{UserID: "t1", Role: models.RoleTeacher}
)

func TestResolveTeacherID(t *testing.T) {
	id, err := resolveTeacherID(teacherScope, "", false)
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	_, err = resolveTeacherID(teacherScope, "t2", false)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = resolveTeacherID(adminScope, "", false)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	id, err = resolveTeacherID(adminScope, "", true)
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = resolveTeacherID(models.AccessScope{}, "", true)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestParseWeek(t *testing.T) {
	start, end, err := parseWeek("2025-03-03", "2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", DateKey(start))
	assert.Equal(t, "2025-03-09", DateKey(end))

	for _, tc := range [][2]string{
		{"", "2025-03-09"},
		{"2025-03-03", ""},
		{"03/03/2025", "2025-03-09"},
		{"2025-03-03", "2025-03-08"},
		{"2025-03-09", "2025-03-03"},
	} {
		_, _, err := parseWeek(tc[0], tc[1])
		assert.True(t, errors.Is(err, appErrors.ErrValidation), "range %v", tc)
	}
}
