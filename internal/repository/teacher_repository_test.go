package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

var teacherRowColumns = []string{"id", "email", "name", "phone", "age", "memo", "active", "created_at", "updated_at"}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, phone, age, memo, active, created_at, updated_at FROM users WHERE role = $1 AND (LOWER(name) LIKE $2 OR LOWER(email) LIKE $2) ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs(models.RoleTeacher, "%kim%").
		WillReturnRows(sqlmock.NewRows(teacherRowColumns).AddRow("t1", "kim@academy.test", "Kim", nil, 31, nil, true, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE role = $1")).
		WithArgs(models.RoleTeacher, "%kim%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teachers, total, err := repo.List(context.Background(), models.TeacherFilter{Search: "Kim"})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, 31, *teachers[0].Age)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListActiveOrdersByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE role = $1 AND active = TRUE ORDER BY name ASC, id ASC")).
		WithArgs(models.RoleTeacher).
		WillReturnRows(sqlmock.NewRows(teacherRowColumns).
			AddRow("t2", "choi@academy.test", "Choi", nil, nil, nil, true, now, now).
			AddRow("t1", "kim@academy.test", "Kim", nil, nil, nil, true, now, now))

	teachers, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Choi", teachers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateForcesRole(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "new@academy.test", "hash", "New", models.RoleTeacher, nil, nil, nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{Email: "new@academy.test", PasswordHash: "hash", Name: "New", Role: models.RoleAdmin, Active: true}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryDeactivateMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET active = FALSE")).
		WithArgs("t9", sqlmock.AnyArg(), models.RoleTeacher).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), "t9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
