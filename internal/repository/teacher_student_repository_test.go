package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherStudentRepositoryLinkIsIdempotent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (teacher_id, student_id) DO NOTHING")).
		WithArgs("t1", "s1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Link(context.Background(), "t1", "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherStudentRepositoryUnlink(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teacher_students")).
		WithArgs("t1", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Unlink(context.Background(), "t1", "s1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherStudentRepositoryListTeachers(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = ts.teacher_id")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).
			AddRow("t1", "kim@academy.test", "Kim").
			AddRow("t2", "lee@academy.test", "Lee"))

	teachers, err := repo.ListTeachers(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "kim@academy.test", teachers[0].Email)
	assert.Equal(t, "Lee", teachers[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
