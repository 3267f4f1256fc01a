package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	Role         UserRole   `db:"role" json:"role"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	Age          *int       `db:"age" json:"age,omitempty"`
	Memo         *string    `db:"memo" json:"memo,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// AccessScope identifies who is asking for data. Repositories narrow their
// queries with it instead of reading the caller from request state.
type AccessScope struct {
	UserID string
	Role   UserRole
}

// IsAdmin reports whether the scope is unrestricted.
func (s AccessScope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanAccessTeacher reports whether the scope may read or write rows owned by teacherID.
func (s AccessScope) CanAccessTeacher(teacherID string) bool {
	return s.IsAdmin() || (s.UserID != "" && s.UserID == teacherID)
}

// CacheKey renders a stable fragment for cache keys partitioned by visibility.
func (s AccessScope) CacheKey() string {
	if s.IsAdmin() {
		return "all"
	}
	return "teacher:" + s.UserID
}
