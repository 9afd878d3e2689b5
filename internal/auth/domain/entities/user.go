// Package entities определяет доменные сущности сервиса аутентификации.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyName        = errors.New("first name and last name cannot be empty")
	ErrInvalidRole      = errors.New("unknown role")
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak  = errors.New("password must contain at least one letter and one digit")
	ErrUserNotFound     = errors.New("user not found")
)

// Role определяет роль пользователя в системе.
type Role string

// Поддерживаемые роли.
const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
	RoleAdmin   Role = "Admin"
)

// ParseRole преобразует строку в Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// User представляет учетную запись пользователя.
// Счетчики неудачных входов и блокировка принадлежат хранилищу учетных
// данных; остальной код их только читает.
type User struct {
	ID                  string
	Email               string
	FirstName           string
	LastName            string
	Role                Role
	IsActive            bool
	PasswordHash        string
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked сообщает, заблокирована ли учетная запись на данный момент.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// DisplayName возвращает полное имя пользователя.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
