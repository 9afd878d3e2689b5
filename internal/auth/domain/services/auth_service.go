package services

import (
	"errors"
	"time"

	"projectathena/internal/auth/domain/entities"
)

// Ошибки домена аутентификации. Каждый сбой рабочего процесса сопоставляется
// ровно с одной из этих ошибок; все остальное поднимается как есть.
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountLockedOut     = errors.New("account is temporarily locked out")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrEmailAlreadyExists   = errors.New("user with this email already exists")
	ErrPolicyViolation      = errors.New("password or role violates account policy")
	ErrPasswordConfirmation = errors.New("password confirmation does not match")
)

// TokenPair представляет пару токенов аутентификации вместе со снимком
// пользователя, возвращаемую при входе и обновлении.
type TokenPair struct {
	UserID       string
	Email        string
	FirstName    string
	LastName     string
	Role         entities.Role
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
