// Package dto содержит объекты передачи данных HTTP API сервиса
// аутентификации.
package dto

import (
	"time"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Role      string `json:"role" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse содержит данные о выданной паре токенов.
type TokenResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// RefreshRequest содержит оба токена сессии: истекший access токен
// восстанавливает личность, refresh токен подтверждает право на обмен.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest содержит данные для смены пароля.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ValidateTokenRequest содержит проверяемый access токен.
type ValidateTokenRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// ValidateTokenResponse содержит результат проверки токена.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// UserProfileResponse содержит данные профиля пользователя.
type UserProfileResponse struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
