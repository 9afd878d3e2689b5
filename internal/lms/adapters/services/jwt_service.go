// Package services содержит реализации сервисных интерфейсов.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"projectathena/internal/lms/ports/services"
	"projectathena/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodValidateToken = "ValidateAccessToken"
	msgValidatingToken  = "validating token"
	msgTokenValidated   = "token validated successfully"
	msgInvalidToken     = "invalid token format"
	msgTokenExpired     = "token has expired"
	msgErrParsingToken  = "error parsing token" //nolint:gosec
	errCtxValidating    = "validating token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
// Набор полей совпадает с claims, которые выдает сервис аутентификации.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	secretKey []byte
}

// NewJWT создает новый экземпляр проверяющего сервиса JWT.
func NewJWT(secretKey string) (services.TokenService, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key is not configured")
	}
	return &ServiceJWT{
		secretKey: []byte(secretKey),
	}, nil
}

// ValidateAccessToken проверяет JWT токен и возвращает данные сессии.
// Заголовок alg должен точно совпадать с ожидаемым алгоритмом: токен с
// другим алгоритмом отклоняется независимо от валидности подписи.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (*services.SessionClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidating, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgErrParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	if claims.Subject == "" {
		log.Debug(ctx, "sub claim is empty")
		return nil, fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.Subject))
	return &services.SessionClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
