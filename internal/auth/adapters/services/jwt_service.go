package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
	svc "projectathena/internal/auth/ports/services"
	"projectathena/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssueAccessToken    = "IssueAccessToken"
	methodValidateAccessToken = "ValidateAccessToken"
	methodExtractClaims       = "ExtractClaimsIgnoringExpiry"

	msgIssuingAccessToken      = "issuing access token"
	msgGeneratingRefreshSecret = "generating refresh secret"
	msgValidatingToken         = "validating token"
	msgTokenIssued             = "access token issued"
	msgTokenValidated          = "token validated successfully"
	msgInvalidToken            = "invalid token"
	msgTokenExpired            = "token has expired"

	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxIssuingToken    = "issuing token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
	errCtxRefreshSecret   = "generating refresh secret"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// refreshSecretBytes - количество случайных байт в refresh токене.
const refreshSecretBytes = 64

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService поверх HS256 с общим секретом.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT. Пустой секретный ключ -
// фатальная ошибка конфигурации, а не ошибка времени запроса.
func NewJWT(secretKey string, accessTokenTTL time.Duration) (svc.TokenService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("creating JWT service: %w", services.ErrMissingSecretKey)
	}
	if accessTokenTTL <= 0 {
		accessTokenTTL = time.Hour
	}
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:      []byte(secretKey),
			AccessTokenTTL: accessTokenTTL,
		},
	}, nil
}

// domainToJWTClaims преобразует доменные claims в формат библиотеки JWT.
func domainToJWTClaims(claims services.AccessTokenClaims) Claims {
	return Claims{
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ID:        claims.TokenID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
}

// jwtToDomainClaims преобразует claims формата библиотеки JWT в доменные claims.
func jwtToDomainClaims(claims *Claims) *services.AccessTokenClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &services.AccessTokenClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      entities.Role(claims.Role),
		TokenID:   claims.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

// IssueAccessToken создает подписанный access токен с claims пользователя.
func (s *ServiceJWT) IssueAccessToken(ctx context.Context, user *entities.User) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueAccessToken),
		zap.String("userID", user.ID),
	)
	log.Debug(ctx, msgIssuingAccessToken)

	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	domainClaims := services.AccessTokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		TokenID:   uuid.New().String(),
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(domainClaims))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// GenerateRefreshSecret генерирует непрозрачный refresh токен без
// какой-либо внутренней структуры.
func (s *ServiceJWT) GenerateRefreshSecret(ctx context.Context) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "GenerateRefreshSecret"))
	log.Debug(ctx, msgGeneratingRefreshSecret)

	buf := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		log.Error(ctx, "error reading random bytes", zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxRefreshSecret, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// keyFunc проверяет, что заголовок алгоритма точно совпадает с ожидаемым.
// Токены, подписанные другим алгоритмом, отклоняются независимо от
// валидности подписи (защита от подмены алгоритма).
func (s *ServiceJWT) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
	}
	return s.config.SecretKey, nil
}

// ValidateAccessToken полностью проверяет JWT токен, включая срок действия.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (*services.AccessTokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.Subject == "" {
		log.Debug(ctx, "subject claim is empty")
		return nil, fmt.Errorf("%s: %w: empty subject", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.Subject))
	return jwtToDomainClaims(claims), nil
}

// ExtractClaimsIgnoringExpiry проверяет подпись и алгоритм токена, но
// намеренно игнорирует срок действия: поток обновления восстанавливает
// личность из access токена, который к этому моменту уже истек.
// Не использовать вне потока обновления.
func (s *ServiceJWT) ExtractClaimsIgnoringExpiry(ctx context.Context, tokenString string) (*services.AccessTokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodExtractClaims))
	log.Debug(ctx, msgValidatingToken)

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.Subject == "" {
		log.Debug(ctx, "subject claim is empty")
		return nil, fmt.Errorf("%s: %w: empty subject", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.Subject))
	return jwtToDomainClaims(claims), nil
}
