// Package app реализует бизнес-логику сервиса аутентификации.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
	"projectathena/internal/auth/ports/api"
	"projectathena/internal/auth/ports/repositories"
	svc "projectathena/internal/auth/ports/services"
	"projectathena/pkg/logger"
)

const (
	methodLogin          = "Login"
	methodRegister       = "Register"
	methodRefresh        = "Refresh"
	methodLogout         = "Logout"
	methodChangePassword = "ChangePassword"
	methodIssuePair      = "issueSessionPair"

	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgLoginInactive       = "login attempt on deactivated account"
	msgLoginLockedOut      = "login attempt on locked-out account"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgStartRegistration   = "starting user registration"
	msgInvalidEmailFormat  = "invalid email format"
	msgEmptyName           = "empty first or last name provided"
	msgInvalidPassword     = "invalid password"
	msgInvalidRole         = "role rejected by policy"
	msgUserRegistered      = "user registered successfully"
	msgRefreshingSession   = "refreshing session"
	msgRefreshUnknownUser  = "refresh attempt for unknown or inactive user"
	msgRefreshRejected     = "refresh token rejected by store"
	msgSessionRefreshed    = "session refreshed successfully"
	msgProcessingLogout    = "processing logout request"
	msgUserLoggedOut       = "user logged out successfully"
	msgChangingPassword    = "changing password"
	msgPasswordChanged     = "password changed successfully"

	msgErrFindingUser       = "error finding user"
	msgErrVerifyingPassword = "error verifying password"
	msgErrRecordingFailure  = "failed to record login failure"
	msgErrRecordingSuccess  = "failed to record login success"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrIssueAccessToken  = "failed to issue access token"
	msgErrRefreshSecret     = "failed to generate refresh secret"
	msgErrSaveRefreshToken  = "failed to save refresh token"
	msgErrRotateToken       = "failed to rotate refresh token"
	msgErrRevokeToken       = "failed to revoke refresh token"
	msgErrUpdatePassword    = "failed to update password"

	errCtxInvalidCredentials = "invalid credentials"
	errCtxAccountLocked      = "account locked out"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxRecordingAttempt   = "recording login attempt"
	errCtxValidatingEmail    = "validating email"
	errCtxValidatingName     = "validating name"
	errCtxValidatingPassword = "validating password"
	errCtxValidatingRole     = "validating role"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxExtractingClaims   = "extracting claims"
	errCtxInvalidToken       = "invalid token"
	errCtxRotatingToken      = "rotating refresh token"
	errCtxIssuingTokens      = "issuing tokens"
	errCtxRevokingToken      = "revoking token"
	errCtxConfirmingPassword = "confirming password"
	errCtxUpdatingPassword   = "updating password"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase: оркестратор сессий,
// связывающий хранилище учетных данных, сервис токенов и хранилище
// refresh токенов.
type AuthUseCaseImpl struct {
	userRepo   repositories.UserRepository
	tokenStore repositories.RefreshTokenStore

	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр оркестратора сессий.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	tokenStore repositories.RefreshTokenStore,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		tokenStore:  tokenStore,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Login аутентифицирует пользователя по email и паролю и возвращает
// новую пару токенов вместе со снимком пользователя.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if !user.IsActive {
		log.Debug(ctx, msgLoginInactive, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	if user.IsLocked(time.Now()) {
		log.Debug(ctx, msgLoginLockedOut, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxAccountLocked, services.ErrAccountLockedOut)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))

		locked, err := a.userRepo.RecordLoginFailure(ctx, user.ID)
		if err != nil {
			log.Error(ctx, msgErrRecordingFailure, zap.Error(err), zap.String("userID", user.ID))
			return nil, fmt.Errorf("%s: %w", errCtxRecordingAttempt, err)
		}
		if locked {
			return nil, fmt.Errorf("%s: %w", errCtxAccountLocked, services.ErrAccountLockedOut)
		}
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	if err := a.userRepo.RecordLoginSuccess(ctx, user.ID); err != nil {
		log.Error(ctx, msgErrRecordingSuccess, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxRecordingAttempt, err)
	}

	pair, err := a.issueSessionPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxIssuingTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return pair, nil
}

// Register создает нового пользователя. Не аутентифицирует: вызывающая
// сторона должна затем выполнить Login.
func (a *AuthUseCaseImpl) Register(ctx context.Context, input api.RegisterInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", input.Email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(input.Email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if input.FirstName == "" || input.LastName == "" {
		log.Debug(ctx, msgEmptyName)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}
	if err := validateAssignableRole(input.Role); err != nil {
		log.Debug(ctx, msgInvalidRole, zap.String("role", string(input.Role)))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRole, err)
	}
	if err := validatePassword(input.Password); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingPassword, services.ErrPolicyViolation, err)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		IsActive:     true,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, services.ErrEmailAlreadyExists)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return createdUser, nil
}

// Refresh восстанавливает личность из истекшего access токена и обменивает
// refresh токен на новую пару. Единственный путь ротации: старый refresh
// токен становится недействительным немедленно.
func (a *AuthUseCaseImpl) Refresh(ctx context.Context, accessToken, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))
	log.Debug(ctx, msgRefreshingSession)

	claims, err := a.tokenSvc.ExtractClaimsIgnoringExpiry(ctx, accessToken)
	if err != nil {
		log.Debug(ctx, msgRefreshRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxExtractingClaims, services.ErrInvalidToken)
	}

	log = log.With(zap.String("userID", claims.UserID))

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgRefreshUnknownUser)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidToken, services.ErrInvalidToken)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if !user.IsActive {
		log.Debug(ctx, msgRefreshUnknownUser)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidToken, services.ErrInvalidToken)
	}

	next, err := a.tokenSvc.GenerateRefreshSecret(ctx)
	if err != nil {
		log.Error(ctx, msgErrRefreshSecret, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingTokens, err)
	}

	rotated, err := a.tokenStore.Rotate(ctx, user.ID, refreshToken, next)
	if err != nil {
		log.Error(ctx, msgErrRotateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxRotatingToken, err)
	}
	if !rotated {
		log.Debug(ctx, msgRefreshRejected)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidToken, services.ErrInvalidToken)
	}

	newAccessToken, expiresAt, err := a.tokenSvc.IssueAccessToken(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrIssueAccessToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingTokens, err)
	}

	log.Info(ctx, msgSessionRefreshed)
	return &services.TokenPair{
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		AccessToken:  newAccessToken,
		RefreshToken: next,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout освобождает слот refresh токена пользователя. Идемпотентен:
// повторный вызов для отсутствующего слота не является ошибкой.
// Уже выданные access токены остаются действительными до естественного
// истечения (access токены без серверного состояния неотзываемы).
func (a *AuthUseCaseImpl) Logout(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout), zap.String("userID", userID))
	log.Debug(ctx, msgProcessingLogout)

	if err := a.tokenStore.Revoke(ctx, userID); err != nil {
		log.Error(ctx, msgErrRevokeToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// ChangePassword меняет пароль пользователя. Подтверждение проверяется
// до какого-либо обращения к хранилищу. Существующие сессии не
// затрагиваются.
func (a *AuthUseCaseImpl) ChangePassword(ctx context.Context, userID, current, next, confirm string) error {
	log := logger.Log(ctx).With(zap.String("method", methodChangePassword), zap.String("userID", userID))
	log.Debug(ctx, msgChangingPassword)

	if next != confirm {
		return fmt.Errorf("%s: %w", errCtxConfirmingPassword, services.ErrPasswordConfirmation)
	}
	if next == current {
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, services.ErrPolicyViolation)
	}
	if err := validatePassword(next); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", errCtxValidatingPassword, services.ErrPolicyViolation, err)
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, current, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth)
		return fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, next)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	if err := a.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		log.Error(ctx, msgErrUpdatePassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingPassword, err)
	}

	log.Info(ctx, msgPasswordChanged)
	return nil
}

// ValidateToken - снисходительная булева проверка access токена.
// Любая ошибка проверки трактуется как false; вызывающие стороны не
// различают причины отказа.
func (a *AuthUseCaseImpl) ValidateToken(ctx context.Context, token string) bool {
	_, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	return err == nil
}

// issueSessionPair создает access токен и refresh токен и занимает
// единственный слот пользователя в хранилище.
func (a *AuthUseCaseImpl) issueSessionPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssuePair),
		zap.String("userID", user.ID),
	)

	accessToken, expiresAt, err := a.tokenSvc.IssueAccessToken(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrIssueAccessToken, zap.Error(err))
		return nil, err
	}

	refreshToken, err := a.tokenSvc.GenerateRefreshSecret(ctx)
	if err != nil {
		log.Error(ctx, msgErrRefreshSecret, zap.Error(err))
		return nil, err
	}

	if err := a.tokenStore.Save(ctx, user.ID, refreshToken); err != nil {
		log.Error(ctx, msgErrSaveRefreshToken, zap.Error(err))
		return nil, err
	}

	return &services.TokenPair{
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Валидация email.
func validateEmail(email string) error {
	if email == "" {
		return entities.ErrInvalidEmail
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}

	return nil
}

// Валидация пароля.
func validatePassword(password string) error {
	if len(password) < services.MinPasswordLength {
		return entities.ErrPasswordTooShort
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`\d`).MatchString(password)

	if !hasLetter || !hasDigit {
		return entities.ErrPasswordTooWeak
	}

	return nil
}

// validateAssignableRole проверяет, что роль может быть назначена при
// самостоятельной регистрации. Административные учетные записи создаются
// только существующим администратором.
func validateAssignableRole(role entities.Role) error {
	switch role {
	case entities.RoleStudent, entities.RoleTeacher:
		return nil
	default:
		return services.ErrPolicyViolation
	}
}
