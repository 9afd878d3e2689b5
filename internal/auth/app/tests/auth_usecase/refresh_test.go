package authusecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projectathena/internal/auth/app"
	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
)

func TestRefresh(t *testing.T) {
	userID := "user-123"
	staleAccessToken := "stale-access-token"
	oldRefreshToken := "old-refresh-token"
	newRefreshToken := "new-refresh-token"
	newAccessToken := "new-access-token"

	now := time.Now()
	accessExpiry := now.Add(time.Hour)

	claims := &services.AccessTokenClaims{
		UserID: userID,
		Email:  "student@example.com",
		Role:   entities.RoleStudent,
	}

	activeUser := func() *entities.User {
		return &entities.User{
			ID:       userID,
			Email:    "student@example.com",
			Role:     entities.RoleStudent,
			IsActive: true,
		}
	}

	tests := []struct {
		name        string
		setupMocks  func(mockUserRepo *mockUserRepository, mockStore *mockTokenStore, mockTokenSvc *mockTokenService)
		expectedErr error
	}{
		{
			name: "success - session refreshed with rotation",
			setupMocks: func(mockUserRepo *mockUserRepository, mockStore *mockTokenStore, mockTokenSvc *mockTokenService) {
				mockTokenSvc.On("ExtractClaimsIgnoringExpiry", mock.Anything, staleAccessToken).
					Return(claims, nil).Once()
				mockUserRepo.On("FindByID", mock.Anything, userID).Return(activeUser(), nil).Once()
				mockTokenSvc.On("GenerateRefreshSecret", mock.Anything).Return(newRefreshToken, nil).Once()
				mockStore.On("Rotate", mock.Anything, userID, oldRefreshToken, newRefreshToken).
					Return(true, nil).Once()
				mockTokenSvc.On("IssueAccessToken", mock.Anything, mock.Anything).
					Return(newAccessToken, accessExpiry, nil).Once()
			},
		},
		{
			name: "error - tampered access token",
			setupMocks: func(_ *mockUserRepository, _ *mockTokenStore, mockTokenSvc *mockTokenService) {
				mockTokenSvc.On("ExtractClaimsIgnoringExpiry", mock.Anything, staleAccessToken).
					Return(nil, services.ErrInvalidJWTToken).Once()
			},
			expectedErr: services.ErrInvalidToken,
		},
		{
			name: "error - user no longer exists",
			setupMocks: func(mockUserRepo *mockUserRepository, _ *mockTokenStore, mockTokenSvc *mockTokenService) {
				mockTokenSvc.On("ExtractClaimsIgnoringExpiry", mock.Anything, staleAccessToken).
					Return(claims, nil).Once()
				mockUserRepo.On("FindByID", mock.Anything, userID).
					Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr: services.ErrInvalidToken,
		},
		{
			name: "error - deactivated user",
			setupMocks: func(mockUserRepo *mockUserRepository, _ *mockTokenStore, mockTokenSvc *mockTokenService) {
				mockTokenSvc.On("ExtractClaimsIgnoringExpiry", mock.Anything, staleAccessToken).
					Return(claims, nil).Once()
				user := activeUser()
				user.IsActive = false
				mockUserRepo.On("FindByID", mock.Anything, userID).Return(user, nil).Once()
			},
			expectedErr: services.ErrInvalidToken,
		},
		{
			name: "error - rotation rejected for stale refresh token",
			setupMocks: func(mockUserRepo *mockUserRepository, mockStore *mockTokenStore, mockTokenSvc *mockTokenService) {
				mockTokenSvc.On("ExtractClaimsIgnoringExpiry", mock.Anything, staleAccessToken).
					Return(claims, nil).Once()
				mockUserRepo.On("FindByID", mock.Anything, userID).Return(activeUser(), nil).Once()
				mockTokenSvc.On("GenerateRefreshSecret", mock.Anything).Return(newRefreshToken, nil).Once()
				mockStore.On("Rotate", mock.Anything, userID, oldRefreshToken, newRefreshToken).
					Return(false, nil).Once()
			},
			expectedErr: services.ErrInvalidToken,
		},
		{
			name: "error - store failure surfaces",
			setupMocks: func(mockUserRepo *mockUserRepository, mockStore *mockTokenStore, mockTokenSvc *mockTokenService) {
				mockTokenSvc.On("ExtractClaimsIgnoringExpiry", mock.Anything, staleAccessToken).
					Return(claims, nil).Once()
				mockUserRepo.On("FindByID", mock.Anything, userID).Return(activeUser(), nil).Once()
				mockTokenSvc.On("GenerateRefreshSecret", mock.Anything).Return(newRefreshToken, nil).Once()
				mockStore.On("Rotate", mock.Anything, userID, oldRefreshToken, newRefreshToken).
					Return(false, ErrDatabaseConnection).Once()
			},
			expectedErr: ErrDatabaseConnection,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			mockUserRepo := new(mockUserRepository)
			mockStore := new(mockTokenStore)
			mockPasswordSvc := new(mockPasswordService)
			mockTokenSvc := new(mockTokenService)

			ttt.setupMocks(mockUserRepo, mockStore, mockTokenSvc)

			authUseCase := app.NewAuthUseCase(mockUserRepo, mockStore, mockPasswordSvc, mockTokenSvc)

			pair, err := authUseCase.Refresh(context.Background(), staleAccessToken, oldRefreshToken)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, pair)
				assert.Equal(t, newAccessToken, pair.AccessToken)
				assert.Equal(t, newRefreshToken, pair.RefreshToken)
				assert.Equal(t, userID, pair.UserID)
			}

			mockUserRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
			mockTokenSvc.AssertExpectations(t)
		})
	}
}

func TestRefreshDoesNotUseFullValidation(t *testing.T) {
	mockUserRepo := new(mockUserRepository)
	mockStore := new(mockTokenStore)
	mockPasswordSvc := new(mockPasswordService)
	mockTokenSvc := new(mockTokenService)

	mockTokenSvc.On("ExtractClaimsIgnoringExpiry", mock.Anything, "stale").
		Return(nil, errors.New("bad token")).Once()

	authUseCase := app.NewAuthUseCase(mockUserRepo, mockStore, mockPasswordSvc, mockTokenSvc)

	_, err := authUseCase.Refresh(context.Background(), "stale", "refresh")
	require.Error(t, err)

	// Истекший access токен не должен мешать обновлению: путь Refresh
	// никогда не обращается к полной проверке.
	mockTokenSvc.AssertNotCalled(t, "ValidateAccessToken")
}
