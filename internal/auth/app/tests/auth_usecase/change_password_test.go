package authusecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projectathena/internal/auth/app"
	"projectathena/internal/auth/domain/entities"
	"projectathena/internal/auth/domain/services"
)

func TestChangePassword(t *testing.T) {
	userID := "user-123"
	currentPassword := "oldpass123"
	newPassword := "newpass456"
	currentHash := "current_hash"

	user := func() *entities.User {
		return &entities.User{
			ID:           userID,
			Email:        "student@example.com",
			IsActive:     true,
			PasswordHash: currentHash,
		}
	}

	tests := []struct {
		name         string
		current      string
		next         string
		confirm      string
		setupMocks   func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService)
		expectedErr  error
		noStoreCalls bool
	}{
		{
			name:    "success - password changed",
			current: currentPassword,
			next:    newPassword,
			confirm: newPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService) {
				mockUserRepo.On("FindByID", mock.Anything, userID).Return(user(), nil).Once()
				mockPasswordSvc.On("Verify", mock.Anything, currentPassword, currentHash).Return(true, nil).Once()
				mockPasswordSvc.On("Hash", mock.Anything, newPassword).Return("new_hash", nil).Once()
				mockUserRepo.On("UpdatePassword", mock.Anything, userID, "new_hash").Return(nil).Once()
			},
		},
		{
			name:         "error - confirmation mismatch checked before any store call",
			current:      currentPassword,
			next:         newPassword,
			confirm:      "different",
			setupMocks:   func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr:  services.ErrPasswordConfirmation,
			noStoreCalls: true,
		},
		{
			name:         "error - new password equals current",
			current:      currentPassword,
			next:         currentPassword,
			confirm:      currentPassword,
			setupMocks:   func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr:  services.ErrPolicyViolation,
			noStoreCalls: true,
		},
		{
			name:         "error - weak new password",
			current:      currentPassword,
			next:         "short1",
			confirm:      "short1",
			setupMocks:   func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr:  services.ErrPolicyViolation,
			noStoreCalls: true,
		},
		{
			name:    "error - wrong current password",
			current: "wrongpass9",
			next:    newPassword,
			confirm: newPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService) {
				mockUserRepo.On("FindByID", mock.Anything, userID).Return(user(), nil).Once()
				mockPasswordSvc.On("Verify", mock.Anything, "wrongpass9", currentHash).Return(false, nil).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name:    "error - user not found reads as invalid credentials",
			current: currentPassword,
			next:    newPassword,
			confirm: newPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, _ *mockPasswordService) {
				mockUserRepo.On("FindByID", mock.Anything, userID).
					Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			mockUserRepo := new(mockUserRepository)
			mockStore := new(mockTokenStore)
			mockPasswordSvc := new(mockPasswordService)
			mockTokenSvc := new(mockTokenService)

			ttt.setupMocks(mockUserRepo, mockPasswordSvc)

			authUseCase := app.NewAuthUseCase(mockUserRepo, mockStore, mockPasswordSvc, mockTokenSvc)

			err := authUseCase.ChangePassword(context.Background(), userID, ttt.current, ttt.next, ttt.confirm)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			if ttt.noStoreCalls {
				mockUserRepo.AssertNotCalled(t, "FindByID")
				mockUserRepo.AssertNotCalled(t, "UpdatePassword")
			}

			// Смена пароля не трогает refresh слот: выданные сессии
			// продолжают жить до естественного истечения.
			mockStore.AssertNotCalled(t, "Revoke")

			mockUserRepo.AssertExpectations(t)
			mockPasswordSvc.AssertExpectations(t)
		})
	}
}
