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
	"projectathena/internal/auth/ports/api"
)

func TestRegister(t *testing.T) {
	validInput := func() api.RegisterInput {
		return api.RegisterInput{
			Email:     "new@example.com",
			FirstName: "Dana",
			LastName:  "Kim",
			Role:      entities.RoleStudent,
			Password:  "password123",
		}
	}

	tests := []struct {
		name        string
		input       func() api.RegisterInput
		setupMocks  func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService)
		expectedErr error
	}{
		{
			name:  "success - student registered",
			input: validInput,
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService) {
				mockPasswordSvc.On("Hash", mock.Anything, "password123").Return("hashed", nil).Once()
				mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == "new@example.com" && u.IsActive && u.PasswordHash == "hashed"
				})).Return(&entities.User{
					ID:        "user-1",
					Email:     "new@example.com",
					FirstName: "Dana",
					LastName:  "Kim",
					Role:      entities.RoleStudent,
					IsActive:  true,
				}, nil).Once()
			},
		},
		{
			name: "error - invalid email format",
			input: func() api.RegisterInput {
				in := validInput()
				in.Email = "not-an-email"
				return in
			},
			setupMocks:  func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr: entities.ErrInvalidEmail,
		},
		{
			name: "error - empty first name",
			input: func() api.RegisterInput {
				in := validInput()
				in.FirstName = ""
				return in
			},
			setupMocks:  func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr: entities.ErrEmptyName,
		},
		{
			name: "error - admin role not self-assignable",
			input: func() api.RegisterInput {
				in := validInput()
				in.Role = entities.RoleAdmin
				return in
			},
			setupMocks:  func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr: services.ErrPolicyViolation,
		},
		{
			name: "error - short password is a policy violation",
			input: func() api.RegisterInput {
				in := validInput()
				in.Password = "pw1"
				return in
			},
			setupMocks:  func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr: services.ErrPolicyViolation,
		},
		{
			name: "error - digitless password is a policy violation",
			input: func() api.RegisterInput {
				in := validInput()
				in.Password = "passwordonly"
				return in
			},
			setupMocks:  func(_ *mockUserRepository, _ *mockPasswordService) {},
			expectedErr: services.ErrPolicyViolation,
		},
		{
			name:  "error - duplicate email",
			input: validInput,
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService) {
				mockPasswordSvc.On("Hash", mock.Anything, "password123").Return("hashed", nil).Once()
				mockUserRepo.On("Create", mock.Anything, mock.Anything).
					Return(nil, services.ErrEmailAlreadyExists).Once()
			},
			expectedErr: services.ErrEmailAlreadyExists,
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

			user, err := authUseCase.Register(context.Background(), ttt.input())

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "user-1", user.ID)
				assert.True(t, user.IsActive)
			}

			// Регистрация сама по себе не выдает токены.
			mockTokenSvc.AssertNotCalled(t, "IssueAccessToken")
			mockStore.AssertNotCalled(t, "Save")

			mockUserRepo.AssertExpectations(t)
			mockPasswordSvc.AssertExpectations(t)
		})
	}
}
