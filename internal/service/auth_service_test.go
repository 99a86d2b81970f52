package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/mocks"
	"projecthub/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
		Domain:          "localhost:3000",
	}
}

func validSignupInput() domain.SignupInput {
	return domain.SignupInput{
		Name:            "Dev",
		Email:           "dev@example.com",
		Experience:      "3 years",
		Skills:          []string{"go"},
		Designation:     "Backend Engineer",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	}
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockEmailSvc := new(mocks.EmailService)
		svc := service.NewAuthService(mockUserRepo, mockEmailSvc, testConfig())

		input := validSignupInput()
		mockUserRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.Role == "employee" && u.PasswordHash != input.Password
		})).Return(nil).Once()
		// Welcome email goes out on a goroutine; it may or may not land
		// before the test finishes.
		mockEmailSvc.On("SendWelcomeEmail", mock.Anything, input.Email, input.Name).Return(nil).Maybe()

		user, err := svc.Signup(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		svc := service.NewAuthService(new(mocks.UserRepository), new(mocks.EmailService), testConfig())

		input := validSignupInput()
		input.ConfirmPassword = "different"

		user, err := svc.Signup(ctx, input)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, service.ErrPasswordMismatch)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, new(mocks.EmailService), testConfig())

		input := validSignupInput()
		mockUserRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		user, err := svc.Signup(ctx, input)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, service.ErrEmailExists)
		mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc := service.NewAuthService(new(mocks.UserRepository), new(mocks.EmailService), testConfig())

		input := validSignupInput()
		input.Name = ""
		input.Skills = nil

		user, err := svc.Signup(ctx, input)

		assert.Nil(t, user)
		var vErr *service.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		assert.Contains(t, vErr.Fields, "skills")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	assert.NoError(t, err)

	stored := &domain.User{
		Email:        "dev@example.com",
		Name:         "Dev",
		Role:         "employee",
		PasswordHash: string(hash),
	}

	t.Run("Token Round Trip", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, new(mocks.EmailService), testConfig())

		mockUserRepo.On("GetByEmail", ctx, stored.Email).Return(stored, nil).Once()

		user, token, err := svc.Login(ctx, domain.LoginInput{Email: stored.Email, Password: "hunter22"})

		assert.NoError(t, err)
		assert.Equal(t, stored.Email, user.Email)
		assert.NotEmpty(t, token)

		claims, err := svc.ValidateAccessToken(token)
		assert.NoError(t, err)
		assert.Equal(t, stored.Email, claims.Email)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, new(mocks.EmailService), testConfig())

		mockUserRepo.On("GetByEmail", ctx, stored.Email).Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: stored.Email, Password: "wrong"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, new(mocks.EmailService), testConfig())

		mockUserRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "hunter22"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Tampered Token", func(t *testing.T) {
		svc := service.NewAuthService(new(mocks.UserRepository), new(mocks.EmailService), testConfig())

		_, err := svc.ValidateAccessToken("not.a.token")

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Email Is A Silent Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockEmailSvc := new(mocks.EmailService)
		svc := service.NewAuthService(mockUserRepo, mockEmailSvc, testConfig())

		mockUserRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		err := svc.RequestPasswordReset(ctx, "nobody@example.com")

		assert.NoError(t, err)
		mockUserRepo.AssertNotCalled(t, "SetResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Stores Token With One Hour Expiry", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockEmailSvc := new(mocks.EmailService)
		svc := service.NewAuthService(mockUserRepo, mockEmailSvc, testConfig())

		stored := &domain.User{Email: "dev@example.com", Name: "Dev"}
		mockUserRepo.On("GetByEmail", ctx, stored.Email).Return(stored, nil).Once()
		mockUserRepo.On("SetResetToken", ctx, stored.Email, mock.AnythingOfType("string"), mock.MatchedBy(func(expires time.Time) bool {
			return time.Until(expires) > 55*time.Minute && time.Until(expires) <= time.Hour
		})).Return(nil).Once()
		mockEmailSvc.On("SendPasswordResetEmail", mock.Anything, stored.Email, stored.Name, mock.AnythingOfType("string")).Return(nil).Maybe()

		err := svc.RequestPasswordReset(ctx, stored.Email)

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, new(mocks.EmailService), testConfig())

		expires := time.Now().UTC().Add(30 * time.Minute)
		stored := &domain.User{Email: "dev@example.com", ResetTokenExpires: &expires}

		mockUserRepo.On("GetByResetToken", ctx, "tok").Return(stored, nil).Once()
		mockUserRepo.On("UpdatePassword", ctx, stored.Email, mock.AnythingOfType("string")).Return(nil).Once()
		mockUserRepo.On("ClearResetToken", ctx, stored.Email).Return(nil).Once()

		err := svc.ResetPassword(ctx, "tok", "newpass123", "newpass123")

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Expired Token", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, new(mocks.EmailService), testConfig())

		expires := time.Now().UTC().Add(-time.Minute)
		stored := &domain.User{Email: "dev@example.com", ResetTokenExpires: &expires}

		mockUserRepo.On("GetByResetToken", ctx, "tok").Return(stored, nil).Once()

		err := svc.ResetPassword(ctx, "tok", "newpass123", "newpass123")

		assert.ErrorIs(t, err, service.ErrResetTokenExpired)
		mockUserRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, new(mocks.EmailService), testConfig())

		mockUserRepo.On("GetByResetToken", ctx, "bogus").Return(nil, nil).Once()

		err := svc.ResetPassword(ctx, "bogus", "newpass123", "newpass123")

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}
