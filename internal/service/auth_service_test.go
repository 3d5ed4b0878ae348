package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/owaies/QuizApp/internal/domain/entity"
	"github.com/owaies/QuizApp/internal/domain/repository"
	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
)

func newAuthServiceForTest() (*AuthService, *MockUserRepository, *MockTokenIssuer) {
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	return NewAuthService(userRepo, tokens), userRepo, tokens
}

func hashedUser(t *testing.T, id uint, username, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: id, Username: username, Email: username + "@example.com", Password: string(hash), Role: role}
}

func TestAuthService_Signup_Success(t *testing.T) {
	svc, userRepo, tokens := newAuthServiceForTest()
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "alice").Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = 11 }).
		Return(nil)
	tokens.On("GenerateToken", mock.AnythingOfType("*entity.User")).Return("signed-token", nil)

	res, err := svc.Signup(ctx, SignupInput{Username: "  alice ", Email: " Alice@Example.com ", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", res.Token)
	assert.Equal(t, uint(11), res.User.ID)
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, entity.RoleUser, res.User.Role, "Регистрация всегда выдает роль user")
	userRepo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAuthService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input SignupInput
	}{
		{"missing username", SignupInput{Email: "a@example.com", Password: "secret1"}},
		{"missing email", SignupInput{Username: "alice", Password: "secret1"}},
		{"missing password", SignupInput{Username: "alice", Email: "a@example.com"}},
		{"short password", SignupInput{Username: "alice", Email: "a@example.com", Password: "12345"}},
		{"bad email", SignupInput{Username: "alice", Email: "not-an-email", Password: "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := newAuthServiceForTest()

			_, err := svc.Signup(context.Background(), tt.input)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "ALICE").Return(&entity.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.Signup(ctx, SignupInput{Username: "ALICE", Email: "new@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "username already taken")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "bob").Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&entity.User{ID: 2}, nil)

	_, err := svc.Signup(ctx, SignupInput{Username: "bob", Email: "TAKEN@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestAuthService_Signup_UniqueRace(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "carol").Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByEmail", ctx, "carol@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("%w: constraint", repository.ErrDuplicate))

	_, err := svc.Signup(ctx, SignupInput{Username: "carol", Email: "carol@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := hashedUser(t, 5, "dave", "correct-horse", entity.RoleAdmin)

	t.Run("success", func(t *testing.T) {
		svc, userRepo, tokens := newAuthServiceForTest()
		userRepo.On("GetByUsername", ctx, "Dave").Return(user, nil)
		tokens.On("GenerateToken", user).Return("tok", nil)

		res, err := svc.Login(ctx, "Dave", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "tok", res.Token)
		assert.Equal(t, entity.RoleAdmin, res.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, tokens := newAuthServiceForTest()
		userRepo.On("GetByUsername", ctx, "dave").Return(user, nil)

		res, err := svc.Login(ctx, "dave", "wrong-password")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Nil(t, res)
		tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceForTest()
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

		_, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _ := newAuthServiceForTest()
		_, err := svc.Login(ctx, " ", "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestAuthService_CreateAdmin(t *testing.T) {
	svc, userRepo, tokens := newAuthServiceForTest()
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "root").Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByEmail", ctx, "root@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool { return u.Role == entity.RoleAdmin })).Return(nil)

	user, err := svc.CreateAdmin(ctx, SignupInput{Username: "root", Email: "root@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
}
