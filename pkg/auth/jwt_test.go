package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	s, err := NewJWTService(testSecret, time.Hour, "quizapp")
	require.NoError(t, err)
	return s
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour, "quizapp")
	assert.Error(t, err)

	_, err = NewJWTService(testSecret, 0, "quizapp")
	assert.Error(t, err)
}

func TestGenerateAndParseToken(t *testing.T) {
	s := newTestService(t)
	user := &entity.User{ID: 42, Username: "alice", Role: entity.RoleUser}

	token, err := s.GenerateToken(user)
	require.NoError(t, err)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	id := claims.Identity()
	assert.Equal(t, Identity{UserID: 42, Username: "alice", Role: entity.RoleUser}, id)
	assert.False(t, id.IsAdmin())
}

func TestParseToken_Expired(t *testing.T) {
	s := newTestService(t)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := s.GenerateToken(&entity.User{ID: 1, Username: "bob", Role: entity.RoleUser})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_Malformed(t *testing.T) {
	s := newTestService(t)
	_, err := s.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseToken_WrongSecret(t *testing.T) {
	other, err := NewJWTService(strings.Repeat("x", 32), time.Hour, "quizapp")
	require.NoError(t, err)
	token, err := other.GenerateToken(&entity.User{ID: 1, Username: "eve", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = newTestService(t).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		UserID: 1, Username: "mallory", Role: entity.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "quizapp",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService(t).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_WrongIssuer(t *testing.T) {
	other, err := NewJWTService(testSecret, time.Hour, "someone-else")
	require.NoError(t, err)
	token, err := other.GenerateToken(&entity.User{ID: 3, Username: "carol", Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = newTestService(t).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
