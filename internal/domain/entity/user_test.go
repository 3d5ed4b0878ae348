package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange: пользователь с открытым паролем
	plainPassword := "secret123"
	user := &User{Username: "alice", Email: "alice@example.com", Password: plainPassword}

	// Act
	err := user.BeforeSave(nil)

	// Assert: пароль должен быть хеширован
	require.NoError(t, err)
	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword)))
}

func TestUser_BeforeSave_HashesHashLikePassword(t *testing.T) {
	// Пароль с префиксом bcrypt все равно открытый текст пользователя
	plainPassword := "$2a$hunter2"
	user := &User{Username: "mallory", Password: plainPassword}

	require.NoError(t, user.BeforeSave(nil))

	assert.NotEqual(t, plainPassword, user.Password)
	assert.True(t, user.CheckPassword(plainPassword))
}

func TestUser_BeforeSave_SkipsEmptyPassword(t *testing.T) {
	user := &User{Username: "alice"}

	require.NoError(t, user.BeforeSave(nil))

	assert.Empty(t, user.Password)
}

func TestUser_CheckPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Password: string(hashed)}

	assert.True(t, user.CheckPassword("correct-horse"), "правильный пароль")
	assert.False(t, user.CheckPassword("wrong-horse"), "неправильный пароль")
	assert.False(t, user.CheckPassword(""), "пустой пароль")
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}
