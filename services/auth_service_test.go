package services

import (
	"testing"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)

	result, err := svc.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct-horse-battery",
		FullName: "Alice Example",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEqual(t, "correct-horse-battery", result.User.Password)

	claims, err := utils.ParseJWT(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])
}

func TestRegisterDuplicateEmailAndUsername(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "alice")
	svc := NewAuthService(db)

	_, err := svc.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(RegisterInput{
		Email:    "alice2@example.com",
		Username: "alice",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginByEmailOrUsername(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "alice")
	svc := NewAuthService(db)

	result, err := svc.Login(LoginInput{Identifier: "alice@example.com", Password: "hunter2-hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	result, err = svc.Login(LoginInput{Identifier: "alice", Password: "hunter2-hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	svc := NewAuthService(db)

	_, err := svc.Login(LoginInput{Identifier: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Identifier: "nobody", Password: "hunter2-hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// deactivated accounts cannot log in
	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	_, err = svc.Login(LoginInput{Identifier: "alice", Password: "hunter2-hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPasswordFlow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	svc := NewAuthService(db)

	exp := time.Now().Add(10 * time.Minute)
	require.NoError(t, db.Model(user).Updates(map[string]any{
		"reset_token":     "CODE1234",
		"reset_token_exp": exp,
	}).Error)

	err := svc.ResetPassword(ResetPasswordInput{
		Email:       "alice@example.com",
		Token:       "WRONG",
		NewPassword: "new-password-123",
	})
	assert.ErrorIs(t, err, ErrResetTokenInvalid)

	err = svc.ResetPassword(ResetPasswordInput{
		Email:       "alice@example.com",
		Token:       "CODE1234",
		NewPassword: "new-password-123",
	})
	require.NoError(t, err)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Empty(t, fresh.ResetToken)
	assert.True(t, utils.CheckPasswordHash("new-password-123", fresh.Password))

	// the code is single use
	err = svc.ResetPassword(ResetPasswordInput{
		Email:       "alice@example.com",
		Token:       "CODE1234",
		NewPassword: "another-password",
	})
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	svc := NewAuthService(db)

	exp := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(user).Updates(map[string]any{
		"reset_token":     "CODE1234",
		"reset_token_exp": exp,
	}).Error)

	err := svc.ResetPassword(ResetPasswordInput{
		Email:       "alice@example.com",
		Token:       "CODE1234",
		NewPassword: "new-password-123",
	})
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}
