package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjh/spacebook/internal/repository"
	"github.com/kjh/spacebook/internal/utils"
)

func strptr(s string) *string { return &s }

func TestUpdateProfilePasswordRules(t *testing.T) {
	user := activeUser(t, 9, "kim@example.com", "hunter2hunter2")

	t.Run("only one half of the password pair", func(t *testing.T) {
		svc := NewUserService(newFakeUsers(user), 4)
		_, err := svc.UpdateProfile(context.Background(), 9, nil, strptr("hunter2hunter2"), nil)
		assert.ErrorIs(t, err, repository.ErrPasswordChangeIncomplete)
		_, err = svc.UpdateProfile(context.Background(), 9, nil, nil, strptr("new-password-1"))
		assert.ErrorIs(t, err, repository.ErrPasswordChangeIncomplete)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc := NewUserService(newFakeUsers(user), 4)
		_, err := svc.UpdateProfile(context.Background(), 9, nil, strptr("wrong"), strptr("new-password-1"))
		assert.ErrorIs(t, err, repository.ErrInvalidPassword)
	})

	t.Run("new password equal to current", func(t *testing.T) {
		svc := NewUserService(newFakeUsers(user), 4)
		_, err := svc.UpdateProfile(context.Background(), 9, nil, strptr("hunter2hunter2"), strptr("hunter2hunter2"))
		assert.ErrorIs(t, err, repository.ErrSamePassword)
	})

	t.Run("valid change rehashes the credential", func(t *testing.T) {
		users := newFakeUsers(user)
		svc := NewUserService(users, 4)
		_, err := svc.UpdateProfile(context.Background(), 9, nil, strptr("hunter2hunter2"), strptr("new-password-1"))
		require.NoError(t, err)
		assert.True(t, utils.VerifyPassword(users.byID[9].PasswordHash, "new-password-1"))
	})
}

func TestUpdateProfilePhoneOnly(t *testing.T) {
	user := activeUser(t, 9, "kim@example.com", "hunter2hunter2")
	users := newFakeUsers(user)
	svc := NewUserService(users, 4)

	got, err := svc.UpdateProfile(context.Background(), 9, strptr("010-1234-5678"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "010-1234-5678", got.PhoneNumber)
	assert.Equal(t, "010-1234-5678", users.byID[9].PhoneNumber)
}
