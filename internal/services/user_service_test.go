package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/justsurfingit/job-tracker-api/internal/auth"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingIssuer struct{}

func (failingIssuer) Issue(uint) (string, time.Time, error) {
	return "", time.Time{}, errors.New("signer offline")
}

func newUserService() (*UserService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("user-service-test-secret", "job-tracker-api", time.Hour)
	return NewUserService(testhelpers.NewUserStore(), tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &dtos.RegisterRequest{Email: " Jane@Example.com ", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	resp, err := svc.Login(ctx, &dtos.LoginRequest{Email: "JANE@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)

	id, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  dtos.RegisterRequest
	}{
		{"bad email", dtos.RegisterRequest{Email: "not-an-email", Password: "longenough"}},
		{"display name", dtos.RegisterRequest{Email: "Jane <jane@example.com>", Password: "longenough"}},
		{"short password", dtos.RegisterRequest{Email: "a@example.com", Password: "short"}},
		{"long password", dtos.RegisterRequest{Email: "a@example.com", Password: string(make([]byte, 73))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tt.req)
			assertKind(t, KindInvalidArgument, err)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dtos.RegisterRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dtos.RegisterRequest{Email: "A@example.com", Password: "password2"})
	assertKind(t, KindConflict, err)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dtos.RegisterRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, &dtos.LoginRequest{Email: "a@example.com", Password: "password2"})
	assertKind(t, KindUnauthenticated, wrongPassword)

	_, unknown := svc.Login(ctx, &dtos.LoginRequest{Email: "b@example.com", Password: "password1"})
	assertKind(t, KindUnauthenticated, unknown)

	assert.Equal(t, wrongPassword.Error(), unknown.Error())
}

func TestLoginInternalFailures(t *testing.T) {
	store := testhelpers.NewUserStore()
	svc := NewUserService(store, failingIssuer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, &dtos.RegisterRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dtos.LoginRequest{Email: "a@example.com", Password: "password1"})
	assertKind(t, KindInternal, err)

	store.Err = testhelpers.ErrStorage
	_, err = svc.Login(ctx, &dtos.LoginRequest{Email: "a@example.com", Password: "password1"})
	assertKind(t, KindInternal, err)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, "NotFound", KindNotFound.String())

	wrapped := Internal(testhelpers.ErrStorage)
	assert.ErrorIs(t, wrapped, testhelpers.ErrStorage)
	assert.Equal(t, "Server error", wrapped.Message)
}
