package service

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/auth"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (UserService, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", "commerce-api", time.Hour)
	svc := NewUserService(
		repository.NewMemoryUserRepository(),
		auth.NewPasswordHasher(),
		tokens,
		domain.NewValidation(),
		hclog.NewNullLogger(),
	)
	return svc, tokens
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "Passw0rd!",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.NotEqual(t, "Passw0rd!", user.Password, "stored password must be hashed")

	_, err = svc.Register(ctx, registerInput())
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestUserService(t)

	input := registerInput()
	input.Email = "nope"
	input.Password = "weak"

	_, err := svc.Register(context.Background(), input)
	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}

func TestLogin(t *testing.T) {
	svc, tokens := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	token, got, err := svc.Login(ctx, domain.LoginInput{
		Email:    "asha@example.com",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func strptr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	updated, wrote, err := svc.UpdateProfile(ctx, user.ID.Hex(), domain.ProfilePatch{
		Name:    strptr("Asha Rao"),
		Address: strptr("Pune"),
	})
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, "Asha Rao", updated.Name)
	assert.Equal(t, "Pune", updated.Address)
	assert.Equal(t, "asha@example.com", updated.Email, "untouched fields keep their values")
}

func TestUpdateProfilePasswordChangesLogin(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, _, err = svc.UpdateProfile(ctx, user.ID.Hex(), domain.ProfilePatch{
		Password: strptr("N3wSecret!"),
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, domain.LoginInput{
		Email:    "asha@example.com",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	_, _, err = svc.Login(ctx, domain.LoginInput{
		Email:    "asha@example.com",
		Password: "N3wSecret!",
	})
	assert.NoError(t, err)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	tests := []struct {
		name  string
		patch domain.ProfilePatch
	}{
		{"blank name", domain.ProfilePatch{Name: strptr("  ")}},
		{"malformed email", domain.ProfilePatch{Email: strptr("nope")}},
		{"bad phone", domain.ProfilePatch{Phone: strptr("12345")}},
		{"weak password", domain.ProfilePatch{Password: strptr("weak")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, wrote, err := svc.UpdateProfile(ctx, user.ID.Hex(), tc.patch)
			assert.Error(t, err)
			assert.False(t, wrote)
		})
	}

	stored, err := svc.Profile(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Asha", stored.Name, "rejected patches must not mutate the profile")
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	other := registerInput()
	other.Email = "ravi@example.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	_, _, err = svc.UpdateProfile(ctx, user.ID.Hex(), domain.ProfilePatch{
		Email: strptr("ravi@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// keeping the current email is not a conflict
	_, wrote, err := svc.UpdateProfile(ctx, user.ID.Hex(), domain.ProfilePatch{
		Email: strptr("asha@example.com"),
	})
	assert.NoError(t, err)
	assert.True(t, wrote)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, _, err := svc.UpdateProfile(context.Background(),
		"64f7b1c2e4b0a1d2c3b4a5f6", domain.ProfilePatch{Name: strptr("Ghost")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, domain.LoginInput{
		Email:    "asha@example.com",
		Password: "Wrong0ne!",
	})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	_, _, err = svc.Login(ctx, domain.LoginInput{
		Email:    "ghost@example.com",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, domain.ErrWrongPassword,
		"unknown email and wrong password are indistinguishable")
}
