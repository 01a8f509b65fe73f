package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hostel-shop-api/models"
	"hostel-shop-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityFixture(t *testing.T) (*IdentityService, store.Store, *fakeClock) {
	t.Helper()
	st := newTestStore(t)
	clock := newFakeClock()
	svc := NewIdentityService(st, "test-secret", 7*24*time.Hour)
	svc.now = clock.Now

	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, st.Insert(context.Background(), models.UsersCollection, &models.User{
		ID:           "u1",
		Email:        "admin@teruza.com",
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    clock.Now(),
	}))
	return svc, st, clock
}

func assertAuthKind(t *testing.T, err error, kind AuthErrorKind) {
	t.Helper()
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, kind, authErr.Kind)
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newIdentityFixture(t)

	res, err := svc.Login(context.Background(), "Admin@Teruza.com ", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "u1", res.User.ID)
	assert.True(t, res.User.IsAdmin)

	raw, err := json.Marshal(res.User)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "password_hash")
	assert.Equal(t, "admin@teruza.com", fields["email"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newIdentityFixture(t)

	_, err := svc.Login(context.Background(), "admin@teruza.com", "wrong")
	assertAuthKind(t, err, AuthInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@teruza.com", "password123")
	assertAuthKind(t, err, AuthInvalidCredentials)
}

func TestAuthenticate_ExpiryBoundary(t *testing.T) {
	svc, _, clock := newIdentityFixture(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "admin@teruza.com", "password123")
	require.NoError(t, err)

	clock.Advance(6 * 24 * time.Hour)
	id, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "admin@teruza.com", id.Email)

	clock.Advance(2 * 24 * time.Hour)
	_, err = svc.Authenticate(ctx, res.Token)
	assertAuthKind(t, err, AuthExpired)
}

func TestAuthenticate_Invalid(t *testing.T) {
	svc, st, _ := newIdentityFixture(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "not-a-token")
	assertAuthKind(t, err, AuthInvalid)

	other := NewIdentityService(st, "other-secret", time.Hour)
	forged, err := other.IssueToken(&models.User{ID: "u1", Email: "admin@teruza.com"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assertAuthKind(t, err, AuthInvalid)
}

func TestAuthenticate_UserNotFound(t *testing.T) {
	svc, _, _ := newIdentityFixture(t)

	token, err := svc.IssueToken(&models.User{ID: "ghost", Email: "ghost@teruza.com"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assertAuthKind(t, err, AuthUserNotFound)
}
