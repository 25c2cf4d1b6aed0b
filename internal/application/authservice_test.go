package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/jobtracker/internal/application"
)

var testSecret = []byte("test-session-secret")

type authFixture struct {
	svc      *application.AuthService
	users    *fakeUserStore
	sessions *fakeSessionStore
	clock    *stubClock
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	f := authFixture{
		users:    newFakeUserStore(),
		sessions: newFakeSessionStore(),
		clock:    newStubClock(),
	}
	f.svc = application.NewAuthService(f.users, f.sessions, testSecret, time.Hour, f.clock, &stubIDs{})

	created, err := f.svc.EnsureUser(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	require.True(t, created)

	return f
}

func TestAuthService_EnsureUser(t *testing.T) {
	f := newAuthFixture(t)

	stored := f.users.users["admin"]
	assert.NotEqual(t, "s3cret", stored.PasswordHash, "password is stored hashed")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))

	created, err := f.svc.EnsureUser(context.Background(), "admin", "other")
	require.NoError(t, err)
	assert.False(t, created, "existing credential is left untouched")
	assert.Equal(t, stored.PasswordHash, f.users.users["admin"].PasswordHash)
}

func TestAuthService_EnsureUser_StoreError(t *testing.T) {
	users := newFakeUserStore()
	users.getErr = errors.New("database is locked")
	svc := application.NewAuthService(users, newFakeSessionStore(), testSecret, time.Hour, newStubClock(), &stubIDs{})

	_, err := svc.EnsureUser(context.Background(), "admin", "admin")
	assert.ErrorIs(t, err, users.getErr)
}

func TestAuthService_Verify(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "admin", password: "s3cret"},
		{name: "wrong password", username: "admin", password: "wrong", wantErr: application.ErrInvalidCredentials},
		{name: "unknown user", username: "nobody", password: "s3cret", wantErr: application.ErrInvalidCredentials},
		{name: "username is case-sensitive", username: "Admin", password: "s3cret", wantErr: application.ErrInvalidCredentials},
		{name: "empty", username: "", password: "", wantErr: application.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := f.svc.Verify(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", user.Username)
		})
	}
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "session-1", session.Identity.SessionID)
	assert.Equal(t, f.clock.Now().Add(time.Hour), session.Identity.ExpiresAt)

	identity, err := f.svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Identity.UserID, identity.UserID)
	assert.Equal(t, "admin", identity.Username)
	assert.Equal(t, "session-1", identity.SessionID)
	assert.True(t, session.Identity.ExpiresAt.Equal(identity.ExpiresAt))
}

func TestAuthService_Login_Invalid(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestAuthService_Authenticate_Rejects(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "session-x",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(f.clock.Now().Add(time.Hour)),
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:      "session-y",
		Subject: "1",
	}).SignedString(testSecret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ID:        "session-z",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(f.clock.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "tampered", token: session.Token + "x"},
		{name: "foreign key", token: foreign},
		{name: "no expiry", token: noExpiry},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Authenticate(ctx, tt.token)
			assert.ErrorIs(t, err, application.ErrUnauthenticated)
		})
	}
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)

	_, err = f.svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, application.ErrUnauthenticated)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	other, err := f.svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, session.Token))
	assert.Contains(t, f.sessions.revoked, "session-1")
	assert.Equal(t, 1, f.sessions.pruned)

	_, err = f.svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, application.ErrUnauthenticated, "revoked token cannot be reused")

	_, err = f.svc.Authenticate(ctx, other.Token)
	assert.NoError(t, err, "other sessions stay valid")
}

func TestAuthService_Logout_IgnoresInvalidTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Logout(ctx, ""))
	require.NoError(t, f.svc.Logout(ctx, "garbage"))
	assert.Empty(t, f.sessions.revoked)

	session, err := f.svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)

	require.NoError(t, f.svc.Logout(ctx, session.Token))
	assert.Empty(t, f.sessions.revoked, "expired tokens need no revocation")
}
