package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"eventadmin/internal/auth"
	"eventadmin/internal/config"
	"eventadmin/internal/service"
	"eventadmin/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSession_NoStoredTokenMakesNoRequest(t *testing.T) {
	f := newFixture(t)
	svc := service.NewSessionService(f.session, f.client)

	if svc.CheckSession(context.Background()) {
		t.Fatalf("expected unauthenticated without a stored token")
	}
	if n := f.srv.TotalHits(); n != 0 {
		t.Fatalf("expected no network calls, got %d (%v)", n, f.srv.Routes())
	}
}

func TestCheckSession_ValidStoredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, config.DefaultTokenKey, f.srv.IssueToken(t)))

	svc := service.NewSessionService(f.session, f.client)
	require.True(t, svc.CheckSession(ctx))
	assert.True(t, svc.Authenticated())
	assert.Equal(t, 1, f.srv.Hits("GET /api/auth/verify"))
}

func TestCheckSession_RejectedTokenIsDiscarded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, config.DefaultTokenKey, f.srv.IssueToken(t)))
	f.srv.RevokeTokens()

	svc := service.NewSessionService(f.session, f.client)
	require.False(t, svc.CheckSession(ctx))
	assert.False(t, svc.Authenticated())
	assert.Empty(t, f.session.Token())

	_, err := f.store.Get(ctx, config.DefaultTokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCheckSession_TransportFailureDemotesSilently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, config.DefaultTokenKey, f.srv.IssueToken(t)))
	f.srv.Close()

	svc := service.NewSessionService(f.session, f.client)
	assert.False(t, svc.CheckSession(ctx))
	_, err := f.store.Get(ctx, config.DefaultTokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogin_PersistsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := service.NewSessionService(f.session, f.client)

	require.NoError(t, svc.Login(ctx, adminCreds()))
	assert.True(t, svc.Authenticated())

	stored, err := f.store.Get(ctx, config.DefaultTokenKey)
	require.NoError(t, err)
	assert.Equal(t, f.session.Token(), stored)
}

func TestLogin_WrongPasswordSurfacesServiceMessage(t *testing.T) {
	f := newFixture(t)
	svc := service.NewSessionService(f.session, f.client)

	err := svc.Login(context.Background(), auth.Credentials{Email: "admin@events.com", Password: "nope"})
	var svcErr *service.Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusUnauthorized, svcErr.Status)
	assert.Equal(t, "Invalid credentials", svcErr.Message)
	assert.False(t, svc.Authenticated())
	assert.Equal(t, 1, f.srv.Hits("POST /api/auth/login"), "no automatic retry")
}

func TestLogin_FallbackMessageWhenServiceSaysNothing(t *testing.T) {
	f := newFixture(t)
	f.srv.Close()
	svc := service.NewSessionService(f.session, f.client)

	err := svc.Login(context.Background(), adminCreds())
	var svcErr *service.Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Invalid credentials", svcErr.Message)
	assert.Equal(t, http.StatusBadGateway, svcErr.Status)
}

func TestLogin_InvalidInputIsRejectedLocally(t *testing.T) {
	f := newFixture(t)
	svc := service.NewSessionService(f.session, f.client)

	err := svc.Login(context.Background(), auth.Credentials{Email: "not-an-email", Password: "x"})
	var svcErr *service.Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, service.CodeValidation, svcErr.Code)
	assert.Zero(t, f.srv.TotalHits())
}

func TestLogout_ClearsStoredToken(t *testing.T) {
	f := loggedIn(t)
	ctx := context.Background()
	svc := service.NewSessionService(f.session, f.client)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.Authenticated())
	_, err := f.store.Get(ctx, config.DefaultTokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Zero(t, f.srv.TotalHits(), "logout is local only")
}
