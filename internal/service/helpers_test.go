package service_test

import (
	"context"
	"testing"

	"eventadmin/internal/api"
	"eventadmin/internal/apitest"
	"eventadmin/internal/auth"
	"eventadmin/internal/config"
	"eventadmin/internal/storage"
)

type fixture struct {
	srv     *apitest.Server
	store   *storage.MemoryStorage
	session *auth.Session
	client  *api.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New(t)
	store := storage.NewMemoryStorage()
	session := auth.NewSession(store, config.DefaultTokenKey)
	return &fixture{
		srv:     srv,
		store:   store,
		session: session,
		client:  api.NewClient(srv.URL, session, api.Options{}),
	}
}

// loggedIn returns a fixture whose session holds an accepted token.
func loggedIn(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	if err := f.session.Establish(context.Background(), f.srv.IssueToken(t)); err != nil {
		t.Fatalf("establish session: %v", err)
	}
	return f
}

func adminCreds() auth.Credentials {
	return auth.Credentials{Email: apitest.AdminEmail, Password: apitest.AdminPassword}
}
