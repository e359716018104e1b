package api

import (
	"context"
	"net/http"
	"strings"

	"eventadmin/internal/auth"
)

type AuthClient struct {
	http *httpClient
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *AuthClient) Login(ctx context.Context, creds auth.Credentials) (string, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	req, err := jsonRequest("auth.login", http.MethodPost, "/api/auth/login", creds)
	if err != nil {
		return "", err
	}
	var resp loginResponse
	if err := c.http.do(ctx, req, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return "", &Error{Kind: KindDecode, Op: "auth.login", Status: http.StatusOK, Err: auth.ErrNoToken}
	}
	return resp.Token, nil
}

// Verify asks the service whether the session token is still valid.
func (c *AuthClient) Verify(ctx context.Context) error {
	return c.http.do(ctx, request{op: "auth.verify", method: http.MethodGet, path: "/api/auth/verify"}, nil)
}
