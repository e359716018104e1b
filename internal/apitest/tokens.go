package apitest

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errUnauthorized = errors.New("unauthorized")

type tokenManager struct {
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	issued map[string]struct{}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func newTokenManager(secret []byte, ttl time.Duration) *tokenManager {
	return &tokenManager{secret: secret, ttl: ttl, issued: map[string]struct{}{}}
}

func (m *tokenManager) issue(email string) (string, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.issued[jti] = struct{}{}
	m.mu.Unlock()
	return signed, nil
}

func (m *tokenManager) parse(token string) (string, error) {
	if token == "" {
		return "", errUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", errUnauthorized
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Email == "" {
		return "", errUnauthorized
	}
	m.mu.Lock()
	_, live := m.issued[c.ID]
	m.mu.Unlock()
	if !live {
		return "", errUnauthorized
	}
	return c.Email, nil
}

// revokeAll invalidates every token issued so far.
func (m *tokenManager) revokeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued = map[string]struct{}{}
}
