package service

import (
	"context"
	"log/slog"
	"net/http"

	"eventadmin/internal/api"
	"eventadmin/internal/auth"
	"eventadmin/internal/logging"
)

// SessionService moves the admin session between unauthenticated and
// authenticated. Verification failures are silent; login failures are
// returned to the caller.
type SessionService struct {
	session *auth.Session
	client  *api.Client
}

// NewSessionService wires a session to the client that carries its token.
// client must have been built with session as its token source.
func NewSessionService(session *auth.Session, client *api.Client) *SessionService {
	return &SessionService{session: session, client: client}
}

func (s *SessionService) Session() *auth.Session { return s.session }

func (s *SessionService) Authenticated() bool { return s.session.Authenticated() }

// CheckSession restores a persisted session. Without a stored token it
// returns false without touching the network. A stored token that the
// service does not verify, for whatever reason, is discarded.
func (s *SessionService) CheckSession(ctx context.Context) bool {
	found, err := s.session.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read stored session", "error", err)
		return false
	}
	if !found {
		slog.DebugContext(ctx, "no stored session")
		return false
	}

	ctx = logging.StartOperation(ctx, "session.verify")
	if err := s.client.Auth.Verify(ctx); err != nil {
		level := slog.LevelDebug
		if !api.IsUnauthorized(err) {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "stored session rejected", "error", err)
		if endErr := s.session.End(ctx); endErr != nil {
			slog.WarnContext(ctx, "failed to discard stored session", "error", endErr)
		}
		logging.Audit(ctx, "session.verify", logging.OutcomeFailure, slog.String("reason", api.ServiceMessage(err)))
		return false
	}
	if err := s.session.Accept(); err != nil {
		return false
	}
	logging.Audit(ctx, "session.verify", logging.OutcomeSuccess)
	return true
}

// Login exchanges credentials for a token and persists it. On failure the
// session is left unauthenticated and no retry is attempted.
func (s *SessionService) Login(ctx context.Context, creds auth.Credentials) error {
	if err := creds.Validate(); err != nil {
		return validationError(err.Error())
	}

	ctx = logging.StartOperation(ctx, "session.login")
	token, err := s.client.Auth.Login(ctx, creds)
	if err != nil {
		logging.Audit(ctx, "session.login", logging.OutcomeFailure,
			slog.String("email", creds.Email),
			slog.String("error", err.Error()),
		)
		return NewError(statusOf(err), CodeLoginFailed, MessageOr(err, "Invalid credentials"))
	}

	if err := s.session.Establish(ctx, token); err != nil {
		slog.ErrorContext(ctx, "failed to persist session", "error", err)
		return NewError(http.StatusInternalServerError, CodeSessionStore, "Failed to save session")
	}
	logging.Audit(ctx, "session.login", logging.OutcomeSuccess, slog.String("email", creds.Email))
	return nil
}

// Logout forgets the token locally. The service is not told.
func (s *SessionService) Logout(ctx context.Context) error {
	ctx = logging.StartOperation(ctx, "session.logout")
	err := s.session.End(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to remove stored session", "error", err)
		logging.Audit(ctx, "session.logout", logging.OutcomeFailure, slog.String("error", err.Error()))
		return NewError(http.StatusInternalServerError, CodeSessionStore, "Failed to clear session")
	}
	logging.Audit(ctx, "session.logout", logging.OutcomeSuccess)
	return nil
}
