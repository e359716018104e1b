package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Outcome is the result recorded on an audit entry.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// StartOperation tags ctx with a fresh request id for one operator action.
// Every API call made with the returned ctx sends that id, and the audit
// entry for the action carries it too.
func StartOperation(ctx context.Context, event string) context.Context {
	return WithOperation(ctx, uuid.NewString(), event)
}

// Audit records an operator action. Failures are logged at warn.
func Audit(ctx context.Context, event string, outcome Outcome, attrs ...slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelInfo
	if outcome != OutcomeSuccess {
		level = slog.LevelWarn
	}
	all := make([]slog.Attr, 0, 3+len(attrs)+2)
	all = append(all,
		slog.String("type", "audit"),
		slog.String("event", event),
		slog.String("outcome", string(outcome)),
	)
	all = append(all, OperationAttrs(ctx)...)
	all = append(all, attrs...)
	slog.LogAttrs(ctx, level, "audit "+event, all...)
}
