package logging

import (
	"context"
	"log/slog"
	"strings"
)

type operationInfo struct {
	requestID string
	operation string
}

type operationInfoKey struct{}

// WithOperation stores the outbound request id and the logical operation
// (for example "bookings.list") in ctx so audit and access logs can be joined.
func WithOperation(ctx context.Context, requestID, operation string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	info := operationInfo{
		requestID: strings.TrimSpace(requestID),
		operation: strings.TrimSpace(operation),
	}
	return context.WithValue(ctx, operationInfoKey{}, info)
}

// RequestID returns the request id stored by WithOperation, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	info, _ := ctx.Value(operationInfoKey{}).(operationInfo)
	return info.requestID
}

// OperationAttrs returns slog attributes for the stored operation metadata.
func OperationAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	info, ok := ctx.Value(operationInfoKey{}).(operationInfo)
	if !ok {
		return nil
	}
	attrs := make([]slog.Attr, 0, 2)
	if info.requestID != "" {
		attrs = append(attrs, slog.String("request_id", info.requestID))
	}
	if info.operation != "" {
		attrs = append(attrs, slog.String("operation", info.operation))
	}
	return attrs
}
