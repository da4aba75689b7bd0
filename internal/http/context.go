package http

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	loggerContextKey       contextKey = "logger"
	departmentIDContextKey contextKey = "department_id"
	eventIDContextKey      contextKey = "event_id"
)

// ContextWithLogger returns a derived context carrying a request-scoped logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// LoggerFromContext extracts a request-scoped logger from context if available.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerContextKey).(*slog.Logger)
	return logger
}

// ContextWithDepartmentID injects the department identifier resolved from the request path.
func ContextWithDepartmentID(ctx context.Context, departmentID string) context.Context {
	return context.WithValue(ctx, departmentIDContextKey, departmentID)
}

// DepartmentIDFromContext extracts a department identifier previously associated with the context.
func DepartmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(departmentIDContextKey).(string)
	return id, ok
}

// ContextWithEventID injects the event identifier resolved from the request path.
func ContextWithEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, eventIDContextKey, eventID)
}

// EventIDFromContext extracts an event identifier previously associated with the context.
func EventIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(eventIDContextKey).(string)
	return id, ok
}
