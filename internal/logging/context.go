package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID identifies one CLI invocation or kiosk login session.
	FieldSessionID = "session_id"
	// FieldInstructor is the standardized key for instructor profile names.
	FieldInstructor = "instructor"
	// FieldProgram is the standardized key for program names.
	FieldProgram = "program"
	// FieldStation is the standardized key for station names.
	FieldStation = "station"
	// FieldPath is the standardized key for 4-segment media paths.
	FieldPath = "path"
)

type contextKey int

const (
	sessionKey contextKey = iota
	instructorKey
	programKey
)

// WithSession tags ctx with a session identifier.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// SessionFromContext returns the session identifier stored in ctx, if any.
func SessionFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

// WithInstructor tags ctx with the instructor being served.
func WithInstructor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, instructorKey, name)
}

// WithProgram tags ctx with the program being served.
func WithProgram(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, programKey, name)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := SessionFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	if name, ok := ctx.Value(instructorKey).(string); ok && name != "" {
		fields = append(fields, slog.String(FieldInstructor, name))
	}
	if name, ok := ctx.Value(programKey).(string); ok && name != "" {
		fields = append(fields, slog.String(FieldProgram, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
