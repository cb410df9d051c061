// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// VisitorIDKey is the context key for the visitor session ID
	VisitorIDKey contextKey = "visitor_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and visitor_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("request_id", requestID)),
		}
	}

	if visitorID, ok := ctx.Value(VisitorIDKey).(string); ok && visitorID != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("visitor_id", visitorID)),
		}
	}

	return newLogger
}

// WithVisitorID returns a logger with the visitor session ID attached.
func (l *Logger) WithVisitorID(visitorID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("visitor_id", visitorID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an HTTP error
func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// SinkUnavailable logs an analytics sink that was skipped because it is not configured
// or not reachable. Diagnostics only, never surfaced to callers.
func (l *Logger) SinkUnavailable(sink, eventName string) {
	l.Debug("sink_unavailable",
		slog.String("sink", sink),
		slog.String("event", eventName),
	)
}

// SinkError logs a dispatch failure for a single sink. The event is dropped
// for that sink only.
func (l *Logger) SinkError(sink, eventName string, err error) {
	l.Warn("sink_error",
		slog.String("sink", sink),
		slog.String("event", eventName),
		slog.String("error", err.Error()),
	)
}

// FunnelTransition logs an accepted funnel state transition.
func (l *Logger) FunnelTransition(sessionID, action string, fromStep, toStep int) {
	l.Info("funnel_transition",
		slog.String("session_id", sessionID),
		slog.String("action", action),
		slog.Int("from_step", fromStep),
		slog.Int("to_step", toStep),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
