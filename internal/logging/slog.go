package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts *slog.Logger to the Logger interface. When the context
// carries a request ID (see WithRequestID), every record gets a request_id
// attribute, so lines emitted anywhere under one request correlate without
// call sites threading the ID through.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if id := RequestID(ctx); id != "" {
		args = append(args[:len(args):len(args)], "request_id", id)
	}
	s.l.Log(ctx, level, msg, args...)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
