package logging

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID returns a context carrying a request-scoped correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation ID stored in ctx, or "" when there is
// none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
