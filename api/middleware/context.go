package middleware

import "context"

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRequestID contextKey = "request_id"
)

// UserIDFromContext returns the cart owner seeded by Auth, or "".
func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxUserID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxRequestID)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
