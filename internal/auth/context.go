package auth

import "context"

type userKey struct{}

// WithUserID attaches the authenticated user id to ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the authenticated user id, or "" for anonymous calls.
func UserID(ctx context.Context) string {
	if val, ok := ctx.Value(userKey{}).(string); ok {
		return val
	}
	return ""
}

// UserIDPtr is UserID shaped for nullable audit columns.
func UserIDPtr(ctx context.Context) *string {
	id := UserID(ctx)
	if id == "" {
		return nil
	}
	return &id
}
