// Package utils holds small helpers shared between the note server and the
// client: context keys for the authenticated user, password hashing, JSON
// response writing, and JWT issuance.
package utils

import (
	"context"
)

// contextKey keeps context values private to this package so other
// packages cannot collide with string keys.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated note owner's ID in the request
// context. The auth middleware writes it after validating the token and
// handlers read it back via GetUserIDFromContext:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext returns the note owner's ID previously stored under
// UserIDCtxKey. ok is false when the value is absent or is not an int64,
// which means the request never passed the auth middleware.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
