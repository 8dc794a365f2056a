// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, trace ID generation,
// and JWT session token handling for the vault guard.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionIDCtxKey is the key used to store the unlock-session identifier
// in the context. Used together with GetSessionIDFromContext for type-safe
// retrieval from context.Context.
var SessionIDCtxKey = contextKey("sessionID")

// TraceIDCtxKey is the key used to store the request trace identifier in
// the context.
var TraceIDCtxKey = contextKey("traceID")

// GetSessionIDFromContext retrieves the unlock-session identifier from the
// context.
//
// Returns the session ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}

// GetTraceIDFromContext retrieves the request trace identifier from the
// context.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok
}
