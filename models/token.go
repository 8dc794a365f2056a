package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps an unlock-session JWT with convenience accessors.
//
// The guard mints a session token after a successful unseal; subsequent
// lifecycle calls (seal, password change) present it as a bearer token.
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in the Authorization header.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the host process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// GetSessionID extracts the unlock-session identifier from the token's
// "sub" (subject) claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetSessionID() (string, error) {
	sessionID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting session ID from token: %w", err)
	}
	if sessionID == "" {
		return "", fmt.Errorf("empty session ID in token subject")
	}

	return sessionID, nil
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
