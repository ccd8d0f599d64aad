package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by InspectToken for opaque tokens.
var ErrNotJWT = errors.New("token is not a JWT")

// TokenInfo holds the registered claims the bridge cares about.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is not after now.
// Tokens without an exp claim never expire.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying its signature.
//
// The bridge does not own the signing key of the Klokku server, so the
// result is only used to reject tokens that are known to be stale before a
// request is sent. Returns ErrNotJWT when raw is not a three-part JWT.
func InspectToken(raw string) (TokenInfo, error) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return TokenInfo{}, ErrNotJWT
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("error parsing token claims: %w", err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, nil
}
