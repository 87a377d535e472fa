package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the token fields this client reads.
type Claims struct {
	Subject   string
	SchoolID  int64
	ExpiresAt time.Time
}

// DecodeClaims parses the token without verifying its signature and extracts
// the claims the UI needs (who is signed in, for which school, until when).
func DecodeClaims(tokenString string) (*Claims, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if schoolID, ok := mapClaims["school_id"].(float64); ok {
		claims.SchoolID = int64(schoolID)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}

// Valid reports whether the claims are usable at the given time. Tokens
// without an exp claim never expire client side.
func (c *Claims) Valid(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(c.ExpiresAt)
}
