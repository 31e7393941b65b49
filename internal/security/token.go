package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a jwt")

// AccessClaims are the fields the backend puts in admin access tokens.
type AccessClaims struct {
	AdminID string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// InspectAccessToken decodes the claims without checking the signature.
// The admin client never holds the signing secret; validity is decided by
// the backend when the profile is fetched.
func InspectAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}
	return claims, nil
}

// ExpiresIn is the time left before exp; zero when expired and false when
// the token carries no exp claim.
func (c *AccessClaims) ExpiresIn(now time.Time) (time.Duration, bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	left := c.ExpiresAt.Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}
