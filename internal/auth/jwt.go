// Package auth issues and verifies the bearer tokens carried by API requests,
// and hashes account passwords.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gdys/internal/store"
)

// Claims is the token payload. Role and VesselID drive authorization: a token
// with an empty VesselID and a fleet-wide role sees every vessel.
type Claims struct {
	Role     string `json:"role"`
	VesselID string `json:"vesselId,omitempty"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken generates an HS256 JWT for the given user.
func IssueToken(secret string, u *store.User, ttl time.Duration) (token string, expiresAt time.Time, err error) {
	if u.ID == "" {
		return "", time.Time{}, fmt.Errorf("user id is empty")
	}
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	expiresAt = now.Add(ttl)

	c := Claims{
		Role:     string(u.Role),
		VesselID: u.VesselID,
		Name:     u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    "gdys",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyToken parses and validates a token, returning its claims.
func VerifyToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
