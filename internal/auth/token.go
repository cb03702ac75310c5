package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified contents of an access token.
type Claims struct {
	UserID int64
	Email  string
}

// NewAccessToken builds and signs an HS256 JWT carrying the user id as the
// subject and the email as a custom claim.
func NewAccessToken(secret string, userID int64, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry. Every verification failure
// (expired, malformed, wrong signature, wrong algorithm) collapses into
// ErrInvalidToken so callers cannot distinguish them.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, ok := mc["sub"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	return Claims{UserID: int64(sub), Email: email}, nil
}
