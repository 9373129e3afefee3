package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleHost  = "host"
	RoleGuest = "guest"

	audience = "staycheck-api"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role       string `json:"role"`
	Scope      string `json:"scope"`
	Email      string `json:"email,omitempty"`
	MagicToken string `json:"mt,omitempty"`
	jwt.RegisteredClaims
}

func newToken(subject string, claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Audience:  []string{audience},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// NewHostSession signs an admin session for the property host.
func NewHostSession(email, secret string, ttl time.Duration) (string, error) {
	return newToken(email, Claims{
		Role:  RoleHost,
		Scope: "properties:write guests:write questions:write pages:write",
		Email: email,
	}, secret, ttl)
}

// NewGuestSession wraps a guest's opaque magic token in a signed, expiring
// capability. The magic token is carried so the resolver can run unchanged.
func NewGuestSession(guestID, magicToken, secret string, ttl time.Duration) (string, error) {
	return newToken(guestID, Claims{
		Role:       RoleGuest,
		Scope:      "checkin:read checkin:write",
		MagicToken: magicToken,
	}, secret, ttl)
}

func Parse(tokenString, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
	)
	if err != nil {
		return nil, err
	}
	if claims, ok := tok.Claims.(*Claims); ok && tok.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
