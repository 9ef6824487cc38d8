package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/domilony/leadgen/internal/config"
	"github.com/domilony/leadgen/internal/domain/admin"
)

// SessionCookie carries the admin session token for browser-rendered pages.
// API-style calls send the same token as an Authorization bearer value.
const SessionCookie = "admin_token"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies admin session tokens. It is built once from
// the config; keeping the signing secret private is a deployment concern.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
	}
}

// TTL reports the session lifetime, used for the cookie max-age.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

func (tm *TokenManager) Generate(a admin.AdminUser) (string, error) {
	now := time.Now()
	claims := &Claims{
		AdminID:  a.ID,
		Username: a.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tm.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Explicitly enforce expiration to avoid lax parser behavior
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
