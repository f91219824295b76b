package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
)

// Claims carries the token subject alongside the registered claim set.
// The user id travels in the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWTManager issues and validates HS256-signed session tokens. The secret is
// process-wide, loaded once at startup, and never rotated at runtime.
type JWTManager struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWTManager(secret string, tokenTTL time.Duration) *JWTManager {
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), tokenTTL: tokenTTL}
}

func (m *JWTManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
		Email: user.Email,
	})
	return token.SignedString(m.secret)
}

// Validate checks signature and expiry only; tokens are never looked up in
// server-side state. ErrTokenExpired is kept separate from ErrTokenInvalid
// for diagnostics, but both mean "unauthenticated" to clients.
func (m *JWTManager) Validate(tokenString string) (*domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
