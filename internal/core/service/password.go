package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
)

// BcryptHasher hashes passwords with bcrypt. The cost factor is tunable so
// the work factor can be raised as hardware improves.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hashed. bcrypt's comparison is
// constant-time over the digest, and a malformed stored hash simply yields
// an error here, reported as "no match".
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
