package ports

import "github.com/N30R4BB1t/login-register/internal/core/domain"

// PasswordHasher one-way transforms a plaintext secret into a storable hash.
type PasswordHasher interface {
	// Hash fails only on malformed input (empty plaintext).
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hashed. A syntactically
	// invalid stored hash is treated as "no match", never as an error.
	Verify(plaintext, hashed string) bool
}

// TokenManager mints and validates the bearer tokens that gate every
// authenticated operation. Validation is a pure function of the token bytes,
// the signing secret, and the current time; no server-side state is
// consulted, so a token cannot be revoked before its natural expiry.
type TokenManager interface {
	Issue(user *domain.User) (string, error)
	Validate(token string) (*domain.Identity, error)
}
