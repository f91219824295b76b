package ports

import (
	"context"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
)

// UserCache is an optional read-through cache for lookups by id. A miss is
// (nil, nil). Cached entries never contain password hashes. Implementations
// are best-effort: callers treat errors as misses.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}
