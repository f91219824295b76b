package ports

import (
	"context"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
)

// UserRepository defines the persistence contract for account records.
//
// Uniqueness of email is enforced atomically by the storage engine itself
// (unique constraint or unique index), never by a read-then-write check:
// Create and Update return domain.ErrEmailTaken on a collision even under
// concurrent calls. FindByEmail is the only lookup that returns the stored
// password hash; every other read omits it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id, name, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
