package ports

import (
	"context"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
)

// UserService is the application surface consumed by the HTTP layer.
// Returned users never carry a password hash.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id, name, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
