package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
	"github.com/N30R4BB1t/login-register/internal/core/ports"
)

// dummyHash is a syntactically valid bcrypt digest compared against when a
// login names an unknown email, so that path costs roughly the same as a
// real verification. The comparison result is discarded.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService orchestrates the hasher, the store, and the token manager to
// implement registration, login, and the authenticated CRUD surface.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenManager
	cache  ports.UserCache
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager, cache ports.UserCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens, cache: cache, log: log}
}

// Register creates an account and returns the stored record (without the
// hash) together with a freshly issued session token. Duplicate emails are
// reported by the store, not pre-checked here; the engine's constraint is
// what closes the race between concurrent registrations.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, "", fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}
	created.PasswordHash = ""

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login verifies the credentials and issues a session token. An unknown
// email and a wrong password produce the same error value; the dummy
// comparison keeps the two paths from being distinguishable by timing.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, dummyHash)
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	user.PasswordHash = ""
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// List returns all users ordered by id ascending, without hashes.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Get returns a single user by id, consulting the cache first when one is
// configured. Cache failures degrade to a store read.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.log.Debug().Err(err).Str("user_id", id).Msg("user cache read failed")
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Debug().Err(err).Str("user_id", id).Msg("user cache write failed")
		}
	}
	return user, nil
}

// Update changes name and email. The password is not mutable through this
// path and the current password is not re-checked.
func (s *UserService) Update(ctx context.Context, id, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	user, err := s.repo.Update(ctx, id, name, email)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return user, nil
}

// Delete removes the record permanently. There is no soft-delete and ids
// are never reused.
func (s *UserService) Delete(ctx context.Context, id string) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrUserNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Debug().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
