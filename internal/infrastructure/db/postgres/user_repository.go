package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/lib/pq"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
	"github.com/N30R4BB1t/login-register/internal/core/ports"
)

// uniqueViolation is PostgreSQL's error code for a unique constraint breach.
// It is inspected here and nowhere else; the rest of the system sees
// domain.ErrEmailTaken.
const uniqueViolation = "23505"

// UserRepository persists users in PostgreSQL. Email uniqueness comes from
// the UNIQUE constraint on the users table, so concurrent creates of the
// same email resolve atomically inside the engine.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureSchema creates the users table if it does not exist yet. BIGSERIAL
// ids are monotonically assigned and never reused after deletion.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return domain.NewStorageError("ensure users schema", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`

	created := &domain.User{Name: user.Name, Email: user.Email}
	var id int64
	err := r.db.QueryRowContext(ctx, q, user.Name, user.Email, user.PasswordHash).
		Scan(&id, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.NewStorageError("insert user", err)
	}
	created.ID = strconv.FormatInt(id, 10)
	return created, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT id, name, email, created_at FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.NewStorageError("list users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		var id int64
		if err := rows.Scan(&id, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, domain.NewStorageError("scan user", err)
		}
		u.ID = strconv.FormatInt(id, 10)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list users", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	const q = `SELECT id, name, email, created_at FROM users WHERE id = $1`

	var u domain.User
	var dbID int64
	err = r.db.QueryRowContext(ctx, q, numID).Scan(&dbID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("find user by id", err)
	}
	u.ID = strconv.FormatInt(dbID, 10)
	return &u, nil
}

// FindByEmail is the only lookup that returns the password hash; it exists
// for login verification.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`

	var u domain.User
	var id int64
	err := r.db.QueryRowContext(ctx, q, email).Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("find user by email", err)
	}
	u.ID = strconv.FormatInt(id, 10)
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, id, name, email string) (*domain.User, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	const q = `
		UPDATE users SET name = $1, email = $2
		WHERE id = $3
		RETURNING id, name, email, created_at`

	var u domain.User
	var dbID int64
	err = r.db.QueryRowContext(ctx, q, name, email, numID).
		Scan(&dbID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.NewStorageError("update user", err)
	}
	u.ID = strconv.FormatInt(dbID, 10)
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	numID, err := parseID(id)
	if err != nil {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, numID)
	if err != nil {
		return false, domain.NewStorageError("delete user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, domain.NewStorageError("delete user", err)
	}
	return affected > 0, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// compile-time interface check
var _ ports.UserRepository = (*UserRepository)(nil)
