package domain

import "errors"

var (
	// ErrValidation marks malformed input, e.g. an empty password.
	ErrValidation = errors.New("invalid input")

	// ErrEmailTaken is raised when a create or update would violate the
	// email uniqueness constraint. The classification happens once, at the
	// storage boundary; nothing above it inspects engine error codes.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials covers both "no such email" and "wrong
	// password". The two cases share one error and one message so login
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid and ErrTokenExpired both surface to clients as
	// "unauthenticated"; the distinction exists for diagnostics only.
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrUserNotFound = errors.New("user not found")

	// ErrStorage is the match target for unexpected persistence failures.
	// Concrete failures are carried by StorageError so the cause survives
	// for logging.
	ErrStorage = errors.New("storage failure")
)

// StorageError wraps an infrastructure failure that is neither "not found"
// nor a uniqueness violation. It satisfies errors.Is(err, ErrStorage) and
// keeps the underlying cause reachable through Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
