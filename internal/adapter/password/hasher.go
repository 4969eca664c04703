package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: Hasher implements domain.PasswordHasher.
var _ domain.PasswordHasher = (*Hasher)(nil)

// DefaultCost matches the bcrypt work factor used for stored accounts.
const DefaultCost = 10

// Hasher hashes passwords with bcrypt.
type Hasher struct {
	cost int
}

// New creates a hasher. Costs outside bcrypt's range fall back to DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// MaxBytes is bcrypt's input limit. It counts bytes, not characters.
const MaxBytes = 72

// Hash returns a bcrypt hash of password. Passwords longer than MaxBytes
// are rejected with a *domain.InvalidOperationError.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > MaxBytes {
		return "", &domain.InvalidOperationError{Reason: fmt.Sprintf("password must be at most %d bytes", MaxBytes)}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Compare returns domain.ErrInvalidCredentials when password does not match hash.
func (h *Hasher) Compare(hash, password string) error {
	if len(password) > MaxBytes {
		return domain.ErrInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("bcrypt: %w", err)
	}
	return nil
}
