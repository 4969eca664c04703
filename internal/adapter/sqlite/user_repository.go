package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: UserRepository implements domain.UserRepository.
var _ domain.UserRepository = (*UserRepository)(nil)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.EmailConflictError{Email: u.Email}
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at
		 FROM users WHERE id = ?`, id,
	))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at
		 FROM users WHERE email = ?`, email,
	))
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var createdAt string

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("scanning user: %w", err)
	}

	u.CreatedAt = parseTime(createdAt)
	return u, nil
}
