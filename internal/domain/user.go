package domain

import "time"

// User is a registered marketplace member.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a user with an already hashed password.
func NewUser(id, name, email, passwordHash string) User {
	return User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Session is the result of a successful login, registration or refresh.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
}
