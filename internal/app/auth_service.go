package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// AuthService handles registration, login and token rotation.
type AuthService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	tokens domain.TokenIssuer
}

func NewAuthService(users domain.UserRepository, hasher domain.PasswordHasher, tokens domain.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.Session{}, &domain.InvalidOperationError{Reason: "email and password are required"}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.Session{}, &domain.EmailConflictError{Email: email}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Session{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("hashing password: %w", err)
	}

	id, err := generateID()
	if err != nil {
		return domain.Session{}, fmt.Errorf("generating user id: %w", err)
	}

	user := domain.NewUser(id, strings.TrimSpace(name), email, hash)
	if err := s.users.Create(ctx, user); err != nil {
		return domain.Session{}, err
	}

	return s.openSession(user)
}

// Login checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return s.openSession(user)
}

// Refresh exchanges a refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.Session, error) {
	if refreshToken == "" {
		return domain.Session{}, domain.ErrInvalidToken
	}

	userID, err := s.tokens.Verify(refreshToken, domain.TokenRefresh)
	if err != nil {
		return domain.Session{}, domain.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidToken
		}
		return domain.Session{}, err
	}

	return s.openSession(user)
}

// Authenticate resolves an access token to a user ID.
func (s *AuthService) Authenticate(accessToken string) (string, error) {
	userID, err := s.tokens.Verify(accessToken, domain.TokenAccess)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}

// Me returns the user behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) openSession(user domain.User) (domain.Session, error) {
	access, err := s.tokens.Issue(user.ID, domain.TokenAccess)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issuing access token: %w", err)
	}
	refresh, err := s.tokens.Issue(user.ID, domain.TokenRefresh)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issuing refresh token: %w", err)
	}

	return domain.Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
