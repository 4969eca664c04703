package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: Service implements domain.TokenIssuer.
var _ domain.TokenIssuer = (*Service)(nil)

var (
	errEmptySecret = errors.New("token: secret must not be empty")
	errWrongKind   = errors.New("token: unexpected token type")
)

// Claims carries the user ID and token type alongside the registered claims.
type Claims struct {
	UserID string           `json:"userId"`
	Kind   domain.TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 session tokens.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// New creates a token service. Both TTLs must be positive.
func New(secret string, accessTTL, refreshTTL time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive (access %s, refresh %s)", accessTTL, refreshTTL)
	}
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// Issue signs a token of the given kind for userID.
func (s *Service) Issue(userID string, kind domain.TokenKind) (string, error) {
	ttl := s.accessTTL
	if kind == domain.TokenRefresh {
		ttl = s.refreshTTL
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, expiry and type of raw and returns its user ID.
func (s *Service) Verify(raw string, kind domain.TokenKind) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("token: parse: %w", err)
	}

	if claims.Kind != kind {
		return "", errWrongKind
	}
	if claims.UserID == "" {
		return "", errors.New("token: missing user id")
	}
	return claims.UserID, nil
}
