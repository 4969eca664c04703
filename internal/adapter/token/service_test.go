package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New("test-secret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("", time.Minute, time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := New("s", 0, time.Hour); err == nil {
		t.Error("expected error for zero access ttl")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	for _, kind := range []domain.TokenKind{domain.TokenAccess, domain.TokenRefresh} {
		raw, err := svc.Issue("user-1", kind)
		if err != nil {
			t.Fatalf("Issue(%s): %v", kind, err)
		}
		userID, err := svc.Verify(raw, kind)
		if err != nil {
			t.Fatalf("Verify(%s): %v", kind, err)
		}
		if userID != "user-1" {
			t.Errorf("userID = %q, want user-1", userID)
		}
	}
}

func TestVerify_WrongKind(t *testing.T) {
	svc := newTestService(t)

	refresh, _ := svc.Issue("user-1", domain.TokenRefresh)
	if _, err := svc.Verify(refresh, domain.TokenAccess); err == nil {
		t.Error("refresh token must not verify as access token")
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := newTestService(t)
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	raw, err := svc.Issue("user-1", domain.TokenAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	if _, err := svc.Verify(raw, domain.TokenAccess); err == nil {
		t.Error("expected expired token to fail")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, _ := New("other-secret", time.Minute, time.Hour)

	raw, _ := other.Issue("user-1", domain.TokenAccess)
	if _, err := svc.Verify(raw, domain.TokenAccess); err == nil {
		t.Error("expected signature mismatch to fail")
	}
}

func TestVerify_RejectsNoneAlg(t *testing.T) {
	svc := newTestService(t)

	claims := Claims{
		UserID: "user-1",
		Kind:   domain.TokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}
	if _, err := svc.Verify(raw, domain.TokenAccess); err == nil {
		t.Error("expected unsigned token to fail")
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := newTestService(t)

	for _, raw := range []string{"", "abc", strings.Repeat("x.", 3)} {
		if _, err := svc.Verify(raw, domain.TokenAccess); err == nil {
			t.Errorf("Verify(%q): expected error", raw)
		}
	}
}
