package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/safar/pantry-pickup/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("Hash must not equal the plaintext")
	}
	if !h.Compare(hash, "hunter22") {
		t.Error("Compare should accept the original password")
	}
	if h.Compare(hash, "hunter23") {
		t.Error("Compare should reject a different password")
	}
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	account := models.Account{ID: 12, Role: models.RoleVendor}

	token, expiresAt, err := issuer.Issue(account)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("Expiry should be in the future, got %s", expiresAt)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 12 || claims.Role != models.RoleVendor {
		t.Errorf("Unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("Token should carry a jti")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue(models.Account{ID: 1, Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	issuer.now = time.Now
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	other := NewTokenIssuer("other-secret", time.Hour)
	token, _, err := other.Issue(models.Account{ID: 1, Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	issuer := NewTokenIssuer("test-secret", time.Hour)
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   models.RoleVendor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	issuer := NewTokenIssuer("test-secret", time.Hour)
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
