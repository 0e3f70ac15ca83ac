package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/crestbank/crest/pkg/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Secret:     "unit-test-secret",
		Issuer:     "crest-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestService(t)
	userID := testutil.TestUserID

	token, err := svc.Issue(userID, 42, []string{RoleCustomer}, []string{"SENIOR_CITIZEN"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.CustomerID != 42 {
		t.Errorf("CustomerID = %d, want 42", claims.CustomerID)
	}
	if !claims.HasRole(RoleCustomer) {
		t.Error("expected customer role")
	}
	if len(claims.Classifications) != 1 || claims.Classifications[0] != "SENIOR_CITIZEN" {
		t.Errorf("Classifications = %v, want [SENIOR_CITIZEN]", claims.Classifications)
	}
	if claims.Issuer != "crest-test" {
		t.Errorf("Issuer = %q, want crest-test", claims.Issuer)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTestService(t)
	token, err := issuer.Issue(uuid.New(), 0, []string{RoleAdmin}, nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other, err := NewService(Config{Secret: "different-secret", Issuer: "crest-test"})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if _, err := other.Validate(token); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	svc, err := NewService(Config{Secret: "unit-test-secret", Issuer: "someone-else", Expiration: time.Minute})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	token, err := svc.Issue(uuid.New(), 0, nil, nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	validator := newTestService(t)
	if _, err := validator.Validate(token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestNewServiceRequiresKeyMaterial(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestMiddleware(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.Issue(uuid.New(), 7, []string{RoleCustomer}, nil)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var gotClaims *Claims
	handler := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotClaims == nil || gotClaims.CustomerID != 7 {
			t.Fatalf("claims not propagated: %+v", gotClaims)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}
