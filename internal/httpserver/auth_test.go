package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"freshbasket/internal/domain"
)

func identityEcho(t *testing.T, want domain.User) gin.HandlerFunc {
	t.Helper()
	return func(c *gin.Context) {
		got, ok := currentUser(c)
		if !ok {
			t.Fatalf("expected identity in context")
		}
		if got.ID != want.ID || got.Role != want.Role {
			t.Fatalf("identity mismatch: got %s/%s want %s/%s", got.ID, got.Role, want.ID, want.Role)
		}
		c.Status(http.StatusOK)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", authMiddleware("secret", nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token, err := SignToken("other-secret", domain.User{ID: "u1", Role: domain.RoleCustomer}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	router := gin.New()
	router.GET("/x", authMiddleware("secret", nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token, err := SignToken("secret", domain.User{ID: "u1", Role: domain.RoleCustomer}, -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	router := gin.New()
	router.GET("/x", authMiddleware("secret", nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := domain.User{ID: "u1", Role: domain.RoleCourier}
	token, err := SignToken("secret", user, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	router := gin.New()
	router.GET("/x", authMiddleware("secret", nil), identityEcho(t, user))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RefreshesRoleFromStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// Token says courier, the store has since demoted the user to customer.
	token, err := SignToken("secret", domain.User{ID: "u1", Role: domain.RoleCourier}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	users := &stubUsers{users: map[string]domain.User{
		"u1": {ID: "u1", Role: domain.RoleCustomer},
	}}

	router := gin.New()
	router.GET("/x", authMiddleware("secret", users), identityEcho(t, domain.User{ID: "u1", Role: domain.RoleCustomer}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_AllowsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", optionalAuth("secret", nil), func(c *gin.Context) {
		if _, ok := currentUser(c); ok {
			t.Fatalf("expected no identity for anonymous request")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_RejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", optionalAuth("secret", nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
