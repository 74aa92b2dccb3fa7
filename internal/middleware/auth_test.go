package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/identity"
	"github.com/everestpress/printshop-api/internal/models"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *models.User) error { return nil }
func (r *stubUserRepo) Update(_ context.Context, _ *models.User) error { return nil }

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, httperr.NotFound("user_not_found", "User not found.")
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.NotFound("user_not_found", "User not found.")
	}
	clone := *u
	return &clone, nil
}

func authTestRouter(t *testing.T, mw gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/probe", mw, func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "role": user.Role})
			return
		}
		c.JSON(http.StatusOK, gin.H{"guest": true})
	})
	return r
}

func TestAuth_ValidToken(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.User{
		"user-1": {ID: "user-1", Role: models.RoleCustomer},
	}}
	issuer := identity.NewTokenIssuer("test-secret", time.Hour, time.Hour)
	r := authTestRouter(t, Auth(issuer, repo))

	token, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.User{}}
	issuer := identity.NewTokenIssuer("test-secret", time.Hour, time.Hour)
	r := authTestRouter(t, Auth(issuer, repo))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_DeletedUserLosesAccess(t *testing.T) {
	// Token is valid, but the account behind it no longer exists.
	repo := &stubUserRepo{users: map[string]*models.User{}}
	issuer := identity.NewTokenIssuer("test-secret", time.Hour, time.Hour)
	r := authTestRouter(t, Auth(issuer, repo))

	token, err := issuer.IssueAccess("gone-user")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuth_AbsentHeaderPassesAsGuest(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.User{}}
	issuer := identity.NewTokenIssuer("test-secret", time.Hour, time.Hour)
	r := authTestRouter(t, OptionalAuth(issuer, repo))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for guest, got %d", rec.Code)
	}
}

func TestOptionalAuth_GarbageTokenStillRejected(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.User{}}
	issuer := identity.NewTokenIssuer("test-secret", time.Hour, time.Hour)
	r := authTestRouter(t, OptionalAuth(issuer, repo))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ContextUser, &models.User{ID: "u1", Role: models.RoleCustomer})
	}, RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer on admin route, got %d", rec.Code)
	}
}

func TestRequireRole_Allows(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ContextUser, &models.User{ID: "u1", Role: models.RoleAdmin})
	}, RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}
