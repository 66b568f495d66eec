package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appAuth "github.com/mhasan/dancecamp/internal/app/auth"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
	"github.com/mhasan/dancecamp/internal/pkg/auth"
)

// roleOnlyUserStore serves GetByEmail for role checks; the other methods are
// never reached from the middleware
type roleOnlyUserStore struct {
	roles map[string]models.RoleType
}

func (s *roleOnlyUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	role, ok := s.roles[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &models.User{Email: email, Role: role}, nil
}

func (s *roleOnlyUserStore) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	return false, nil
}
func (s *roleOnlyUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (s *roleOnlyUserStore) GetAll(ctx context.Context) ([]*models.User, error) { return nil, nil }
func (s *roleOnlyUserStore) UpdateRole(ctx context.Context, id int64, role models.RoleType) error {
	return nil
}
func (s *roleOnlyUserStore) Delete(ctx context.Context, id int64) error { return nil }
func (s *roleOnlyUserStore) GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	return nil, nil
}

func newTestMiddleware(roles map[string]models.RoleType) (*AuthMiddleware, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "dancecamp.app",
	})
	authzService := appAuth.NewAuthorizationService(&roleOnlyUserStore{roles: roles}, nil)
	return NewAuthMiddleware(jwtService, authzService), jwtService
}

func performRequest(router *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, _ := newTestMiddleware(nil)

	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := performRequest(router, http.MethodGet, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: expected 401, got %d", w.Code)
	}
	if w := performRequest(router, http.MethodGet, "/protected", "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", w.Code)
	}
}

func TestJWTAuthSetsCallerEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, jwtService := newTestMiddleware(nil)

	var seenEmail string
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		seenEmail = CallerEmail(c)
		c.Status(http.StatusOK)
	})

	token, _, err := jwtService.IssueToken("dancer@example.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	w := performRequest(router, http.MethodGet, "/protected", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", w.Code)
	}
	if seenEmail != "dancer@example.com" {
		t.Errorf("handler saw email %q", seenEmail)
	}
}

func TestRoleRequiredChecksStoredRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, jwtService := newTestMiddleware(map[string]models.RoleType{
		"admin@example.com":   models.RoleAdmin,
		"student@example.com": models.RoleStudent,
	})

	router := gin.New()
	router.GET("/admin-only", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminToken, _, _ := jwtService.IssueToken("admin@example.com")
	if w := performRequest(router, http.MethodGet, "/admin-only", "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", w.Code)
	}

	studentToken, _, _ := jwtService.IssueToken("student@example.com")
	if w := performRequest(router, http.MethodGet, "/admin-only", "Bearer "+studentToken); w.Code != http.StatusForbidden {
		t.Errorf("student: expected 403, got %d", w.Code)
	}

	// Token is valid but the account no longer exists
	ghostToken, _, _ := jwtService.IssueToken("ghost@example.com")
	if w := performRequest(router, http.MethodGet, "/admin-only", "Bearer "+ghostToken); w.Code != http.StatusForbidden {
		t.Errorf("ghost: expected 403, got %d", w.Code)
	}
}

func TestSelfRequiredMatchesPathEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, jwtService := newTestMiddleware(nil)

	router := gin.New()
	router.GET("/cart/:email", m.JWTAuth(), m.SelfRequired("email"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, _, _ := jwtService.IssueToken("dancer@example.com")

	if w := performRequest(router, http.MethodGet, "/cart/dancer@example.com", "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("own email: expected 200, got %d", w.Code)
	}
	if w := performRequest(router, http.MethodGet, "/cart/other@example.com", "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("other email: expected 403, got %d", w.Code)
	}
}
