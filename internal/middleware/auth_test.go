package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"srmlab_backend/internal/config"
	"srmlab_backend/internal/model"
	"srmlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func newProtectedRouter(cfg *config.Config, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})

	router.GET("/protected", handlers...)
	return router
}

func issueToken(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{Role: role, Email: "u@example.com"}
	user.ID = 7
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	return token
}

func testJWTConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	router := newProtectedRouter(cfg)
	token := issueToken(t, cfg, model.Teacher)

	cases := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", "", http.StatusUnauthorized},
		{"bearer header", "Bearer " + token, "", http.StatusOK},
		{"query token", "", token, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := "/protected"
			if tc.query != "" {
				target += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	other := &config.Config{JWT: config.JWTConfig{Secret: "other-secret", ExpireTime: time.Hour}}
	router := newProtectedRouter(cfg)
	token := issueToken(t, other, model.Teacher)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	router := newProtectedRouter(cfg, model.Teacher)

	cases := []struct {
		name       string
		role       model.UserRole
		wantStatus int
	}{
		{"teacher allowed", model.Teacher, http.StatusOK},
		{"student forbidden", model.Student, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, tc.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}
