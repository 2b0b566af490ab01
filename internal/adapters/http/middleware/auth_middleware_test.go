package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rentdesk/internal/core/domain"
	"rentdesk/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	secret     string
	adminToken string
}

func (v stubValidator) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(token, v.secret)
}

func (v stubValidator) ValidateAdminToken(token string) bool {
	return v.adminToken != "" && token == v.adminToken
}

func newAuthApp(v TokenValidator, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware(v)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		auth := AuthFrom(c)
		return c.JSON(fiber.Map{"user": auth.Username, "role": auth.Role, "via": auth.Via})
	})
	app.Get("/me", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, header, value string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	v := stubValidator{secret: "s3cret", adminToken: "svc"}
	app := newAuthApp(v)

	staff, err := jwt.GenerateAccessToken(7, "frontdesk", string(domain.RoleStaff), "s3cret", 5)
	require.NoError(t, err)
	forged, err := jwt.GenerateAccessToken(7, "frontdesk", string(domain.RoleAdmin), "other", 5)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"no credentials", "", "", http.StatusUnauthorized},
		{"bearer", "Authorization", "Bearer " + staff, http.StatusOK},
		{"wrong secret", "Authorization", "Bearer " + forged, http.StatusUnauthorized},
		{"not bearer", "Authorization", "Basic abc", http.StatusUnauthorized},
		{"admin token", AdminTokenHeader, "svc", http.StatusOK},
		{"bad admin token", AdminTokenHeader, "nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, get(t, app, tt.header, tt.value))
		})
	}
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	app := newAuthApp(stubValidator{secret: "s3cret"})
	token, err := jwt.GenerateAccessToken(7, "frontdesk", string(domain.RoleStaff), "s3cret", 5)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(t, app, "Cookie", "access_token="+token))
}

func TestAdminOnly(t *testing.T) {
	v := stubValidator{secret: "s3cret", adminToken: "svc"}
	app := newAuthApp(v, AdminOnly())

	staff, err := jwt.GenerateAccessToken(7, "frontdesk", string(domain.RoleStaff), "s3cret", 5)
	require.NoError(t, err)
	admin, err := jwt.GenerateAccessToken(1, "owner", string(domain.RoleAdmin), "s3cret", 5)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(t, app, "Authorization", "Bearer "+staff))
	assert.Equal(t, http.StatusOK, get(t, app, "Authorization", "Bearer "+admin))
	assert.Equal(t, http.StatusOK, get(t, app, AdminTokenHeader, "svc"))
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", OptionalAuth(stubValidator{secret: "s3cret"}), func(c *fiber.Ctx) error {
		return c.SendString(string(AuthFrom(c).Role))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
