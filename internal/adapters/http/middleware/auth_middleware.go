package middleware

import (
	"errors"
	"strings"

	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/jwt"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminTokenHeader carries the service token used by scripts and kiosks
const AdminTokenHeader = "X-Admin-Token"

const authLocal = "auth"

// TokenValidator is the subset of AuthService the middleware needs
type TokenValidator interface {
	ValidateAccessToken(accessToken string) (*jwt.Claims, error)
	ValidateAdminToken(token string) bool
}

// bearer extracts the access token from the cookie or Authorization header
func bearer(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// resolve builds the caller identity from the request. ok is false when no
// credentials were sent.
func resolve(c *fiber.Ctx, v TokenValidator) (domain.AuthContext, bool, error) {
	if token := c.Get(AdminTokenHeader); token != "" {
		if !v.ValidateAdminToken(token) {
			return domain.Anonymous, true, jwt.ErrTokenInvalid
		}
		return domain.AuthContext{Username: "admin-token", Role: domain.RoleAdmin, Via: "admin_token"}, true, nil
	}

	accessToken := bearer(c)
	if accessToken == "" {
		return domain.Anonymous, false, nil
	}
	claims, err := v.ValidateAccessToken(accessToken)
	if err != nil {
		return domain.Anonymous, true, err
	}
	return services.ContextFromClaims(claims), true, nil
}

func setAuth(c *fiber.Ctx, auth domain.AuthContext) {
	c.Locals(authLocal, auth)
	c.Locals("userID", auth.UserID)
	c.Locals("username", auth.Username)
	c.Locals("role", string(auth.Role))
}

// AuthMiddleware requires a valid access token or admin token
func AuthMiddleware(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, sent, err := resolve(c, v)
		if !sent {
			return response.Unauthorized(c, "Access token required")
		}
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		setAuth(c, auth)
		return c.Next()
	}
}

// OptionalAuth sets the caller identity when valid credentials are present
func OptionalAuth(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if auth, sent, err := resolve(c, v); sent && err == nil {
			setAuth(c, auth)
		}
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := AuthFrom(c)
		if !auth.IsAuthenticated() {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if auth.Role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// AuthFrom returns the caller identity stored by the auth middleware
func AuthFrom(c *fiber.Ctx) domain.AuthContext {
	if auth, ok := c.Locals(authLocal).(domain.AuthContext); ok {
		return auth
	}
	return domain.Anonymous
}
