package middleware

import (
	"errors"
	"strings"

	"rental_server/core/domain"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware validates the JWT session cookies issued by the auth
// service and exposes the caller's identity through request locals.
type AuthMiddleware struct {
	accessSecret  []byte
	refreshSecret []byte
	userRepo      out.UserRepository
}

func NewAuthMiddleware(accessSecret, refreshSecret string, userRepo out.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		userRepo:      userRepo,
	}
}

// extractToken pulls the token from the named cookie, falling back to
// the Authorization header for non-browser clients.
func extractToken(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (m *AuthMiddleware) parseToken(raw string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, apperr.TokenExpired()
		}
		return uuid.Nil, apperr.InvalidToken("invalid token")
	}
	if !token.Valid {
		return uuid.Nil, apperr.InvalidToken("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.InvalidToken("invalid token subject")
	}
	return userID, nil
}

// RequireAuth validates the access token and stores the user ID in locals.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c, "Authentication")
		if raw == "" {
			return apperr.Unauthorized("missing access token")
		}

		userID, err := m.parseToken(raw, m.accessSecret)
		if err != nil {
			return err
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// RequireRefresh validates the refresh token JWT and keeps the raw token
// around so the handler can match it against the stored hash.
func (m *AuthMiddleware) RequireRefresh() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c, "Refresh")
		if raw == "" {
			return apperr.Unauthorized("missing refresh token")
		}

		userID, err := m.parseToken(raw, m.refreshSecret)
		if err != nil {
			return err
		}

		c.Locals("user_id", userID)
		c.Locals("refresh_token", raw)
		return c.Next()
	}
}

// RequireAdmin validates the access token and checks the account role
// against the user store. Runs standalone, no RequireAuth needed before it.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c, "Authentication")
		if raw == "" {
			return apperr.Unauthorized("missing access token")
		}

		userID, err := m.parseToken(raw, m.accessSecret)
		if err != nil {
			return err
		}

		user, err := m.userRepo.FindByID(c.Context(), userID)
		if err != nil {
			return apperr.InternalWithError(err)
		}
		if user == nil {
			return apperr.Unauthorized("account no longer exists")
		}
		if user.Role != domain.RoleAdmin {
			return apperr.Forbidden("admin role required")
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", user.Role)
		return c.Next()
	}
}
