package http

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles signup, login, token refresh and the social flows.
type AuthHandler struct {
	authService in.AuthService
}

func NewAuthHandler(authService in.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register mounts the public auth routes. The limiter guards the
// credential-bearing endpoints against brute force.
func (h *AuthHandler) Register(router fiber.Router, requireAuth, requireRefresh, limiter fiber.Handler) {
	authGroup := router.Group("/auth")

	authGroup.Post("/signup", limiter, h.Signup)
	authGroup.Post("/login", limiter, h.Login)
	authGroup.Post("/refresh", requireRefresh, h.Refresh)
	authGroup.Post("/logout", requireAuth, h.Logout)

	authGroup.Post("/email-otp", limiter, h.SendEmailOTP)
	authGroup.Post("/email-otp/check", limiter, h.CheckEmailOTP)

	authGroup.Post("/find-password", limiter, h.FindPassword)
	authGroup.Patch("/password", limiter, h.UpdatePassword)

	authGroup.Get("/:provider", h.OAuthRedirect)
	authGroup.Get("/:provider/callback", h.OAuthCallback)
}

// issueSession sets the access and refresh cookies for the user
func (h *AuthHandler) issueSession(c *fiber.Ctx, userID string) error {
	access, err := h.authService.IssueToken(c.Context(), in.TokenAccess, userID)
	if err != nil {
		return err
	}
	refresh, err := h.authService.IssueToken(c.Context(), in.TokenRefresh, userID)
	if err != nil {
		return err
	}
	c.Response().Header.Add(fiber.HeaderSetCookie, access.Cookie)
	c.Response().Header.Add(fiber.HeaderSetCookie, refresh.Cookie)
	return nil
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req in.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	user, err := h.authService.Signup(c.Context(), &req)
	if err != nil {
		return err
	}
	return response.Created(c, user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req in.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	user, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	if err := h.issueSession(c, user.ID.String()); err != nil {
		return err
	}
	return response.OK(c, user)
}

// Refresh rotates the access token. The refresh middleware has already
// validated the JWT; the service checks it against the stored hash.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	raw, _ := c.Locals("refresh_token").(string)

	user, err := h.authService.VerifyRefreshToken(c.Context(), userID.String(), raw)
	if err != nil {
		return err
	}

	access, err := h.authService.IssueToken(c.Context(), in.TokenAccess, user.ID.String())
	if err != nil {
		return err
	}
	c.Response().Header.Add(fiber.HeaderSetCookie, access.Cookie)
	return response.OK(c, user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Context(), userID.String()); err != nil {
		return err
	}

	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "Authentication", Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "Refresh", Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
	return response.Message(c, "logged out")
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) SendEmailOTP(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.authService.SendEmailOTP(c.Context(), req.Email); err != nil {
		return err
	}
	return response.Message(c, "verification code sent")
}

func (h *AuthHandler) CheckEmailOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.authService.CheckEmailOTP(c.Context(), req.Email, req.Code); err != nil {
		return err
	}
	return response.Message(c, "email verified")
}

func (h *AuthHandler) FindPassword(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.authService.SendPasswordResetMail(c.Context(), req.Email); err != nil {
		return err
	}
	return response.Message(c, "password reset mail sent")
}

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.authService.UpdatePasswordWithToken(c.Context(), req.Token, req.Password); err != nil {
		return err
	}
	return response.Message(c, "password updated")
}

func parseProvider(c *fiber.Ctx) (domain.Provider, error) {
	provider := domain.Provider(c.Params("provider"))
	switch provider {
	case domain.ProviderGoogle, domain.ProviderKakao, domain.ProviderNaver:
		return provider, nil
	}
	return "", apperr.InvalidInput("provider", string(provider))
}

func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// OAuthRedirect sends the browser to the provider's consent screen. The
// state nonce round-trips through a short-lived cookie.
func (h *AuthHandler) OAuthRedirect(c *fiber.Ctx) error {
	provider, err := parseProvider(c)
	if err != nil {
		return err
	}

	state, err := newState()
	if err != nil {
		return apperr.InternalWithError(err)
	}
	url, err := h.authService.OAuthLoginURL(provider, state)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Path:     "/",
	})
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) OAuthCallback(c *fiber.Ctx) error {
	provider, err := parseProvider(c)
	if err != nil {
		return err
	}

	if c.Query("state") == "" || c.Query("state") != c.Cookies(oauthStateCookie) {
		return apperr.Unauthorized("oauth state mismatch")
	}
	c.Cookie(&fiber.Cookie{Name: oauthStateCookie, Value: "", Expires: time.Now().Add(-time.Hour), Path: "/"})

	user, err := h.authService.OAuthCallback(c.Context(), provider, c.Query("code"))
	if err != nil {
		return err
	}
	if err := h.issueSession(c, user.ID.String()); err != nil {
		return err
	}
	return response.OK(c, user)
}
