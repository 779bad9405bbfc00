package in

import (
	"context"

	"rental_server/core/domain"
)

// TokenType selects which of the two JWT kinds to issue
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenPair is one issued token plus its Set-Cookie header value
type TokenPair struct {
	Token  string
	Cookie string
}

// SignupRequest registers a local account
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// LoginRequest authenticates a local account
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OAuthProfile is the normalized identity fetched from a social provider
type OAuthProfile struct {
	Email      string
	Username   string
	ProfileImg string
	Provider   domain.Provider
}

// AuthService implements signup, login, token issuance, OTP verification
// and the social login flows.
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*domain.User, error)
	Login(ctx context.Context, req *LoginRequest) (*domain.User, error)

	// IssueToken signs an access or refresh JWT for the user and renders
	// the matching cookie. Refresh tokens are also bcrypt-hashed into the
	// auth store.
	IssueToken(ctx context.Context, tokenType TokenType, userID string) (*TokenPair, error)

	// VerifyRefreshToken checks the presented refresh token against the
	// stored hash and returns the owning user.
	VerifyRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error)

	// Logout revokes the stored refresh token.
	Logout(ctx context.Context, userID string) error

	SendPasswordResetMail(ctx context.Context, email string) error
	UpdatePasswordWithToken(ctx context.Context, token, newPassword string) error

	SendEmailOTP(ctx context.Context, email string) error
	CheckEmailOTP(ctx context.Context, email, code string) error

	// OAuthLoginURL builds the provider's consent-screen redirect URL.
	OAuthLoginURL(provider domain.Provider, state string) (string, error)

	// OAuthCallback exchanges the authorization code, resolves the profile
	// and returns the (possibly newly created) user.
	OAuthCallback(ctx context.Context, provider domain.Provider, code string) (*domain.User, error)
}
