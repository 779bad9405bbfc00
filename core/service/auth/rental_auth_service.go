package auth

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
	"rental_server/pkg/logger"
)

// Config carries the token secrets and lifetimes the service signs with
type Config struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTime    time.Duration
	RefreshTokenTime   time.Duration

	FindPasswordTokenSecret string
	FindPasswordTokenTime   time.Duration
	EmailBaseURL            string

	OTPCodeTTL time.Duration
}

type Service struct {
	userRepo  out.UserRepository
	authStore out.AuthStore
	mailer    out.Mailer
	cfg       Config
	oauth     map[domain.Provider]*providerClient
}

func NewService(userRepo out.UserRepository, authStore out.AuthStore, mailer out.Mailer, cfg Config) *Service {
	return &Service{
		userRepo:  userRepo,
		authStore: authStore,
		mailer:    mailer,
		cfg:       cfg,
		oauth:     make(map[domain.Provider]*providerClient),
	}
}

// gravatarURL builds the default profile image for local signups
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=retro"
}

func (s *Service) Signup(ctx context.Context, req *in.SignupRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, apperr.MissingField("email")
	}
	if req.Password == "" {
		return nil, apperr.MissingField("password")
	}
	if len(req.Password) < 8 {
		return nil, apperr.InvalidInput("password", "must be at least 8 characters")
	}
	if req.Username == "" {
		return nil, apperr.MissingField("username")
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.InternalWithError(err)
	}

	user := &domain.User{
		Base:        domain.NewBase(),
		Email:       req.Email,
		Password:    string(hashed),
		Username:    req.Username,
		ProfileImgs: []string{gravatarURL(req.Email)},
		Provider:    domain.ProviderLocal,
		Role:        domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperr.DatabaseError("create user", err)
	}

	logger.Info("[AuthService.Signup] created local user %s", user.ID)
	return user, nil
}

func (s *Service) Login(ctx context.Context, req *in.LoginRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, apperr.MissingField("email")
	}
	if req.Password == "" {
		return nil, apperr.MissingField("password")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if !user.IsLocal() {
		return nil, apperr.Conflict(fmt.Sprintf("account is registered via %s", user.Provider))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	return user, nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
}

func (s *Service) signToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// hashToken digests the token before bcrypt so the input stays under
// bcrypt's 72-byte limit regardless of JWT length.
func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

// IssueToken signs the requested JWT kind and renders its cookie. Refresh
// tokens additionally land in the auth store as a bcrypt hash so a stolen
// store cannot replay them.
func (s *Service) IssueToken(ctx context.Context, tokenType in.TokenType, userID string) (*in.TokenPair, error) {
	var (
		secret string
		ttl    time.Duration
		cookie string
	)
	switch tokenType {
	case in.TokenAccess:
		secret, ttl, cookie = s.cfg.AccessTokenSecret, s.cfg.AccessTokenTime, "Authentication"
	case in.TokenRefresh:
		secret, ttl, cookie = s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenTime, "Refresh"
	default:
		return nil, apperr.BadRequest(fmt.Sprintf("unknown token type: %s", tokenType))
	}

	token, err := s.signToken(userID, secret, ttl)
	if err != nil {
		return nil, apperr.InternalWithError(err)
	}

	if tokenType == in.TokenRefresh {
		hashed, err := bcrypt.GenerateFromPassword(hashToken(token), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.InternalWithError(err)
		}
		if err := s.authStore.SaveRefreshToken(ctx, userID, string(hashed), ttl); err != nil {
			return nil, apperr.ExternalError("auth store", err)
		}
	}

	pair := &in.TokenPair{
		Token:  token,
		Cookie: fmt.Sprintf("%s=%s; HttpOnly; Path=/; Max-Age=%d", cookie, token, int(ttl.Seconds())),
	}
	return pair, nil
}

func (s *Service) VerifyRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	stored, err := s.authStore.GetRefreshToken(ctx, userID)
	if err != nil {
		return nil, apperr.ExternalError("auth store", err)
	}
	if stored == "" {
		return nil, apperr.Unauthorized("no active session")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), hashToken(refreshToken)); err != nil {
		return nil, apperr.Unauthorized("refresh token mismatch")
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.InvalidToken("malformed subject")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("user no longer exists")
	}
	return user, nil
}

// Logout drops the stored refresh token so the session cannot be renewed
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.authStore.DeleteRefreshToken(ctx, userID); err != nil {
		return apperr.ExternalError("auth store", err)
	}
	return nil
}

func (s *Service) SendPasswordResetMail(ctx context.Context, email string) error {
	if email == "" {
		return apperr.MissingField("email")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return apperr.NotFound("user")
	}
	if !user.IsLocal() {
		return apperr.Conflict(fmt.Sprintf("account is registered via %s", user.Provider))
	}

	token, err := s.signToken(user.ID.String(), s.cfg.FindPasswordTokenSecret, s.cfg.FindPasswordTokenTime)
	if err != nil {
		return apperr.InternalWithError(err)
	}

	link := fmt.Sprintf("%s/find-password?token=%s", s.cfg.EmailBaseURL, token)
	body := fmt.Sprintf("비밀번호를 재설정하려면 아래 링크를 눌러주세요.\n\n%s\n\n링크는 %d분 동안 유효합니다.",
		link, int(s.cfg.FindPasswordTokenTime.Minutes()))

	if err := s.mailer.Send(ctx, email, "비밀번호 재설정 안내", body); err != nil {
		return apperr.BadRequest("failed to send mail").WithError(err)
	}

	logger.Info("[AuthService.SendPasswordResetMail] sent reset mail to user %s", user.ID)
	return nil
}

func (s *Service) UpdatePasswordWithToken(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return apperr.MissingField("password")
	}
	if len(newPassword) < 8 {
		return apperr.InvalidInput("password", "must be at least 8 characters")
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.FindPasswordTokenSecret), nil
	})
	if err != nil {
		return apperr.InvalidToken("password reset token rejected")
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" {
		return apperr.InvalidToken("password reset token rejected")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return apperr.InvalidToken("malformed subject")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperr.DatabaseError("find user", err)
	}
	if user == nil {
		return apperr.NotFound("user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.InternalWithError(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return apperr.DatabaseError("update password", err)
	}

	// Any live session predates the password change.
	if err := s.authStore.DeleteRefreshToken(ctx, userID.String()); err != nil {
		logger.Warn("[AuthService.UpdatePasswordWithToken] failed to revoke session for %s: %v", userID, err)
	}
	return nil
}

// generateOTP draws a uniform 6-digit code from crypto/rand
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *Service) SendEmailOTP(ctx context.Context, email string) error {
	if email == "" {
		return apperr.MissingField("email")
	}

	code, err := generateOTP()
	if err != nil {
		return apperr.InternalWithError(err)
	}
	if err := s.authStore.SaveOTP(ctx, email, code, s.cfg.OTPCodeTTL); err != nil {
		return apperr.ExternalError("auth store", err)
	}

	body := fmt.Sprintf("인증번호는 %s 입니다.\n%d분 안에 입력해주세요.", code, int(s.cfg.OTPCodeTTL.Minutes()))
	if err := s.mailer.Send(ctx, email, "이메일 인증번호", body); err != nil {
		return apperr.BadRequest("failed to send mail").WithError(err)
	}
	return nil
}

func (s *Service) CheckEmailOTP(ctx context.Context, email, code string) error {
	if email == "" {
		return apperr.MissingField("email")
	}
	if code == "" {
		return apperr.MissingField("code")
	}

	stored, err := s.authStore.GetOTP(ctx, email)
	if err != nil {
		return apperr.ExternalError("auth store", err)
	}
	if stored == "" {
		return apperr.NotFound("verification code")
	}
	if stored != code {
		return apperr.Unauthorized("verification code mismatch")
	}

	// One-shot code: a successful check consumes it.
	if err := s.authStore.DeleteOTP(ctx, email); err != nil {
		logger.Warn("[AuthService.CheckEmailOTP] failed to delete used code for %s: %v", email, err)
	}
	return nil
}
