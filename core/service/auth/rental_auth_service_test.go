package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.Password = hashed
		}
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfileImgs(ctx context.Context, id uuid.UUID, imgs []string) error {
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, email)
		}
	}
	return nil
}

type fakeAuthStore struct {
	refresh map[string]string
	otp     map[string]string
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{refresh: make(map[string]string), otp: make(map[string]string)}
}

func (f *fakeAuthStore) SaveRefreshToken(ctx context.Context, userID, hashedToken string, ttl time.Duration) error {
	f.refresh[userID] = hashedToken
	return nil
}

func (f *fakeAuthStore) GetRefreshToken(ctx context.Context, userID string) (string, error) {
	return f.refresh[userID], nil
}

func (f *fakeAuthStore) DeleteRefreshToken(ctx context.Context, userID string) error {
	delete(f.refresh, userID)
	return nil
}

func (f *fakeAuthStore) SaveOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	f.otp[email] = code
	return nil
}

func (f *fakeAuthStore) GetOTP(ctx context.Context, email string) (string, error) {
	return f.otp[email], nil
}

func (f *fakeAuthStore) DeleteOTP(ctx context.Context, email string) error {
	delete(f.otp, email)
	return nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func testConfig() Config {
	return Config{
		AccessTokenSecret:       "access-secret",
		RefreshTokenSecret:      "refresh-secret",
		AccessTokenTime:         time.Hour,
		RefreshTokenTime:        7 * 24 * time.Hour,
		FindPasswordTokenSecret: "find-secret",
		FindPasswordTokenTime:   10 * time.Minute,
		EmailBaseURL:            "http://localhost:3000",
		OTPCodeTTL:              5 * time.Minute,
	}
}

func newTestService() (*Service, *fakeUserRepo, *fakeAuthStore, *fakeMailer) {
	users := newFakeUserRepo()
	store := newFakeAuthStore()
	mailer := &fakeMailer{}
	return NewService(users, store, mailer, testConfig()), users, store, mailer
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	req := &in.SignupRequest{Email: "kim@example.com", Password: "correct-horse", Username: "kim"}
	user, err := svc.Signup(ctx, req)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Provider != domain.ProviderLocal {
		t.Errorf("provider = %s, want local", user.Provider)
	}
	if user.Password == req.Password {
		t.Error("password stored in plaintext")
	}
	if len(user.ProfileImgs) != 1 || !strings.Contains(user.ProfileImgs[0], "gravatar.com") {
		t.Errorf("expected gravatar default image, got %v", user.ProfileImgs)
	}

	t.Run("duplicate email conflicts", func(t *testing.T) {
		if _, err := svc.Signup(ctx, req); apperr.GetHTTPStatus(err) != 409 {
			t.Errorf("status = %d, want 409", apperr.GetHTTPStatus(err))
		}
	})

	t.Run("login with correct password", func(t *testing.T) {
		got, err := svc.Login(ctx, &in.LoginRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if got.ID != user.ID {
			t.Error("logged in as a different user")
		}
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &in.LoginRequest{Email: req.Email, Password: "wrong"})
		if apperr.GetHTTPStatus(err) != 401 {
			t.Errorf("status = %d, want 401", apperr.GetHTTPStatus(err))
		}
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &in.LoginRequest{Email: "nobody@example.com", Password: "x"})
		if apperr.GetHTTPStatus(err) != 401 {
			t.Errorf("status = %d, want 401", apperr.GetHTTPStatus(err))
		}
	})
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	tests := []struct {
		name string
		req  *in.SignupRequest
	}{
		{"missing email", &in.SignupRequest{Password: "long-enough", Username: "kim"}},
		{"missing password", &in.SignupRequest{Email: "a@b.c", Username: "kim"}},
		{"short password", &in.SignupRequest{Email: "a@b.c", Password: "short", Username: "kim"}},
		{"missing username", &in.SignupRequest{Email: "a@b.c", Password: "long-enough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Signup(ctx, tt.req); apperr.GetHTTPStatus(err) != 400 {
				t.Errorf("status = %d, want 400", apperr.GetHTTPStatus(err))
			}
		})
	}
}

func TestLoginProviderMismatch(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newTestService()

	social := &domain.User{
		Base:     domain.NewBase(),
		Email:    "social@example.com",
		Username: "social",
		Provider: domain.ProviderKakao,
		Role:     domain.RoleUser,
	}
	if err := users.Create(ctx, social); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(ctx, &in.LoginRequest{Email: social.Email, Password: "whatever"})
	if apperr.GetHTTPStatus(err) != 409 {
		t.Errorf("status = %d, want 409", apperr.GetHTTPStatus(err))
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, store, _ := newTestService()

	user, err := svc.Signup(ctx, &in.SignupRequest{Email: "kim@example.com", Password: "correct-horse", Username: "kim"})
	if err != nil {
		t.Fatal(err)
	}
	userID := user.ID.String()

	pair, err := svc.IssueToken(ctx, in.TokenRefresh, userID)
	if err != nil {
		t.Fatalf("issue refresh failed: %v", err)
	}
	if !strings.HasPrefix(pair.Cookie, "Refresh=") {
		t.Errorf("cookie = %q, want Refresh= prefix", pair.Cookie)
	}
	if stored := store.refresh[userID]; stored == "" || stored == pair.Token {
		t.Error("refresh token must be stored hashed")
	}

	got, err := svc.VerifyRefreshToken(ctx, userID, pair.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got.ID != user.ID {
		t.Error("verify returned a different user")
	}

	t.Run("tampered token is rejected", func(t *testing.T) {
		_, err := svc.VerifyRefreshToken(ctx, userID, pair.Token+"x")
		if apperr.GetHTTPStatus(err) != 401 {
			t.Errorf("status = %d, want 401", apperr.GetHTTPStatus(err))
		}
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		if err := svc.Logout(ctx, userID); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.VerifyRefreshToken(ctx, userID, pair.Token); apperr.GetHTTPStatus(err) != 401 {
			t.Errorf("status = %d, want 401", apperr.GetHTTPStatus(err))
		}
	})
}

func TestAccessTokenCookie(t *testing.T) {
	ctx := context.Background()
	svc, _, store, _ := newTestService()

	pair, err := svc.IssueToken(ctx, in.TokenAccess, uuid.New().String())
	if err != nil {
		t.Fatalf("issue access failed: %v", err)
	}
	if !strings.HasPrefix(pair.Cookie, "Authentication=") {
		t.Errorf("cookie = %q, want Authentication= prefix", pair.Cookie)
	}
	if !strings.Contains(pair.Cookie, "HttpOnly") {
		t.Error("access cookie must be HttpOnly")
	}
	if len(store.refresh) != 0 {
		t.Error("access tokens must not be written to the auth store")
	}
}

func TestEmailOTP(t *testing.T) {
	ctx := context.Background()
	svc, _, store, mailer := newTestService()
	email := "kim@example.com"

	if err := svc.SendEmailOTP(ctx, email); err != nil {
		t.Fatalf("send otp failed: %v", err)
	}
	code := store.otp[email]
	if len(code) != 6 {
		t.Fatalf("code %q is not six digits", code)
	}
	if len(mailer.sent) != 1 || !strings.Contains(mailer.sent[0].body, code) {
		t.Error("mail does not carry the code")
	}

	t.Run("wrong code", func(t *testing.T) {
		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		if err := svc.CheckEmailOTP(ctx, email, wrong); apperr.GetHTTPStatus(err) != 401 {
			t.Errorf("status = %d, want 401", apperr.GetHTTPStatus(err))
		}
	})

	t.Run("correct code verifies once", func(t *testing.T) {
		if err := svc.CheckEmailOTP(ctx, email, code); err != nil {
			t.Fatalf("check failed: %v", err)
		}
		// The code is consumed by the successful check.
		if err := svc.CheckEmailOTP(ctx, email, code); apperr.GetHTTPStatus(err) != 404 {
			t.Errorf("status = %d, want 404", apperr.GetHTTPStatus(err))
		}
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, users, store, mailer := newTestService()

	user, err := svc.Signup(ctx, &in.SignupRequest{Email: "kim@example.com", Password: "correct-horse", Username: "kim"})
	if err != nil {
		t.Fatal(err)
	}
	oldHash := users.byEmail[user.Email].Password

	if err := svc.SendPasswordResetMail(ctx, user.Email); err != nil {
		t.Fatalf("send reset mail failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatal("no mail sent")
	}

	// Pull the token out of the mailed link.
	body := mailer.sent[0].body
	idx := strings.Index(body, "token=")
	if idx < 0 {
		t.Fatalf("mail body carries no token link: %q", body)
	}
	token := strings.Fields(body[idx+len("token="):])[0]

	if _, err := svc.IssueToken(ctx, in.TokenRefresh, user.ID.String()); err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdatePasswordWithToken(ctx, token, "new-password-1"); err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	if users.byEmail[user.Email].Password == oldHash {
		t.Error("password hash unchanged")
	}
	if _, ok := store.refresh[user.ID.String()]; ok {
		t.Error("live session must be revoked on password change")
	}

	if _, err := svc.Login(ctx, &in.LoginRequest{Email: user.Email, Password: "new-password-1"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}

	t.Run("garbage token", func(t *testing.T) {
		err := svc.UpdatePasswordWithToken(ctx, "not-a-jwt", "another-password")
		if apperr.GetHTTPStatus(err) != 401 {
			t.Errorf("status = %d, want 401", apperr.GetHTTPStatus(err))
		}
	})

	t.Run("reset for social account conflicts", func(t *testing.T) {
		social := &domain.User{Base: domain.NewBase(), Email: "naver@example.com", Provider: domain.ProviderNaver}
		if err := users.Create(ctx, social); err != nil {
			t.Fatal(err)
		}
		if err := svc.SendPasswordResetMail(ctx, social.Email); apperr.GetHTTPStatus(err) != 409 {
			t.Errorf("status = %d, want 409", apperr.GetHTTPStatus(err))
		}
	})
}

func TestMailDispatchFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, _, mailer := newTestService()

	if _, err := svc.Signup(ctx, &in.SignupRequest{Email: "kim@example.com", Password: "correct-horse", Username: "kim"}); err != nil {
		t.Fatal(err)
	}
	mailer.sendErr = errors.New("smtp: connection refused")

	if err := svc.SendEmailOTP(ctx, "kim@example.com"); apperr.GetHTTPStatus(err) != 400 {
		t.Errorf("otp mail failure status = %d, want 400", apperr.GetHTTPStatus(err))
	}
	if err := svc.SendPasswordResetMail(ctx, "kim@example.com"); apperr.GetHTTPStatus(err) != 400 {
		t.Errorf("reset mail failure status = %d, want 400", apperr.GetHTTPStatus(err))
	}
}
