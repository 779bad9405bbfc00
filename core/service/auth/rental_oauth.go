package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/pkg/apperr"
	"rental_server/pkg/logger"
)

var (
	kakaoEndpoint = oauth2.Endpoint{
		AuthURL:  "https://kauth.kakao.com/oauth/authorize",
		TokenURL: "https://kauth.kakao.com/oauth/token",
	}
	naverEndpoint = oauth2.Endpoint{
		AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
		TokenURL: "https://nid.naver.com/oauth2.0/token",
	}
)

// providerClient pairs an oauth2 config with the provider's userinfo
// endpoint and response shape.
type providerClient struct {
	config      *oauth2.Config
	userInfoURL string
	parse       func(body []byte) (*in.OAuthProfile, error)
}

func (s *Service) RegisterGoogle(clientID, clientSecret, redirectURL string) {
	if clientID == "" || clientSecret == "" {
		return
	}
	s.oauth[domain.ProviderGoogle] = &providerClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		parse: func(body []byte) (*in.OAuthProfile, error) {
			var res struct {
				Email   string `json:"email"`
				Name    string `json:"name"`
				Picture string `json:"picture"`
			}
			if err := json.Unmarshal(body, &res); err != nil {
				return nil, err
			}
			return &in.OAuthProfile{
				Email:      res.Email,
				Username:   res.Name,
				ProfileImg: res.Picture,
				Provider:   domain.ProviderGoogle,
			}, nil
		},
	}
}

func (s *Service) RegisterKakao(clientID, clientSecret, redirectURL string) {
	if clientID == "" {
		return
	}
	s.oauth[domain.ProviderKakao] = &providerClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"account_email", "profile_nickname", "profile_image"},
			Endpoint:     kakaoEndpoint,
		},
		userInfoURL: "https://kapi.kakao.com/v2/user/me",
		parse: func(body []byte) (*in.OAuthProfile, error) {
			var res struct {
				KakaoAccount struct {
					Email   string `json:"email"`
					Profile struct {
						Nickname        string `json:"nickname"`
						ProfileImageURL string `json:"profile_image_url"`
					} `json:"profile"`
				} `json:"kakao_account"`
			}
			if err := json.Unmarshal(body, &res); err != nil {
				return nil, err
			}
			return &in.OAuthProfile{
				Email:      res.KakaoAccount.Email,
				Username:   res.KakaoAccount.Profile.Nickname,
				ProfileImg: res.KakaoAccount.Profile.ProfileImageURL,
				Provider:   domain.ProviderKakao,
			}, nil
		},
	}
}

func (s *Service) RegisterNaver(clientID, clientSecret, redirectURL string) {
	if clientID == "" || clientSecret == "" {
		return
	}
	s.oauth[domain.ProviderNaver] = &providerClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     naverEndpoint,
		},
		userInfoURL: "https://openapi.naver.com/v1/nid/me",
		parse: func(body []byte) (*in.OAuthProfile, error) {
			var res struct {
				Response struct {
					Email        string `json:"email"`
					Nickname     string `json:"nickname"`
					ProfileImage string `json:"profile_image"`
				} `json:"response"`
			}
			if err := json.Unmarshal(body, &res); err != nil {
				return nil, err
			}
			return &in.OAuthProfile{
				Email:      res.Response.Email,
				Username:   res.Response.Nickname,
				ProfileImg: res.Response.ProfileImage,
				Provider:   domain.ProviderNaver,
			}, nil
		},
	}
}

func (s *Service) OAuthLoginURL(provider domain.Provider, state string) (string, error) {
	client, ok := s.oauth[provider]
	if !ok {
		return "", apperr.BadRequest(fmt.Sprintf("oauth provider not configured: %s", provider))
	}
	return client.config.AuthCodeURL(state), nil
}

func (s *Service) fetchProfile(ctx context.Context, client *providerClient, token *oauth2.Token) (*in.OAuthProfile, error) {
	httpClient := client.config.Client(ctx, token)
	resp, err := httpClient.Get(client.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return client.parse(body)
}

// OAuthCallback exchanges the authorization code and signs the user in,
// creating the account on first login. An email already registered under a
// different provider is a conflict, not a silent merge.
func (s *Service) OAuthCallback(ctx context.Context, provider domain.Provider, code string) (*domain.User, error) {
	client, ok := s.oauth[provider]
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("oauth provider not configured: %s", provider))
	}
	if code == "" {
		return nil, apperr.MissingField("code")
	}

	token, err := client.config.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.OAuthFailed(string(provider), err)
	}

	profile, err := s.fetchProfile(ctx, client, token)
	if err != nil {
		return nil, apperr.OAuthFailed(string(provider), err)
	}
	if profile.Email == "" {
		return nil, apperr.OAuthFailed(string(provider), fmt.Errorf("provider returned no email"))
	}

	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, apperr.DatabaseError("find user", err)
	}
	if user != nil {
		if user.Provider != provider {
			return nil, apperr.Conflict(fmt.Sprintf("account is registered via %s", user.Provider))
		}
		return user, nil
	}

	user = &domain.User{
		Base:     domain.NewBase(),
		Email:    profile.Email,
		Username: profile.Username,
		Provider: provider,
		Role:     domain.RoleUser,
	}
	if profile.ProfileImg != "" {
		user.ProfileImgs = []string{profile.ProfileImg}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperr.DatabaseError("create user", err)
	}

	logger.Info("[AuthService.OAuthCallback] created %s user %s", provider, user.ID)
	return user, nil
}
