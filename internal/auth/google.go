package auth

import (
	"context"
	"fmt"

	"cinelog/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// GoogleService runs the OAuth authorization-code flow against Google and maps
// the resulting identity onto a local account.
type GoogleService struct {
	conf    *oauth2.Config
	service *Service
}

func NewGoogleService(cfg *config.GoogleConfig, service *Service) *GoogleService {
	return &GoogleService{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		service: service,
	}
}

// AuthURL builds the consent-screen URL for the given anti-forgery state.
func (g *GoogleService) AuthURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Callback exchanges the authorization code, fetches the user's profile, and
// signs them in (creating the account on first visit).
func (g *GoogleService) Callback(ctx context.Context, code string) (*AuthResult, error) {
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	svc, err := goauth2.NewService(ctx, option.WithTokenSource(g.conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating oauth2 client: %w", err)
	}

	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}

	return g.service.FindOrCreateGoogleUser(ctx, info.Email, info.Name)
}
