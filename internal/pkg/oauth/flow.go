package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/config"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

type clientSecrets map[string]creds

type creds struct {
	ClientId                string   `json:"client_id"`
	ProjectId               string   `json:"project_id"`
	AuthUri                 string   `json:"auth_uri"`
	TokenUri                string   `json:"token_uri"`
	AuthProviderX509CertUrl string   `json:"auth_provider_x509_cert_url"`
	ClientSecret            string   `json:"client_secret"`
	RedirectUris            []string `json:"redirect_uris"`
}

type tokenRepository interface {
	Get(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, token *oauth2.Token) error
}

// Flow owns the Google OAuth credential: it builds token sources for the
// feed client and carries the reauthorization handoff. When a sync run hits
// a recoverable auth failure it calls RequestAuthorization, and the admin
// API surfaces the pending consent URL until Exchange completes it.
type Flow struct {
	conf   *oauth2.Config
	tokens tokenRepository
	logger *zap.SugaredLogger

	mu         sync.Mutex
	pendingURL string
}

func NewFlow(logger *zap.SugaredLogger, tokens tokenRepository) (*Flow, error) {
	file, err := os.Open(config.ClientSecretPath())
	if err != nil {
		return nil, fmt.Errorf("can't open client secret: %w", err)
	}
	defer file.Close()

	cs := make(clientSecrets)
	if err := json.NewDecoder(file).Decode(&cs); err != nil {
		return nil, fmt.Errorf("can't parse secrets: %w", err)
	}

	secret := cs[config.ClientType()]
	conf := &oauth2.Config{
		ClientID:     secret.ClientId,
		ClientSecret: secret.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  config.RedirectURL(),
		Scopes: []string{
			calendar.CalendarReadonlyScope,
		},
	}

	return &Flow{
		conf:   conf,
		tokens: tokens,
		logger: logger,
	}, nil
}

// AuthURL returns the consent URL a user has to visit to grant access.
func (f *Flow) AuthURL() string {
	return f.conf.AuthCodeURL("", oauth2.AccessTypeOffline)
}

// TokenSource returns a token source backed by the persisted token.
// Without a stored token the flow cannot proceed non-interactively, which is
// the same recoverable-auth condition as an expired grant.
func (f *Flow) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := f.tokens.Get(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, &model.ReauthRequiredError{AuthURL: f.AuthURL(), Err: err}
		}
		return nil, fmt.Errorf("load token: %w", err)
	}

	return f.conf.TokenSource(ctx, token), nil
}

// Exchange trades an auth code for a token and persists it, completing a
// pending reauthorization.
func (f *Flow) Exchange(ctx context.Context, authCode string) error {
	token, err := f.conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("code exchange: %w", err)
	}

	if err := f.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	f.mu.Lock()
	f.pendingURL = ""
	f.mu.Unlock()

	f.logger.Infow("authorization completed")
	return nil
}

// RequestAuthorization records the consent URL handed over by a cancelled
// sync run.
func (f *Flow) RequestAuthorization(authURL string) {
	f.mu.Lock()
	f.pendingURL = authURL
	f.mu.Unlock()

	f.logger.Infow("reauthorization requested", "url", authURL)
}

// PendingAuthURL returns the consent URL of an outstanding reauthorization
// request, or an empty string when none is pending.
func (f *Flow) PendingAuthURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.pendingURL
}
