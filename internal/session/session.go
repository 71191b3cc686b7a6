// Package session owns the catalog credential for the lifetime of the
// process. The credential is obtained once through a client-credentials
// exchange and is never refreshed automatically.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrNoCredential is returned by every authorized call when the startup
// exchange failed or never ran.
var ErrNoCredential = errors.New("session: no credential")

// Credentials identify the application to the token endpoint.
type Credentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// Session holds the bearer credential and builds authorized HTTP clients.
type Session struct {
	mu      sync.RWMutex
	token   string
	timeout time.Duration
	logger  zerolog.Logger
}

// New creates a Session without a credential.
func New(timeout time.Duration, logger zerolog.Logger) *Session {
	return &Session{
		timeout: timeout,
		logger:  logger.With().Str("component", "session").Logger(),
	}
}

// Authenticate exchanges the client credentials for a bearer token and
// stores it. The identifier and secret travel in the form body:
//
//	grant_type=client_credentials&client_id=<id>&client_secret=<secret>
//
// On failure the credential stays unset, the error is logged and also
// returned; callers may keep using the session and will get
// ErrNoCredential on every authorized call.
func (s *Session) Authenticate(ctx context.Context, creds Credentials) error {
	cc := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: s.timeout})

	tok, err := cc.Token(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Credential exchange failed")
		return fmt.Errorf("failed to exchange client credentials: %w", err)
	}

	s.SetCredential(tok.AccessToken)
	s.logger.Debug().Msg("Credential obtained")
	return nil
}

// SetCredential replaces the bearer token.
func (s *Session) SetCredential(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Credential returns the bearer token, or "" if unset.
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Token implements oauth2.TokenSource. The returned token carries no
// expiry, so the oauth2 transport never tries to renew it.
func (s *Session) Token() (*oauth2.Token, error) {
	tok := s.Credential()
	if tok == "" {
		return nil, ErrNoCredential
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// HTTPClient returns a client that adds "Authorization: Bearer <token>"
// to every request.
func (s *Session) HTTPClient() *http.Client {
	return &http.Client{
		Timeout: s.timeout,
		Transport: &oauth2.Transport{
			Source: s,
			Base:   http.DefaultTransport,
		},
	}
}
