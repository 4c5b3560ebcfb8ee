package token

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

// ClientConfig is one provider's OAuth client registration
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// OAuth2Refresher performs refresh-token grants with golang.org/x/oauth2
type OAuth2Refresher struct {
	configs map[string]*oauth2.Config
	client  *http.Client
}

// NewOAuth2Refresher builds a refresher for the given providers. client may be nil
// to use http.DefaultClient.
func NewOAuth2Refresher(clients map[string]ClientConfig, client *http.Client) *OAuth2Refresher {
	configs := make(map[string]*oauth2.Config, len(clients))
	for provider, c := range clients {
		configs[provider] = &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  c.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		}
	}
	return &OAuth2Refresher{configs: configs, client: client}
}

// Refresh exchanges refreshToken for a new access token
func (r *OAuth2Refresher) Refresh(ctx context.Context, provider, refreshToken string) (*Refreshed, error) {
	cfg, ok := r.configs[provider]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgNoProviderConfig, provider, domain.ErrInvalidProvider)
	}

	if r.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.client)
	}

	// A token with no access token is never valid, so the source always hits the endpoint
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, err
	}

	refreshed := &Refreshed{
		AccessToken: tok.AccessToken,
		ExpiresIn:   lifetime(tok),
	}
	if tok.RefreshToken != refreshToken {
		refreshed.RefreshToken = tok.RefreshToken
	}
	return refreshed, nil
}

// lifetime reads expires_in from the raw response, falling back to Expiry.
func lifetime(tok *oauth2.Token) time.Duration {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v) * time.Second
	case string:
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	return time.Until(tok.Expiry).Round(time.Second)
}
