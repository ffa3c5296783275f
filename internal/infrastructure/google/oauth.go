package google

import (
	"context"
	"fmt"

	"github.com/go-cms-api/internal/domain"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// OAuth drives the Google authorization-code flow. The exchanged token's
// id_token is verified with Verifier before any claims are trusted.
type OAuth struct {
	config   *oauth2.Config
	verifier *Verifier
}

func NewOAuth(clientID, clientSecret, redirectURL string) *OAuth {
	return &OAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleoauth.Endpoint,
		},
		verifier: NewVerifier(clientID),
	}
}

// AuthCodeURL builds the consent-screen URL for the given CSRF state.
func (o *OAuth) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange swaps the authorization code for tokens and returns the verified
// identity claims from the id_token.
func (o *OAuth) Exchange(ctx context.Context, code string) (*Payload, error) {
	tok, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange: %w", domain.ErrUnauthorized)
	}
	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return nil, fmt.Errorf("google token missing id_token: %w", domain.ErrUnauthorized)
	}
	return o.verifier.Verify(ctx, rawID)
}
