// Package oidc wires the optional single sign-on provider.
package oidc

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"sales-crm/internal/config"
	"sales-crm/internal/utils"
)

// Provider holds what the login and callback handlers need from the identity provider.
type Provider struct {
	Verifier    *oidc.IDTokenVerifier
	OauthConfig *oauth2.Config
	LogoutURL   string
}

// Claims are the identity token fields used to match a local user.
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

func NewProvider(ctx context.Context, cfg config.OIDCConfig) (*Provider, error) {
	if missing := utils.MissingOidcParams(cfg); len(missing) > 0 {
		return nil, fmt.Errorf("oidc: missing %s", strings.Join(missing, ", "))
	}
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc: discover %s: %w", cfg.IssuerURL, err)
	}
	return &Provider{
		Verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		OauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		LogoutURL: cfg.LogoutURL,
	}, nil
}

// Exchange trades an authorization code for the verified identity claims and the raw id token.
func (p *Provider) Exchange(ctx context.Context, code string) (*Claims, *oauth2.Token, string, error) {
	token, err := p.OauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, nil, "", fmt.Errorf("exchange code: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, nil, "", fmt.Errorf("no id_token field in token")
	}
	idToken, err := p.Verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, nil, "", fmt.Errorf("verify id token: %w", err)
	}
	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, nil, "", fmt.Errorf("parse claims: %w", err)
	}
	return &claims, token, rawIDToken, nil
}
