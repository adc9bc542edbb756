package utils

import (
	"net/url"
	"strings"

	"sales-crm/internal/config"
)

// MissingOidcParams names the settings single sign-on still needs.
func MissingOidcParams(p config.OIDCConfig) []string {
	var missing []string
	if p.IssuerURL == "" {
		missing = append(missing, "issuer_url")
	}
	if p.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if p.RedirectURI == "" {
		missing = append(missing, "redirect_uri")
	}
	return missing
}

// UsernameFromEmail is the local part of an address.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// LogoutURL builds the provider's end-session redirect.
func LogoutURL(endSession, idToken, postLogout string) string {
	q := url.Values{}
	if idToken != "" {
		q.Set("id_token_hint", idToken)
	}
	if postLogout != "" {
		q.Set("post_logout_redirect_uri", postLogout)
	}
	if len(q) == 0 {
		return endSession
	}
	return endSession + "?" + q.Encode()
}
