package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/config"
	"sales-crm/internal/models"
)

func TestJWT(t *testing.T) {
	SetJWTSecret("test-secret", time.Hour)

	token, err := GenerateJWT("user-1", models.RoleSalesManager)
	require.NoError(t, err)
	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleSalesManager, claims.Role)

	_, err = ParseJWT(token + "x")
	assert.Error(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseJWT(expired)
	assert.Error(t, err)

	SetJWTSecret("other-secret", 0)
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]int{"n": 1})
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"n":1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No Content", resp.Message)

	rec = httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "record not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"record not found"}`, rec.Body.String())
}

func TestOidcHelpers(t *testing.T) {
	assert.Equal(t, []string{"issuer_url", "client_id", "redirect_uri"}, MissingOidcParams(config.OIDCConfig{}))
	assert.Empty(t, MissingOidcParams(config.OIDCConfig{IssuerURL: "https://id", ClientID: "crm", RedirectURI: "https://crm/cb"}))
	assert.Equal(t, "rana", UsernameFromEmail("rana@example.com"))
	assert.Equal(t, "https://id/logout?id_token_hint=tok&post_logout_redirect_uri=https%3A%2F%2Fcrm%2Flogin",
		LogoutURL("https://id/logout", "tok", "https://crm/login"))
	assert.Equal(t, "https://id/logout", LogoutURL("https://id/logout", "", ""))

	state, err := GenerateOIDCState()
	require.NoError(t, err)
	assert.Len(t, state, 43)
}
