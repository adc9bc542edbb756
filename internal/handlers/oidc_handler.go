package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"sales-crm/internal/convert"
	"sales-crm/internal/datastore"
	"sales-crm/internal/middleware"
	"sales-crm/internal/models"
	"sales-crm/internal/utils"
)

const oidcStateCookie = "oidc_state"

func (c *CRMHandlers) oidcEnabled(w http.ResponseWriter) bool {
	if c.OIDC == nil {
		utils.RespondError(w, http.StatusNotFound, "Single sign-on is not configured")
		return false
	}
	return true
}

// findUserByEmail matches a provider identity to an existing active account.
// Single sign-on never creates users.
func (c *CRMHandlers) findUserByEmail(r *http.Request, email string) (*models.User, error) {
	rows, err := c.Store.Select(r.Context(), models.CollectionUsers, datastore.And(
		datastore.Eq("email", email),
		datastore.Eq("is_active", true),
	))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	user, err := convert.User(rows[0])
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *CRMHandlers) OIDCLoginHandler(w http.ResponseWriter, r *http.Request) {
	if !c.oidcEnabled(w) {
		return
	}
	state, err := utils.GenerateOIDCState()
	if err != nil {
		c.Log.Error("Failed to generate random state: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to start single sign-on")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oidcStateCookie,
		Value:    state,
		Path:     "/login/oidc",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   c.Config.TLSEnabled(),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, c.OIDC.OauthConfig.AuthCodeURL(state), http.StatusFound)
}

func (c *CRMHandlers) OIDCCallbackHandler(w http.ResponseWriter, r *http.Request) {
	if !c.oidcEnabled(w) {
		return
	}
	ctx := r.Context()
	cookie, err := r.Cookie(oidcStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		utils.RespondError(w, http.StatusBadRequest, "Invalid single sign-on state")
		return
	}

	claims, token, rawIDToken, err := c.OIDC.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		c.Log.Warn("oidc callback: %v", err)
		utils.RespondError(w, http.StatusUnauthorized, "Single sign-on failed")
		return
	}
	if claims.Email == "" {
		utils.RespondError(w, http.StatusUnauthorized, "Identity provider returned no email")
		return
	}

	user, err := c.findUserByEmail(r, claims.Email)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	if user == nil {
		c.Log.Info("oidc login for %s (%s) has no active account", claims.Email, utils.UsernameFromEmail(claims.Email))
		utils.RespondError(w, http.StatusForbidden, "No active account for this email")
		return
	}
	if _, err := c.Sessions.Get(ctx, user.ID); err != nil {
		c.respondServiceError(w, err)
		return
	}

	jwtToken, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		c.Log.Error("JWT generation failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}
	if err := c.TokenStore.SaveIDToken(user.ID, rawIDToken, token.Expiry); err != nil {
		c.Log.Warn("Failed to save ID token of %s: %v", user.ID, err)
	}

	redirectURL := fmt.Sprintf("%s/oidc/callback?token=%s", c.Config.WebUIURL, url.QueryEscape(jwtToken))
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func (c *CRMHandlers) OIDCLogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !c.oidcEnabled(w) {
		return
	}
	userID := middleware.UserID(r.Context())
	idToken, err := c.TokenStore.GetIDToken(userID)
	if err != nil {
		c.Log.Debug("no id token for %s: %v", userID, err)
		idToken = ""
	}
	if err := c.revokeToken(r); err != nil {
		c.Log.Warn("could not revoke token of %s: %v", userID, err)
	}
	c.Sessions.Drop(userID)
	_ = c.TokenStore.DeleteIDToken(userID)
	http.Redirect(w, r, utils.LogoutURL(c.OIDC.LogoutURL, idToken, c.Config.WebUIURL+"/login"), http.StatusFound)
}
