package handlers

import (
	"errors"
	"net/http"

	"sales-crm/internal/middleware"
	"sales-crm/internal/models"
	"sales-crm/internal/tokenstore"
	"sales-crm/internal/utils"
	"sales-crm/internal/views"
)

// RegisterUser handles self-service signup of representatives and managers.
func (c *CRMHandlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var payload models.UserForm
	if !decode(w, r, &payload) {
		return
	}
	user, err := c.Sessions.Signup(r.Context(), payload)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	c.Log.Info("registered %s as %s", user.Username, user.Role)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginUser handles user login and JWT generation.
func (c *CRMHandlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var payload models.UserLoginPayload
	if !decode(w, r, &payload) {
		return
	}
	_, user, err := c.Sessions.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		c.Log.Error("Error generating JWT: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"token":    token,
		"user":     user,
		"sections": views.Sections(user.Role),
	})
}

// LogoutUser ends the caller's session and revokes the bearer token it used,
// so the token cannot resume a new one.
func (c *CRMHandlers) LogoutUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := c.revokeToken(r); err != nil {
		c.Log.Error("could not revoke token of %s: %v", userID, err)
		utils.RespondError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	c.Sessions.Drop(userID)
	if err := c.TokenStore.DeleteIDToken(userID); err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		c.Log.Warn("could not drop id token of %s: %v", userID, err)
	}
	utils.RespondMessage(w, http.StatusOK, "Logged out")
}

// revokeToken is a no-op for tokens issued without an id.
func (c *CRMHandlers) revokeToken(r *http.Request) error {
	id := middleware.TokenID(r.Context())
	if id == "" {
		return nil
	}
	return c.TokenStore.RevokeToken(id, middleware.TokenExpiry(r.Context()))
}

// GetProfile returns the current user and the sections their role may open.
func (c *CRMHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	user := svc.CurrentUser()
	snap := svc.Snapshot()
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user":     user,
		"sections": views.Sections(user.Role),
		"loading":  snap.Loading,
		"error":    snap.Error,
	})
}

// Reload refreshes the caller's snapshot from the database.
func (c *CRMHandlers) Reload(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := svc.Reload(r.Context()); err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Reloaded")
}
