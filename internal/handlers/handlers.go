package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sales-crm/internal/config"
	"sales-crm/internal/convert"
	"sales-crm/internal/crm"
	"sales-crm/internal/datastore"
	"sales-crm/internal/logger"
	"sales-crm/internal/middleware"
	"sales-crm/internal/oidc"
	"sales-crm/internal/tokenstore"
	"sales-crm/internal/utils"
)

type CRMHandlers struct {
	Sessions   *crm.Registry
	Store      datastore.Store
	TokenStore tokenstore.TokenStore
	OIDC       *oidc.Provider
	Config     *config.Config
	Log        logger.Logger
}

// session returns the caller's session service, answering the request itself on failure.
func (c *CRMHandlers) session(w http.ResponseWriter, r *http.Request) (*crm.Service, bool) {
	svc, err := c.Sessions.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		c.respondServiceError(w, err)
		return nil, false
	}
	return svc, true
}

// respondServiceError maps service errors onto HTTP statuses. Unexpected
// failures are logged and reported without detail.
func (c *CRMHandlers) respondServiceError(w http.ResponseWriter, err error) {
	var (
		ve *crm.ValidationError
		ce *crm.CascadeError
	)
	switch {
	case errors.As(err, &ve):
		utils.RespondError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, crm.ErrNotAuthenticated), errors.Is(err, crm.ErrInvalidCredentials):
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, crm.ErrForbidden):
		utils.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, crm.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, crm.ErrUsernameTaken):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &ce):
		c.Log.Error("user deletion failed at %s: %v", ce.Step, ce.Err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete user")
	default:
		c.Log.Error("request failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// dateParam reads a calendar date from the query string, defaulting to today.
func (c *CRMHandlers) dateParam(r *http.Request) (time.Time, error) {
	return c.parseDate(r.URL.Query().Get("date"))
}

// parseDate accepts a bare date or a full timestamp. Empty means today.
func (c *CRMHandlers) parseDate(s string) (time.Time, error) {
	loc := c.Config.Location()
	if s == "" {
		return time.Now().In(loc), nil
	}
	if d, err := time.ParseInLocation(convert.DateLayout, s, loc); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}
