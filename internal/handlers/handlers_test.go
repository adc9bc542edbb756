package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/config"
	"sales-crm/internal/crm"
	"sales-crm/internal/logger"
	"sales-crm/internal/utils"
)

func TestRespondServiceError(t *testing.T) {
	c := &CRMHandlers{Log: logger.NewNop()}
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{&crm.ValidationError{Field: "name", Message: "is required"}, http.StatusBadRequest, "invalid name: is required"},
		{crm.ErrNotAuthenticated, http.StatusUnauthorized, crm.ErrNotAuthenticated.Error()},
		{crm.ErrInvalidCredentials, http.StatusUnauthorized, crm.ErrInvalidCredentials.Error()},
		{fmt.Errorf("wrapped: %w", crm.ErrForbidden), http.StatusForbidden, ""},
		{crm.ErrNotFound, http.StatusNotFound, crm.ErrNotFound.Error()},
		{crm.ErrUsernameTaken, http.StatusConflict, crm.ErrUsernameTaken.Error()},
		{&crm.CascadeError{Step: "deals", Err: errors.New("locked")}, http.StatusInternalServerError, "Failed to delete user"},
		{errors.New("disk full"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c.respondServiceError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())

		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		if tc.msg != "" {
			assert.Equal(t, tc.msg, resp.Error)
		}
	}
}

func TestParseDate(t *testing.T) {
	cfg := config.Defaults()
	cfg.Auth.JWTSecret = "x"
	cfg.Timezone = "UTC"
	require.NoError(t, cfg.Validate())
	c := &CRMHandlers{Config: cfg}
	loc := cfg.Location()

	d, err := c.parseDate("2024-03-15")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, loc)))

	d, err = c.parseDate("2024-03-14T22:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day(), "timestamps are read in the configured zone")

	d, err = c.parseDate("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), d, time.Minute)

	_, err = c.parseDate("15/03/2024")
	assert.Error(t, err)
}
