package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/logger"
	"sales-crm/internal/models"
	"sales-crm/internal/tokenstore"
	"sales-crm/internal/utils"
)

func whoAmI(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"id": UserID(r.Context()), "role": string(Role(r.Context()))})
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger.NewNop()))
	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware)
	api.HandleFunc("/me", whoAmI)
	admin := api.PathPrefix("/users").Subrouter()
	admin.Use(RequireElevated)
	admin.HandleFunc("", whoAmI)
	return router
}

func get(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetJWTSecret("middleware-secret", time.Hour)
	router := newRouter()

	assert.Equal(t, http.StatusUnauthorized, get(t, router, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, router, "/api/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, router, "/api/me", "Bearer abc").Code)

	token, err := utils.GenerateJWT("rep-1", models.RoleSalesRepresentative)
	require.NoError(t, err)
	rec := get(t, router, "/api/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"rep-1","role":"sales_representative"}}`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, get(t, router, "/api/users", "Bearer "+token).Code)

	token, err = utils.GenerateJWT("mgr-1", models.RoleSalesManager)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(t, router, "/api/users", "Bearer "+token).Code)
}

func TestRejectRevoked(t *testing.T) {
	utils.SetJWTSecret("middleware-secret", time.Hour)
	store, err := tokenstore.NewBuntDBTokenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var seenID string
	var seenExpiry time.Time
	router := mux.NewRouter()
	router.Use(AuthMiddleware, RejectRevoked(store, logger.NewNop()))
	router.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		seenID, seenExpiry = TokenID(r.Context()), TokenExpiry(r.Context())
		whoAmI(w, r)
	})

	token, err := utils.GenerateJWT("rep-1", models.RoleSalesRepresentative)
	require.NoError(t, err)
	other, err := utils.GenerateJWT("rep-1", models.RoleSalesRepresentative)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, get(t, router, "/me", "Bearer "+token).Code)
	require.NotEmpty(t, seenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), seenExpiry, time.Minute)

	require.NoError(t, store.RevokeToken(seenID, seenExpiry))
	assert.Equal(t, http.StatusUnauthorized, get(t, router, "/me", "Bearer "+token).Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/me", "Bearer "+other).Code, "other tokens of the user stay valid")
}
