package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/config"
	"sales-crm/internal/export"
	"sales-crm/internal/logger"
	"sales-crm/internal/models"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func newTestApi(t *testing.T) *client {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Database.Path = filepath.Join(dir, "crm.db")
	cfg.Auth.TokenStorePath = filepath.Join(dir, "tokens.db")
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Timezone = "UTC"
	require.NoError(t, cfg.Validate())

	a := NewApi(cfg, logger.NewNop())
	require.NoError(t, a.Setup(context.Background()))
	t.Cleanup(a.Stop)
	return &client{t: t, handler: a.Handler()}
}

func (c *client) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

// call expects status and decodes the response data into out when given.
func (c *client) call(method, path, token string, body interface{}, status int, out interface{}) {
	c.t.Helper()
	rec := c.do(method, path, token, body)
	require.Equal(c.t, status, rec.Code, rec.Body.String())
	if out == nil {
		return
	}
	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(c.t, json.Unmarshal(env.Data, out))
}

func (c *client) login(username, password string) (string, models.User) {
	c.t.Helper()
	var resp struct {
		Token    string      `json:"token"`
		User     models.User `json:"user"`
		Sections []string    `json:"sections"`
	}
	c.call(http.MethodPost, "/login", "", models.UserLoginPayload{Username: username, Password: password}, http.StatusOK, &resp)
	require.NotEmpty(c.t, resp.Token)
	return resp.Token, resp.User
}

func TestSalesFlow(t *testing.T) {
	c := newTestApi(t)

	c.call(http.MethodPost, "/register", "", models.UserForm{Username: "mona", Password: "pw-mona", Name: "Mona", Role: models.RoleSalesManager}, http.StatusCreated, nil)
	c.call(http.MethodPost, "/register", "", models.UserForm{Username: "rana", Password: "pw-rana", Name: "Rana"}, http.StatusCreated, nil)
	c.call(http.MethodPost, "/register", "", models.UserForm{Username: "rana", Password: "x", Name: "Again"}, http.StatusConflict, nil)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/login", "", models.UserLoginPayload{Username: "rana", Password: "wrong"}).Code)

	mgrToken, _ := c.login("mona", "pw-mona")
	repToken, rep := c.login("rana", "pw-rana")

	var customer models.Customer
	c.call(http.MethodPost, "/api/customers", mgrToken, models.CustomerForm{Name: "Acme", PhoneNumber: "555", AssignedSalesRepID: rep.ID}, http.StatusCreated, &customer)
	assert.Equal(t, rep.ID, customer.AssignedSalesRepID)
	c.call(http.MethodPost, "/api/customers", mgrToken, models.CustomerForm{PhoneNumber: "555"}, http.StatusBadRequest, nil)

	c.call(http.MethodPost, "/api/reload", repToken, nil, http.StatusOK, nil)
	var customers []struct {
		ID              string `json:"id"`
		AssignedRepName string `json:"assignedRepName"`
	}
	c.call(http.MethodGet, "/api/customers", repToken, nil, http.StatusOK, &customers)
	require.Len(t, customers, 1)
	assert.Equal(t, "Rana", customers[0].AssignedRepName)

	var tasks struct {
		Tasks []models.Task    `json:"tasks"`
		Stats models.TaskStats `json:"stats"`
	}
	c.call(http.MethodGet, "/api/tasks", repToken, nil, http.StatusOK, &tasks)
	require.Len(t, tasks.Tasks, 1)
	assert.Equal(t, models.TaskTypeNewCustomerFollowup, tasks.Tasks[0].TaskType)

	var done models.Task
	c.call(http.MethodPost, "/api/tasks/"+tasks.Tasks[0].ID+"/complete", repToken, nil, http.StatusOK, &done)
	assert.Equal(t, models.TaskStatusCompleted, done.TaskStatus)

	var deal models.Deal
	c.call(http.MethodPost, "/api/deals", repToken, models.DealForm{
		CustomerID: customer.ID, Service: "hosting", LeadSource: "referral", DealDetails: "yearly plan",
		DealValue: 1200, Status: models.DealStatusCompleted,
	}, http.StatusCreated, &deal)
	assert.Equal(t, rep.ID, deal.SalesRepresentativeID)

	c.call(http.MethodGet, "/api/users", repToken, nil, http.StatusForbidden, nil)
	c.call(http.MethodGet, "/api/reports", repToken, nil, http.StatusForbidden, nil)

	c.call(http.MethodPost, "/api/reload", mgrToken, nil, http.StatusOK, nil)
	today := time.Now().UTC().Format("2006-01-02")
	var report models.DailyReport
	c.call(http.MethodPost, "/api/reports", mgrToken, map[string]string{"salesRepresentativeId": rep.ID, "date": today}, http.StatusCreated, &report)
	assert.Equal(t, rep.ID, report.SalesRepresentativeID)

	var listed struct {
		Reports []models.DailyReport `json:"reports"`
		Totals  models.OverallTotals `json:"totals"`
	}
	c.call(http.MethodGet, "/api/reports?date="+today, mgrToken, nil, http.StatusOK, &listed)
	assert.Len(t, listed.Reports, 1)
	assert.Equal(t, 1200.0, listed.Totals.TotalRevenue)

	rec := c.do(http.MethodGet, "/api/reports/export?date="+today, mgrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "daily_reports_"+today+".xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	c.call(http.MethodGet, "/api/reports/missing", mgrToken, nil, http.StatusNotFound, nil)
}

func TestDeactivatedUserLosesSession(t *testing.T) {
	c := newTestApi(t)
	c.call(http.MethodPost, "/register", "", models.UserForm{Username: "mona", Password: "pw", Name: "Mona", Role: models.RoleSalesManager}, http.StatusCreated, nil)
	c.call(http.MethodPost, "/register", "", models.UserForm{Username: "rana", Password: "pw", Name: "Rana"}, http.StatusCreated, nil)
	mgrToken, mgr := c.login("mona", "pw")
	repToken, rep := c.login("rana", "pw")

	c.call(http.MethodPut, "/api/users/"+mgr.ID+"/active", mgrToken, map[string]bool{"isActive": false}, http.StatusForbidden, nil)
	c.call(http.MethodPut, "/api/users/"+rep.ID+"/active", mgrToken, map[string]bool{"isActive": false}, http.StatusOK, nil)
	c.call(http.MethodPut, "/api/users/missing/active", mgrToken, map[string]bool{"isActive": false}, http.StatusNotFound, nil)

	c.call(http.MethodGet, "/api/profile", repToken, nil, http.StatusUnauthorized, nil)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/login", "", models.UserLoginPayload{Username: "rana", Password: "pw"}).Code)

	c.call(http.MethodDelete, "/api/users/"+rep.ID, mgrToken, nil, http.StatusOK, nil)
	var users struct {
		Users []models.User    `json:"users"`
		Stats models.UserStats `json:"stats"`
	}
	c.call(http.MethodGet, "/api/users", mgrToken, nil, http.StatusOK, &users)
	assert.Len(t, users.Users, 1)
}

func TestLogoutEndsSession(t *testing.T) {
	c := newTestApi(t)
	c.call(http.MethodPost, "/register", "", models.UserForm{Username: "rana", Password: "pw", Name: "Rana"}, http.StatusCreated, nil)
	token, _ := c.login("rana", "pw")
	c.call(http.MethodGet, "/api/profile", token, nil, http.StatusOK, nil)

	c.call(http.MethodPost, "/api/logout", token, nil, http.StatusOK, nil)
	c.call(http.MethodGet, "/api/profile", token, nil, http.StatusUnauthorized, nil)
	c.call(http.MethodGet, "/dash/stats", token, nil, http.StatusUnauthorized, nil)
	c.call(http.MethodPost, "/api/logout", token, nil, http.StatusUnauthorized, nil)

	fresh, _ := c.login("rana", "pw")
	assert.NotEqual(t, token, fresh)
	c.call(http.MethodGet, "/api/profile", fresh, nil, http.StatusOK, nil)
	c.call(http.MethodGet, "/api/profile", token, nil, http.StatusUnauthorized, nil)
}

func TestPublicAndAdminRoutes(t *testing.T) {
	c := newTestApi(t)

	c.call(http.MethodGet, "/api/customers", "", nil, http.StatusUnauthorized, nil)
	c.call(http.MethodGet, "/api/customers", "not-a-token", nil, http.StatusUnauthorized, nil)
	c.call(http.MethodGet, "/admin/health/API", "", nil, http.StatusOK, nil)
	c.call(http.MethodGet, "/admin/health/DB", "", nil, http.StatusOK, nil)
	c.call(http.MethodGet, "/admin/health/system", "", nil, http.StatusUnauthorized, nil)
	c.call(http.MethodGet, "/login/oidc", "", nil, http.StatusNotFound, nil)

	rec := c.do(http.MethodGet, "/admin/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sales_crm_active_sessions")
}
