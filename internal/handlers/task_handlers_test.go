package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/auth"
	"sales-crm/internal/config"
	"sales-crm/internal/convert"
	"sales-crm/internal/crm"
	"sales-crm/internal/database"
	"sales-crm/internal/logger"
	"sales-crm/internal/models"
)

func TestListTasksStylesWithSessionClock(t *testing.T) {
	ctx := context.Background()
	dm, err := database.NewDBManager(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "crm.db")}, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, dm.Connect(ctx))
	t.Cleanup(func() { dm.Close() })
	require.NoError(t, dm.ApplyMigrations(ctx))
	store, err := dm.Store()
	require.NoError(t, err)

	pinned := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return pinned })
	row, err := store.Insert(ctx, models.CollectionUsers, convert.UserRow(models.User{
		Username: "rana", Name: "Rana", Role: models.RoleSalesRepresentative, IsActive: true,
	}))
	require.NoError(t, err)
	rep, err := convert.User(row)
	require.NoError(t, err)
	_, err = store.Insert(ctx, models.CollectionTasks, convert.TaskRow(models.Task{
		AssignedToUserID: rep.ID,
		TaskDescription:  "call back",
		DueDate:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		TaskStatus:       models.TaskStatusPending,
		TaskType:         models.TaskTypeNewCustomerFollowup,
		CreationDate:     pinned,
		CreatedByUserID:  rep.ID,
	}))
	require.NoError(t, err)

	c := &CRMHandlers{
		Sessions: crm.NewRegistry(func() *crm.Service {
			return crm.NewService(store, auth.NoCheckVerifier{}, logger.NewNop(),
				crm.WithClock(func() time.Time { return pinned }), crm.WithLocation(time.UTC))
		}, 0, logger.NewNop()),
		Log: logger.NewNop(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req = req.WithContext(context.WithValue(req.Context(), models.UserIDContextKey, rep.ID))
	rec := httptest.NewRecorder()
	c.ListTasks(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Tasks []taskView       `json:"tasks"`
			Stats models.TaskStats `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Tasks, 1)
	assert.Equal(t, "Pending", body.Data.Tasks[0].StatusStyle.Label, "not yet due on the session's calendar")
	assert.Equal(t, 0, body.Data.Stats.Overdue)
}
