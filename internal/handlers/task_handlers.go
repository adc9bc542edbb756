package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"sales-crm/internal/models"
	"sales-crm/internal/utils"
	"sales-crm/internal/views"
)

type taskView struct {
	models.Task
	StatusStyle  models.Style `json:"statusStyle"`
	TypeLabel    string       `json:"typeLabel"`
	AssigneeName string       `json:"assigneeName"`
}

// ListTasks returns the visible tasks ordered by due date with their counts.
// status=overdue selects pending tasks already past due.
func (c *CRMHandlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	f := models.TaskFilters{
		Status:     q.Get("status"),
		Type:       q.Get("type"),
		AssignedTo: q.Get("assignedTo"),
	}
	tasks := svc.Tasks(f)
	now := svc.Now()
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView{
			Task:         t,
			StatusStyle:  views.TaskStatusStyle(t, now),
			TypeLabel:    views.TaskTypeLabel(t.TaskType),
			AssigneeName: svc.UserName(t.AssignedToUserID),
		})
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": out,
		"stats": svc.TaskStats(f),
	})
}

// TodaysTasks lists the follow-ups derived for today. They are not stored.
func (c *CRMHandlers) TodaysTasks(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, svc.TodaysTasks())
}

func (c *CRMHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var form models.TaskForm
	if !decode(w, r, &form) {
		return
	}
	task, err := svc.AddTask(r.Context(), form)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, task)
}

func (c *CRMHandlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	task, err := svc.CompleteTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, task)
}
