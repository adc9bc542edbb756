package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"sales-crm/internal/models"
	"sales-crm/internal/utils"
	"sales-crm/internal/views"
)

type userView struct {
	models.User
	RoleStyle models.Style `json:"roleStyle"`
}

func (c *CRMHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	users, err := svc.Users()
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	stats, err := svc.UserStats()
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{User: u, RoleStyle: views.RoleStyle(u.Role)})
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"users": out,
		"stats": stats,
	})
}

// SalesReps lists the representatives, for assignment pickers.
func (c *CRMHandlers) SalesReps(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	reps, err := svc.SalesReps()
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, reps)
}

func (c *CRMHandlers) AddUser(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var form models.UserForm
	if !decode(w, r, &form) {
		return
	}
	user, err := svc.AddUser(r.Context(), form)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, user)
}

type activePayload struct {
	IsActive *bool `json:"isActive"`
}

// SetUserActive toggles a user's access. A deactivated user's live session is dropped.
func (c *CRMHandlers) SetUserActive(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var payload activePayload
	if !decode(w, r, &payload) {
		return
	}
	if payload.IsActive == nil {
		utils.RespondError(w, http.StatusBadRequest, "isActive is required")
		return
	}
	id := mux.Vars(r)["id"]
	if err := svc.SetUserActive(r.Context(), id, *payload.IsActive); err != nil {
		c.respondServiceError(w, err)
		return
	}
	if !*payload.IsActive {
		c.Sessions.Drop(id)
	}
	utils.RespondMessage(w, http.StatusOK, "User updated")
}

// DeleteUser removes a user together with everything they own.
func (c *CRMHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := svc.DeleteUser(r.Context(), id); err != nil {
		c.respondServiceError(w, err)
		return
	}
	c.Sessions.Drop(id)
	utils.RespondMessage(w, http.StatusOK, "User deleted")
}
