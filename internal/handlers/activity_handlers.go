package handlers

import (
	"net/http"

	"sales-crm/internal/models"
	"sales-crm/internal/utils"
	"sales-crm/internal/views"
)

type activityView struct {
	models.Activity
	TypeLabel  string `json:"typeLabel"`
	RecordedBy string `json:"recordedBy"`
}

func (c *CRMHandlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	activities := svc.Activities()
	out := make([]activityView, 0, len(activities))
	for _, a := range activities {
		out = append(out, activityView{
			Activity:   a,
			TypeLabel:  views.ActivityTypeLabel(a.ActivityType),
			RecordedBy: svc.UserName(a.RecordedByUserID),
		})
	}
	utils.RespondJSON(w, http.StatusOK, out)
}

func (c *CRMHandlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var form models.ActivityForm
	if !decode(w, r, &form) {
		return
	}
	activity, err := svc.AddActivity(r.Context(), form)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, activity)
}
