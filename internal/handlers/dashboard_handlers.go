package handlers

import (
	"net/http"

	"sales-crm/internal/middleware"
	"sales-crm/internal/utils"
	"sales-crm/internal/views"
)

// GetDashboardStats returns the role-scoped counters with today's follow-ups.
func (c *CRMHandlers) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"stats":       svc.Dashboard(),
		"todaysTasks": svc.TodaysTasks(),
	})
}

func (c *CRMHandlers) GetLabels(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, views.AllLabels())
}

func (c *CRMHandlers) GetSections(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, views.Sections(middleware.Role(r.Context())))
}
