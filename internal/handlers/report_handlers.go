package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"sales-crm/internal/export"
	"sales-crm/internal/models"
	"sales-crm/internal/utils"
)

type reportPayload struct {
	SalesRepresentativeID string `json:"salesRepresentativeId"`
	Date                  string `json:"date"`
	Notes                 string `json:"notes"`
}

type reportView struct {
	models.DailyReport
	RepName string `json:"repName"`
}

// GenerateReport computes and stores a daily report. Representatives always
// report on themselves.
func (c *CRMHandlers) GenerateReport(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var payload reportPayload
	if !decode(w, r, &payload) {
		return
	}
	day, err := c.parseDate(payload.Date)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	report, err := svc.GenerateDailyReport(r.Context(), models.ReportRequest{
		SalesRepresentativeID: payload.SalesRepresentativeID,
		Date:                  day,
		Notes:                 payload.Notes,
	})
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, reportView{DailyReport: report, RepName: svc.UserName(report.SalesRepresentativeID)})
}

// ListReports returns the reports of ?date= (default today) with overall totals.
func (c *CRMHandlers) ListReports(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	day, err := c.dateParam(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	reports, err := svc.ReportsForDate(day)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	totals, err := svc.OverallTotals()
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	out := make([]reportView, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportView{DailyReport: rep, RepName: svc.UserName(rep.SalesRepresentativeID)})
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"date":    day.Format("2006-01-02"),
		"reports": out,
		"totals":  totals,
	})
}

func (c *CRMHandlers) ReportDetails(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	details, err := svc.ReportDetails(mux.Vars(r)["id"])
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, details)
}

// RepPerformance lists all-time figures per representative.
func (c *CRMHandlers) RepPerformance(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	perf, err := svc.RepPerformances()
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, perf)
}

// ExportReports downloads the reports of ?date= as a spreadsheet.
func (c *CRMHandlers) ExportReports(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	day, err := c.dateParam(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	reports, err := svc.ReportsForDate(day)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	data, err := export.DailyReportsXLSX(day, reports, svc.Snapshot().Users)
	if err != nil {
		c.Log.Error("report export failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to export reports")
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(day)))
	_, _ = w.Write(data)
}
