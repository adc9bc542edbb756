package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"sales-crm/internal/models"
	"sales-crm/internal/utils"
	"sales-crm/internal/views"
)

type dealView struct {
	models.Deal
	StatusStyle  models.Style `json:"statusStyle"`
	RepName      string       `json:"repName"`
	CustomerName string       `json:"customerName"`
}

func (c *CRMHandlers) ListDeals(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	deals := svc.Deals(models.DealFilters{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Service:  q.Get("service"),
		SalesRep: q.Get("salesRep"),
	})
	names := make(map[string]string)
	for _, cu := range svc.Snapshot().Customers {
		names[cu.ID] = cu.Name
	}
	out := make([]dealView, 0, len(deals))
	for _, d := range deals {
		out = append(out, dealView{
			Deal:         d,
			StatusStyle:  views.DealStatusStyle(d.Status),
			RepName:      svc.UserName(d.SalesRepresentativeID),
			CustomerName: names[d.CustomerID],
		})
	}
	utils.RespondJSON(w, http.StatusOK, out)
}

// CreateDeal adds a deal, creating its customer first when asked to.
func (c *CRMHandlers) CreateDeal(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var form models.DealForm
	if !decode(w, r, &form) {
		return
	}
	deal, err := svc.AddDeal(r.Context(), form)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, deal)
}

func (c *CRMHandlers) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var patch models.DealPatch
	if !decode(w, r, &patch) {
		return
	}
	deal, err := svc.UpdateDeal(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, deal)
}
