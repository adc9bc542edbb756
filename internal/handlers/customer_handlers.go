package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"sales-crm/internal/models"
	"sales-crm/internal/utils"
	"sales-crm/internal/views"
)

// customerView is a customer with its display extras.
type customerView struct {
	models.Customer
	Status           models.Style `json:"status"`
	AssignedRepName  string       `json:"assignedRepName"`
	LatestDealStatus string       `json:"latestDealStatus"`
}

// ListCustomers lists the visible customers, filtered by search, rep and status.
func (c *CRMHandlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	customers := svc.Customers(models.CustomerFilters{
		Search:           q.Get("search"),
		AssignedSalesRep: q.Get("assignedSalesRep"),
		CustomerStatus:   q.Get("customerStatus"),
	})
	out := make([]customerView, 0, len(customers))
	for _, cu := range customers {
		out = append(out, customerView{
			Customer:         cu,
			Status:           views.CustomerStatusStyle(cu.CustomerStatus),
			AssignedRepName:  svc.UserName(cu.AssignedSalesRepID),
			LatestDealStatus: svc.LatestDealStatus(cu.ID),
		})
	}
	utils.RespondJSON(w, http.StatusOK, out)
}

func (c *CRMHandlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	for _, cu := range svc.Customers(models.CustomerFilters{}) {
		if cu.ID == id {
			utils.RespondJSON(w, http.StatusOK, customerView{
				Customer:         cu,
				Status:           views.CustomerStatusStyle(cu.CustomerStatus),
				AssignedRepName:  svc.UserName(cu.AssignedSalesRepID),
				LatestDealStatus: svc.LatestDealStatus(cu.ID),
			})
			return
		}
	}
	utils.RespondError(w, http.StatusNotFound, "Customer not found")
}

func (c *CRMHandlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var form models.CustomerForm
	if !decode(w, r, &form) {
		return
	}
	customer, err := svc.AddCustomer(r.Context(), form)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, customer)
}

func (c *CRMHandlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	svc, ok := c.session(w, r)
	if !ok {
		return
	}
	var patch models.CustomerPatch
	if !decode(w, r, &patch) {
		return
	}
	customer, err := svc.UpdateCustomer(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, customer)
}
