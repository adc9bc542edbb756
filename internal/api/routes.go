package api

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sales-crm/internal/middleware"
)

func (a *Api) SetupAllRoutes() {
	a.router.Use(middleware.RequestLogger(a.log))

	a.authRouter = a.router.PathPrefix("/api").Subrouter()
	a.authRouter.Use(middleware.AuthMiddleware, middleware.RejectRevoked(a.tokenStore, a.log))
	a.dashRouter = a.router.PathPrefix("/dash").Subrouter()
	a.dashRouter.Use(middleware.AuthMiddleware, middleware.RejectRevoked(a.tokenStore, a.log))
	a.adminRouter = a.router.PathPrefix("/admin").Subrouter()

	a.SetupAuthenticationRoutes()
	a.SetupCustomerRoutes()
	a.SetupDealRoutes()
	a.SetupActivityRoutes()
	a.SetupTaskRoutes()
	a.SetupReportRoutes()
	a.SetupUserRoutes()
	a.SetupDashboardRoutes()
	a.SetupAdminRoutes()
}

func (a *Api) SetupAuthenticationRoutes() {
	a.router.HandleFunc("/register", a.CRMHandlers.RegisterUser).Methods("POST")
	a.router.HandleFunc("/login", a.CRMHandlers.LoginUser).Methods("POST")
	a.router.HandleFunc("/login/oidc", a.CRMHandlers.OIDCLoginHandler).Methods("GET")
	a.router.HandleFunc("/login/oidc/callback", a.CRMHandlers.OIDCCallbackHandler).Methods("GET")
	a.authRouter.HandleFunc("/logout", a.CRMHandlers.LogoutUser).Methods("POST")
	a.authRouter.HandleFunc("/logout/oidc", a.CRMHandlers.OIDCLogoutHandler).Methods("GET")
	a.authRouter.HandleFunc("/profile", a.CRMHandlers.GetProfile).Methods("GET")
	a.authRouter.HandleFunc("/reload", a.CRMHandlers.Reload).Methods("POST")
}

func (a *Api) SetupCustomerRoutes() {
	a.authRouter.HandleFunc("/customers", a.CRMHandlers.CreateCustomer).Methods("POST")
	a.authRouter.HandleFunc("/customers", a.CRMHandlers.ListCustomers).Methods("GET")
	a.authRouter.HandleFunc("/customers/{id}", a.CRMHandlers.GetCustomer).Methods("GET")
	a.authRouter.HandleFunc("/customers/{id}", a.CRMHandlers.UpdateCustomer).Methods("PUT")
}

func (a *Api) SetupDealRoutes() {
	a.authRouter.HandleFunc("/deals", a.CRMHandlers.CreateDeal).Methods("POST")
	a.authRouter.HandleFunc("/deals", a.CRMHandlers.ListDeals).Methods("GET")
	a.authRouter.HandleFunc("/deals/{id}", a.CRMHandlers.UpdateDeal).Methods("PUT")
}

func (a *Api) SetupActivityRoutes() {
	a.authRouter.HandleFunc("/activities", a.CRMHandlers.CreateActivity).Methods("POST")
	a.authRouter.HandleFunc("/activities", a.CRMHandlers.ListActivities).Methods("GET")
}

func (a *Api) SetupTaskRoutes() {
	a.authRouter.HandleFunc("/tasks", a.CRMHandlers.CreateTask).Methods("POST")
	a.authRouter.HandleFunc("/tasks", a.CRMHandlers.ListTasks).Methods("GET")
	a.authRouter.HandleFunc("/tasks/today", a.CRMHandlers.TodaysTasks).Methods("GET")
	a.authRouter.HandleFunc("/tasks/{id}/complete", a.CRMHandlers.CompleteTask).Methods("POST")
}

// SetupReportRoutes registers report generation for everyone and the
// overview endpoints for elevated roles.
func (a *Api) SetupReportRoutes() {
	a.authRouter.HandleFunc("/reports", a.CRMHandlers.GenerateReport).Methods("POST")

	reports := a.authRouter.PathPrefix("/reports").Subrouter()
	reports.Use(middleware.RequireElevated)
	reports.HandleFunc("", a.CRMHandlers.ListReports).Methods("GET")
	reports.HandleFunc("/export", a.CRMHandlers.ExportReports).Methods("GET")
	reports.HandleFunc("/performance", a.CRMHandlers.RepPerformance).Methods("GET")
	reports.HandleFunc("/{id}", a.CRMHandlers.ReportDetails).Methods("GET")
}

func (a *Api) SetupUserRoutes() {
	a.authRouter.HandleFunc("/sales-reps", a.CRMHandlers.SalesReps).Methods("GET")

	users := a.authRouter.PathPrefix("/users").Subrouter()
	users.Use(middleware.RequireElevated)
	users.HandleFunc("", a.CRMHandlers.ListUsers).Methods("GET")
	users.HandleFunc("", a.CRMHandlers.AddUser).Methods("POST")
	users.HandleFunc("/{id}/active", a.CRMHandlers.SetUserActive).Methods("PUT")
	users.HandleFunc("/{id}", a.CRMHandlers.DeleteUser).Methods("DELETE")
}

func (a *Api) SetupDashboardRoutes() {
	a.dashRouter.HandleFunc("/stats", a.CRMHandlers.GetDashboardStats).Methods("GET")
	a.dashRouter.HandleFunc("/labels", a.CRMHandlers.GetLabels).Methods("GET")
	a.dashRouter.HandleFunc("/sections", a.CRMHandlers.GetSections).Methods("GET")
}

func (a *Api) SetupAdminRoutes() {
	a.adminRouter.HandleFunc("/health/API", a.CRMHandlers.Hello).Methods("GET")
	a.adminRouter.HandleFunc("/health/DB", a.CRMHandlers.DBPing).Methods("GET")
	a.adminRouter.Handle("/metrics", promhttp.Handler()).Methods("GET")

	system := a.adminRouter.PathPrefix("/health/system").Subrouter()
	system.Use(middleware.AuthMiddleware, middleware.RejectRevoked(a.tokenStore, a.log), middleware.RequireElevated)
	system.HandleFunc("", a.CRMHandlers.SystemHealth).Methods("GET")
}
