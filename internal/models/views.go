package models

import "time"

// CustomerFilters narrows a customer list. Empty fields mean no restriction.
type CustomerFilters struct {
	Search           string `json:"search"`
	AssignedSalesRep string `json:"assignedSalesRep"`
	CustomerStatus   string `json:"customerStatus"`
}

type DealFilters struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Service  string `json:"service"`
	SalesRep string `json:"salesRep"`
}

type TaskFilters struct {
	Status     string `json:"status"`
	Type       string `json:"type"`
	AssignedTo string `json:"assignedTo"`
}

// Style is a display class pair for a status badge.
type Style struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalCustomers int     `json:"totalCustomers"`
	TotalDeals     int     `json:"totalDeals"`
	CompletedDeals int     `json:"completedDeals"`
	TotalRevenue   float64 `json:"totalRevenue"`
	PendingTasks   int     `json:"pendingTasks"`
	OverdueTasks   int     `json:"overdueTasks"`
}

type TaskStats struct {
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`
}

// ReportDetails lists the records a daily report counted.
type ReportDetails struct {
	Report         DailyReport `json:"report"`
	WindowStart    time.Time   `json:"windowStart"`
	WindowEnd      time.Time   `json:"windowEnd"`
	NewCustomers   []Customer  `json:"newCustomers"`
	CompletedDeals []Deal      `json:"completedDeals"`
}

type OverallTotals struct {
	TotalCustomers int     `json:"totalCustomers"`
	TotalDeals     int     `json:"totalDeals"`
	CompletedDeals int     `json:"completedDeals"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// RepPerformance is one representative's all-time figures.
type RepPerformance struct {
	Rep            User    `json:"rep"`
	Customers      int     `json:"customers"`
	Deals          int     `json:"deals"`
	CompletedDeals int     `json:"completedDeals"`
	Revenue        float64 `json:"revenue"`
}

type UserStats struct {
	Representatives int `json:"representatives"`
	Managers        int `json:"managers"`
	Active          int `json:"active"`
}

// ContextKey for storing user ID in context.
type ContextKey string

const (
	UserIDContextKey      ContextKey = "userID"
	RoleContextKey        ContextKey = "role"
	TokenIDContextKey     ContextKey = "tokenID"
	TokenExpiryContextKey ContextKey = "tokenExpiry"
)
