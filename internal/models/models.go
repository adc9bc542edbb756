package models

import "time"

// Role is the access level of a user.
type Role string

const (
	RoleSalesRepresentative Role = "sales_representative"
	RoleSalesManager        Role = "sales_manager"
	RoleAdministrator       Role = "administrator"
)

// Roles lists every known role.
var Roles = []Role{RoleSalesRepresentative, RoleSalesManager, RoleAdministrator}

// Elevated reports whether the role sees every record unfiltered.
func (r Role) Elevated() bool {
	return r == RoleSalesManager || r == RoleAdministrator
}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// CustomerStatus tracks where a customer is in the follow-up cycle.
type CustomerStatus string

const (
	CustomerStatusNewClient CustomerStatus = "new_client"
	CustomerStatusFollowUp  CustomerStatus = "follow_up"
	CustomerStatusCompleted CustomerStatus = "completed"
)

var CustomerStatuses = []CustomerStatus{CustomerStatusNewClient, CustomerStatusFollowUp, CustomerStatusCompleted}

func (s CustomerStatus) Valid() bool {
	for _, known := range CustomerStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// DealStatus is one of the ordered follow-up stages or a terminal state.
type DealStatus string

const (
	DealStatusFollowUp1 DealStatus = "follow_up_1"
	DealStatusFollowUp2 DealStatus = "follow_up_2"
	DealStatusFollowUp3 DealStatus = "follow_up_3"
	DealStatusCompleted DealStatus = "completed"
	DealStatusLost      DealStatus = "lost"
)

var DealStatuses = []DealStatus{DealStatusFollowUp1, DealStatusFollowUp2, DealStatusFollowUp3, DealStatusCompleted, DealStatusLost}

func (s DealStatus) Valid() bool {
	for _, known := range DealStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further follow-up stage follows.
func (s DealStatus) Terminal() bool {
	return s == DealStatusCompleted || s == DealStatusLost
}

type ActivityType string

const (
	ActivityTypeFollowUp ActivityType = "follow_up"
	ActivityTypeCall     ActivityType = "call"
	ActivityTypeMeeting  ActivityType = "meeting"
	ActivityTypeEmail    ActivityType = "email"
	ActivityTypeNote     ActivityType = "note"
)

var ActivityTypes = []ActivityType{ActivityTypeFollowUp, ActivityTypeCall, ActivityTypeMeeting, ActivityTypeEmail, ActivityTypeNote}

func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TaskStatus is the persisted task state. Overdue is derived, never stored.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusOverdue is only accepted as a filter value and a display state.
	TaskStatusOverdue TaskStatus = "overdue"
)

var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusCompleted}

type TaskType string

const (
	TaskTypeNewCustomerFollowup TaskType = "new_customer_followup"
	TaskTypeInactivityAlert     TaskType = "inactivity_alert"
	TaskTypeScheduledFollowup   TaskType = "scheduled_followup"
	TaskTypeManagerAssigned     TaskType = "manager_assigned"
)

var TaskTypes = []TaskType{TaskTypeNewCustomerFollowup, TaskTypeInactivityAlert, TaskTypeScheduledFollowup, TaskTypeManagerAssigned}

func (t TaskType) Valid() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// User represents a user in the system.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Role            Role      `json:"role"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
	LastLoginDate   time.Time `json:"lastLoginDate"`
	CreatedByUserID *string   `json:"createdByUserId,omitempty"`
	IsActive        bool      `json:"isActive"`
}

// Customer is a prospect or client followed up by a representative.
type Customer struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	PhoneNumber        string         `json:"phoneNumber"`
	CustomerStatus     CustomerStatus `json:"customerStatus"`
	FirstContactDate   time.Time      `json:"firstContactDate"`
	LastUpdateDate     time.Time      `json:"lastUpdateDate"`
	ReminderDate       *time.Time     `json:"reminderDate,omitempty"`
	CreatedByUserID    string         `json:"createdByUserId"`
	AssignedSalesRepID string         `json:"assignedSalesRepId"`
}

type Deal struct {
	ID                    string     `json:"id"`
	CustomerID            string     `json:"customerId"`
	Service               string     `json:"service"`
	LeadSource            string     `json:"leadSource"`
	SalesRepresentativeID string     `json:"salesRepresentativeId"`
	Status                DealStatus `json:"status"`
	DealDetails           string     `json:"dealDetails"`
	DealValue             float64    `json:"dealValue"`
	CreationDate          time.Time  `json:"creationDate"`
	LastUpdateDate        time.Time  `json:"lastUpdateDate"`
}

type Activity struct {
	ID               string       `json:"id"`
	CustomerID       *string      `json:"customerId,omitempty"`
	DealID           *string      `json:"dealId,omitempty"`
	ActivityDate     time.Time    `json:"activityDate"`
	ActivityDetails  string       `json:"activityDetails"`
	ActivityType     ActivityType `json:"activityType"`
	RecordedByUserID string       `json:"recordedByUserId"`
}

type Task struct {
	ID               string     `json:"id"`
	CustomerID       *string    `json:"customerId,omitempty"`
	DealID           *string    `json:"dealId,omitempty"`
	AssignedToUserID string     `json:"assignedToUserId"`
	TaskDescription  string     `json:"taskDescription"`
	DueDate          time.Time  `json:"dueDate"`
	TaskStatus       TaskStatus `json:"taskStatus"`
	TaskType         TaskType   `json:"taskType"`
	CreationDate     time.Time  `json:"creationDate"`
	CompletedDate    *time.Time `json:"completedDate,omitempty"`
	CreatedByUserID  string     `json:"createdByUserId"`
}

// DailyReport is immutable once created. ReportDate has date granularity.
type DailyReport struct {
	ID                             string    `json:"id"`
	ReportDate                     time.Time `json:"reportDate"`
	SalesRepresentativeID          string    `json:"salesRepresentativeId"`
	NewCustomersCount              int       `json:"newCustomersCount"`
	CompletedDealsCount            int       `json:"completedDealsCount"`
	TotalRevenueFromCompletedDeals float64   `json:"totalRevenueFromCompletedDeals"`
	DailyNotes                     string    `json:"dailyNotes"`
}

// SyntheticTask is a today's-task item derived from customer state. It is never persisted.
type SyntheticTask struct {
	ID               string     `json:"id"`
	CustomerID       string     `json:"customerId"`
	TaskDescription  string     `json:"taskDescription"`
	AssignedToUserID string     `json:"assignedToUserId"`
	TaskStatus       TaskStatus `json:"taskStatus"`
	DueDate          time.Time  `json:"dueDate"`
}
