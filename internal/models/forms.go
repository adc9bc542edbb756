package models

import "time"

// CustomerForm is the payload for creating or editing a customer.
type CustomerForm struct {
	Name               string         `json:"name"`
	PhoneNumber        string         `json:"phoneNumber"`
	CustomerStatus     CustomerStatus `json:"customerStatus,omitempty"`
	ReminderDate       *time.Time     `json:"reminderDate,omitempty"`
	AssignedSalesRepID string         `json:"assignedSalesRepId,omitempty"`
}

// DealForm is the payload for creating a deal, optionally creating its customer inline.
type DealForm struct {
	CustomerID            string     `json:"customerId"`
	Service               string     `json:"service"`
	LeadSource            string     `json:"leadSource"`
	DealDetails           string     `json:"dealDetails"`
	DealValue             float64    `json:"dealValue"`
	Status                DealStatus `json:"status,omitempty"`
	SalesRepresentativeID string     `json:"salesRepresentativeId,omitempty"`

	CreateNewCustomer bool   `json:"createNewCustomer,omitempty"`
	NewCustomerName   string `json:"newCustomerName,omitempty"`
	NewCustomerPhone  string `json:"newCustomerPhone,omitempty"`
}

type ActivityForm struct {
	CustomerID      *string      `json:"customerId,omitempty"`
	DealID          *string      `json:"dealId,omitempty"`
	ActivityDetails string       `json:"activityDetails"`
	ActivityType    ActivityType `json:"activityType"`
}

type TaskForm struct {
	CustomerID       *string   `json:"customerId,omitempty"`
	DealID           *string   `json:"dealId,omitempty"`
	AssignedToUserID string    `json:"assignedToUserId"`
	TaskDescription  string    `json:"taskDescription"`
	DueDate          time.Time `json:"dueDate"`
	TaskType         TaskType  `json:"taskType"`
}

// UserForm is used both by signup and by managers adding users.
type UserForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// UserLoginPayload for incoming login requests.
type UserLoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ReportRequest asks for a daily report of one representative.
type ReportRequest struct {
	SalesRepresentativeID string    `json:"salesRepresentativeId"`
	Date                  time.Time `json:"date"`
	Notes                 string    `json:"notes"`
}

// CustomerPatch holds the editable customer fields. Nil means unchanged.
type CustomerPatch struct {
	Name               *string         `json:"name,omitempty"`
	PhoneNumber        *string         `json:"phoneNumber,omitempty"`
	CustomerStatus     *CustomerStatus `json:"customerStatus,omitempty"`
	ReminderDate       *time.Time      `json:"reminderDate,omitempty"`
	AssignedSalesRepID *string         `json:"assignedSalesRepId,omitempty"`
	LastUpdateDate     *time.Time      `json:"-"`
}

func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.PhoneNumber != nil {
		c.PhoneNumber = *p.PhoneNumber
	}
	if p.CustomerStatus != nil {
		c.CustomerStatus = *p.CustomerStatus
	}
	if p.ReminderDate != nil {
		d := *p.ReminderDate
		c.ReminderDate = &d
	}
	if p.AssignedSalesRepID != nil {
		c.AssignedSalesRepID = *p.AssignedSalesRepID
	}
	if p.LastUpdateDate != nil {
		c.LastUpdateDate = *p.LastUpdateDate
	}
}

type DealPatch struct {
	CustomerID            *string     `json:"customerId,omitempty"`
	Service               *string     `json:"service,omitempty"`
	LeadSource            *string     `json:"leadSource,omitempty"`
	SalesRepresentativeID *string     `json:"salesRepresentativeId,omitempty"`
	Status                *DealStatus `json:"status,omitempty"`
	DealDetails           *string     `json:"dealDetails,omitempty"`
	DealValue             *float64    `json:"dealValue,omitempty"`
	LastUpdateDate        *time.Time  `json:"-"`
}

func (p DealPatch) Apply(d *Deal) {
	if p.CustomerID != nil {
		d.CustomerID = *p.CustomerID
	}
	if p.Service != nil {
		d.Service = *p.Service
	}
	if p.LeadSource != nil {
		d.LeadSource = *p.LeadSource
	}
	if p.SalesRepresentativeID != nil {
		d.SalesRepresentativeID = *p.SalesRepresentativeID
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.DealDetails != nil {
		d.DealDetails = *p.DealDetails
	}
	if p.DealValue != nil {
		d.DealValue = *p.DealValue
	}
	if p.LastUpdateDate != nil {
		d.LastUpdateDate = *p.LastUpdateDate
	}
}

type TaskPatch struct {
	TaskStatus    *TaskStatus `json:"taskStatus,omitempty"`
	CompletedDate *time.Time  `json:"completedDate,omitempty"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
}

func (p TaskPatch) Apply(t *Task) {
	if p.TaskStatus != nil {
		t.TaskStatus = *p.TaskStatus
	}
	if p.CompletedDate != nil {
		d := *p.CompletedDate
		t.CompletedDate = &d
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
}

type UserPatch struct {
	Name          *string    `json:"name,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Role          *Role      `json:"role,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
	LastLoginDate *time.Time `json:"-"`
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.LastLoginDate != nil {
		u.LastLoginDate = *p.LastLoginDate
	}
}
