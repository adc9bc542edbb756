package views

import (
	"time"

	"sales-crm/internal/models"
)

// Colors name the badge palette the UI renders.
const (
	ColorBlue   = "blue"
	ColorYellow = "yellow"
	ColorOrange = "orange"
	ColorRed    = "red"
	ColorGreen  = "green"
	ColorPurple = "purple"
	ColorGray   = "gray"
)

// fallback styles an unrecognised value: its raw text on the neutral color.
func fallback(raw string) models.Style {
	if raw == "" {
		raw = "Unknown"
	}
	return models.Style{Label: raw, Color: ColorGray}
}

var customerStatusStyles = map[models.CustomerStatus]models.Style{
	models.CustomerStatusNewClient: {Label: "New client", Color: ColorBlue},
	models.CustomerStatusFollowUp:  {Label: "Follow-up", Color: ColorYellow},
	models.CustomerStatusCompleted: {Label: "Completed", Color: ColorGreen},
}

var dealStatusStyles = map[models.DealStatus]models.Style{
	models.DealStatusFollowUp1: {Label: "Follow-up 1", Color: ColorYellow},
	models.DealStatusFollowUp2: {Label: "Follow-up 2", Color: ColorOrange},
	models.DealStatusFollowUp3: {Label: "Follow-up 3", Color: ColorRed},
	models.DealStatusCompleted: {Label: "Completed", Color: ColorGreen},
	models.DealStatusLost:      {Label: "Lost", Color: ColorGray},
}

var taskStatusStyles = map[models.TaskStatus]models.Style{
	models.TaskStatusPending:   {Label: "Pending", Color: ColorYellow},
	models.TaskStatusCompleted: {Label: "Completed", Color: ColorGreen},
	models.TaskStatusOverdue:   {Label: "Overdue", Color: ColorRed},
}

var taskTypeLabels = map[models.TaskType]string{
	models.TaskTypeNewCustomerFollowup: "New customer follow-up",
	models.TaskTypeInactivityAlert:     "Inactivity alert",
	models.TaskTypeScheduledFollowup:   "Scheduled follow-up",
	models.TaskTypeManagerAssigned:     "Assigned by manager",
}

var roleStyles = map[models.Role]models.Style{
	models.RoleSalesRepresentative: {Label: "Sales representative", Color: ColorBlue},
	models.RoleSalesManager:        {Label: "Sales manager", Color: ColorGreen},
	models.RoleAdministrator:       {Label: "Administrator", Color: ColorPurple},
}

var activityTypeLabels = map[models.ActivityType]string{
	models.ActivityTypeFollowUp: "Follow-up",
	models.ActivityTypeCall:     "Call",
	models.ActivityTypeMeeting:  "Meeting",
	models.ActivityTypeEmail:    "Email",
	models.ActivityTypeNote:     "Note",
}

func CustomerStatusStyle(s models.CustomerStatus) models.Style {
	if st, ok := customerStatusStyles[s]; ok {
		return st
	}
	return fallback(string(s))
}

func DealStatusStyle(s models.DealStatus) models.Style {
	if st, ok := dealStatusStyles[s]; ok {
		return st
	}
	return fallback(string(s))
}

// TaskStatusStyle styles a task by its effective state at now, so a pending
// task past due shows as overdue.
func TaskStatusStyle(t models.Task, now time.Time) models.Style {
	if IsOverdue(t, now) {
		return taskStatusStyles[models.TaskStatusOverdue]
	}
	return TaskStatusLabel(t.TaskStatus)
}

// TaskStatusLabel styles a bare status value, including the overdue filter value.
func TaskStatusLabel(s models.TaskStatus) models.Style {
	if st, ok := taskStatusStyles[s]; ok {
		return st
	}
	return fallback(string(s))
}

func TaskTypeLabel(t models.TaskType) string {
	if l, ok := taskTypeLabels[t]; ok {
		return l
	}
	return fallback(string(t)).Label
}

func RoleStyle(r models.Role) models.Style {
	if st, ok := roleStyles[r]; ok {
		return st
	}
	return fallback(string(r))
}

func ActivityTypeLabel(t models.ActivityType) string {
	if l, ok := activityTypeLabels[t]; ok {
		return l
	}
	return fallback(string(t)).Label
}

// LatestDealStatus labels the customer's most recently updated deal, or "No deals".
func LatestDealStatus(customerID string, deals []models.Deal) string {
	var latest *models.Deal
	for i := range deals {
		d := &deals[i]
		if d.CustomerID != customerID {
			continue
		}
		if latest == nil || d.LastUpdateDate.After(latest.LastUpdateDate) {
			latest = d
		}
	}
	if latest == nil {
		return "No deals"
	}
	return DealStatusStyle(latest.Status).Label
}

// Labels is every mapping above keyed by raw value, for clients that render badges themselves.
type Labels struct {
	CustomerStatuses map[string]models.Style `json:"customerStatuses"`
	DealStatuses     map[string]models.Style `json:"dealStatuses"`
	TaskStatuses     map[string]models.Style `json:"taskStatuses"`
	TaskTypes        map[string]string       `json:"taskTypes"`
	Roles            map[string]models.Style `json:"roles"`
	ActivityTypes    map[string]string       `json:"activityTypes"`
	Fallback         models.Style            `json:"fallback"`
}

func AllLabels() Labels {
	l := Labels{
		CustomerStatuses: map[string]models.Style{},
		DealStatuses:     map[string]models.Style{},
		TaskStatuses:     map[string]models.Style{},
		TaskTypes:        map[string]string{},
		Roles:            map[string]models.Style{},
		ActivityTypes:    map[string]string{},
		Fallback:         fallback(""),
	}
	for k, v := range customerStatusStyles {
		l.CustomerStatuses[string(k)] = v
	}
	for k, v := range dealStatusStyles {
		l.DealStatuses[string(k)] = v
	}
	for k, v := range taskStatusStyles {
		l.TaskStatuses[string(k)] = v
	}
	for k, v := range taskTypeLabels {
		l.TaskTypes[string(k)] = v
	}
	for k, v := range roleStyles {
		l.Roles[string(k)] = v
	}
	for k, v := range activityTypeLabels {
		l.ActivityTypes[string(k)] = v
	}
	return l
}
