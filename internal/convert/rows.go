package convert

import (
	"time"

	"sales-crm/internal/datastore"
	"sales-crm/internal/models"
)

// putTime sets col unless t is zero, leaving the store to apply its default.
func putTime(row datastore.Row, col string, t time.Time) {
	if !t.IsZero() {
		row[col] = FormatTime(t)
	}
}

func putID(row datastore.Row, id string) {
	if id != "" {
		row["id"] = id
	}
}

func UserRow(u models.User) datastore.Row {
	row := datastore.Row{
		"username":           u.Username,
		"role":               string(u.Role),
		"name":               u.Name,
		"email":              u.Email,
		"created_by_user_id": optStrValue(u.CreatedByUserID),
		"is_active":          u.IsActive,
	}
	putID(row, u.ID)
	putTime(row, "created_at", u.CreatedAt)
	putTime(row, "last_login_date", u.LastLoginDate)
	return row
}

func CustomerRow(c models.Customer) datastore.Row {
	status := c.CustomerStatus
	if status == "" {
		status = models.CustomerStatusNewClient
	}
	row := datastore.Row{
		"name":                  c.Name,
		"phone_number":          c.PhoneNumber,
		"customer_status":       string(status),
		"reminder_date":         optTimeValue(c.ReminderDate),
		"created_by_user_id":    c.CreatedByUserID,
		"assigned_sales_rep_id": c.AssignedSalesRepID,
	}
	putID(row, c.ID)
	putTime(row, "first_contact_date", c.FirstContactDate)
	putTime(row, "last_update_date", c.LastUpdateDate)
	return row
}

func DealRow(d models.Deal) datastore.Row {
	status := d.Status
	if status == "" {
		status = models.DealStatusFollowUp1
	}
	row := datastore.Row{
		"customer_id":             d.CustomerID,
		"service":                 d.Service,
		"lead_source":             d.LeadSource,
		"sales_representative_id": d.SalesRepresentativeID,
		"status":                  string(status),
		"deal_details":            d.DealDetails,
		"deal_value":              d.DealValue,
	}
	putID(row, d.ID)
	putTime(row, "creation_date", d.CreationDate)
	putTime(row, "last_update_date", d.LastUpdateDate)
	return row
}

func ActivityRow(a models.Activity) datastore.Row {
	row := datastore.Row{
		"customer_id":         optStrValue(a.CustomerID),
		"deal_id":             optStrValue(a.DealID),
		"activity_details":    a.ActivityDetails,
		"activity_type":       string(a.ActivityType),
		"recorded_by_user_id": a.RecordedByUserID,
	}
	putID(row, a.ID)
	putTime(row, "activity_date", a.ActivityDate)
	return row
}

func TaskRow(t models.Task) datastore.Row {
	status := t.TaskStatus
	if status == "" || status == models.TaskStatusOverdue {
		status = models.TaskStatusPending
	}
	row := datastore.Row{
		"customer_id":         optStrValue(t.CustomerID),
		"deal_id":             optStrValue(t.DealID),
		"assigned_to_user_id": t.AssignedToUserID,
		"task_description":    t.TaskDescription,
		"due_date":            FormatTime(t.DueDate),
		"task_status":         string(status),
		"task_type":           string(t.TaskType),
		"completed_date":      optTimeValue(t.CompletedDate),
		"created_by_user_id":  t.CreatedByUserID,
	}
	putID(row, t.ID)
	putTime(row, "creation_date", t.CreationDate)
	return row
}

// DailyReportRow stores the report date as a bare calendar date.
func DailyReportRow(d models.DailyReport) datastore.Row {
	row := datastore.Row{
		"report_date":                        FormatDate(d.ReportDate),
		"sales_representative_id":            d.SalesRepresentativeID,
		"new_customers_count":                d.NewCustomersCount,
		"completed_deals_count":              d.CompletedDealsCount,
		"total_revenue_from_completed_deals": d.TotalRevenueFromCompletedDeals,
		"daily_notes":                        d.DailyNotes,
	}
	putID(row, d.ID)
	return row
}

func CustomerPatchRow(p models.CustomerPatch) datastore.Row {
	row := datastore.Row{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.PhoneNumber != nil {
		row["phone_number"] = *p.PhoneNumber
	}
	if p.CustomerStatus != nil {
		row["customer_status"] = string(*p.CustomerStatus)
	}
	if p.ReminderDate != nil {
		row["reminder_date"] = FormatTime(*p.ReminderDate)
	}
	if p.AssignedSalesRepID != nil {
		row["assigned_sales_rep_id"] = *p.AssignedSalesRepID
	}
	if p.LastUpdateDate != nil {
		row["last_update_date"] = FormatTime(*p.LastUpdateDate)
	}
	return row
}

func DealPatchRow(p models.DealPatch) datastore.Row {
	row := datastore.Row{}
	if p.CustomerID != nil {
		row["customer_id"] = *p.CustomerID
	}
	if p.Service != nil {
		row["service"] = *p.Service
	}
	if p.LeadSource != nil {
		row["lead_source"] = *p.LeadSource
	}
	if p.SalesRepresentativeID != nil {
		row["sales_representative_id"] = *p.SalesRepresentativeID
	}
	if p.Status != nil {
		row["status"] = string(*p.Status)
	}
	if p.DealDetails != nil {
		row["deal_details"] = *p.DealDetails
	}
	if p.DealValue != nil {
		row["deal_value"] = *p.DealValue
	}
	if p.LastUpdateDate != nil {
		row["last_update_date"] = FormatTime(*p.LastUpdateDate)
	}
	return row
}

func TaskPatchRow(p models.TaskPatch) datastore.Row {
	row := datastore.Row{}
	if p.TaskStatus != nil {
		row["task_status"] = string(*p.TaskStatus)
	}
	if p.CompletedDate != nil {
		row["completed_date"] = FormatTime(*p.CompletedDate)
	}
	if p.DueDate != nil {
		row["due_date"] = FormatTime(*p.DueDate)
	}
	return row
}

func UserPatchRow(p models.UserPatch) datastore.Row {
	row := datastore.Row{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.Email != nil {
		row["email"] = *p.Email
	}
	if p.Role != nil {
		row["role"] = string(*p.Role)
	}
	if p.IsActive != nil {
		row["is_active"] = *p.IsActive
	}
	if p.LastLoginDate != nil {
		row["last_login_date"] = FormatTime(*p.LastLoginDate)
	}
	return row
}
