package crm

import (
	"context"
	"strings"
	"time"

	"sales-crm/internal/convert"
	"sales-crm/internal/models"
)

// FollowUpDelay is when the automatic follow-up of a new customer falls due.
const FollowUpDelay = 24 * time.Hour

// ownerFor resolves whom a new record belongs to: representatives always own
// what they create; elevated roles may hand it to someone else.
func ownerFor(viewer *models.User, requested string) string {
	if viewer.Role.Elevated() && requested != "" {
		return requested
	}
	return viewer.ID
}

func (s *Service) findCustomer(id string) (models.Customer, bool) {
	for _, c := range s.state.Snapshot().Customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *Service) findDeal(id string) (models.Deal, bool) {
	for _, d := range s.state.Snapshot().Deals {
		if d.ID == id {
			return d, true
		}
	}
	return models.Deal{}, false
}

func (s *Service) findTask(id string) (models.Task, bool) {
	for _, t := range s.state.Snapshot().Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// AddCustomer creates a customer and schedules its first follow-up task.
// A failure to create the task is reported but the customer stands.
func (s *Service) AddCustomer(ctx context.Context, form models.CustomerForm) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCustomer(ctx, form)
}

func (s *Service) addCustomer(ctx context.Context, form models.CustomerForm) (models.Customer, error) {
	viewer, err := s.requireUser()
	if err != nil {
		return models.Customer{}, err
	}
	if strings.TrimSpace(form.Name) == "" {
		return models.Customer{}, s.reject(invalid("name", "is required"))
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		return models.Customer{}, s.reject(invalid("phoneNumber", "is required"))
	}
	if form.CustomerStatus == "" {
		form.CustomerStatus = models.CustomerStatusNewClient
	}
	if !form.CustomerStatus.Valid() {
		return models.Customer{}, s.reject(invalid("customerStatus", "unknown status "+string(form.CustomerStatus)))
	}

	row, err := s.store.Insert(ctx, models.CollectionCustomers, convert.CustomerRow(models.Customer{
		Name:               form.Name,
		PhoneNumber:        form.PhoneNumber,
		CustomerStatus:     form.CustomerStatus,
		ReminderDate:       form.ReminderDate,
		CreatedByUserID:    viewer.ID,
		AssignedSalesRepID: ownerFor(viewer, form.AssignedSalesRepID),
	}))
	if err != nil {
		return models.Customer{}, s.fail("failed to add customer", err)
	}
	customer, err := convert.Customer(row)
	if err != nil {
		return models.Customer{}, s.fail("failed to add customer", err)
	}
	if err := s.state.Append(customer); err != nil {
		return models.Customer{}, err
	}
	s.succeed()

	customerID := customer.ID
	_, err = s.insertTask(ctx, models.Task{
		CustomerID:       &customerID,
		AssignedToUserID: customer.AssignedSalesRepID,
		TaskDescription:  "follow up with new customer " + customer.Name,
		DueDate:          s.clock().Add(FollowUpDelay),
		TaskStatus:       models.TaskStatusPending,
		TaskType:         models.TaskTypeNewCustomerFollowup,
		CreatedByUserID:  viewer.ID,
	})
	if err != nil {
		s.fail("customer added but its follow-up task could not be created", err)
	}
	return customer, nil
}

// UpdateCustomer applies patch and bumps the last update date.
func (s *Service) UpdateCustomer(ctx context.Context, id string, patch models.CustomerPatch) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireUser()
	if err != nil {
		return models.Customer{}, err
	}
	current, ok := s.findCustomer(id)
	if !ok {
		return models.Customer{}, ErrNotFound
	}
	if !viewer.Role.Elevated() {
		if current.AssignedSalesRepID != viewer.ID {
			return models.Customer{}, ErrNotFound
		}
		if patch.AssignedSalesRepID != nil && *patch.AssignedSalesRepID != viewer.ID {
			return models.Customer{}, ErrForbidden
		}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Customer{}, s.reject(invalid("name", "is required"))
	}
	if patch.CustomerStatus != nil && !patch.CustomerStatus.Valid() {
		return models.Customer{}, s.reject(invalid("customerStatus", "unknown status "+string(*patch.CustomerStatus)))
	}

	now := s.clock()
	patch.LastUpdateDate = &now
	if err := s.store.Update(ctx, models.CollectionCustomers, id, convert.CustomerPatchRow(patch)); err != nil {
		return models.Customer{}, s.fail("failed to update customer", err)
	}
	_ = s.state.Patch(id, patch)
	s.succeed()
	patch.Apply(&current)
	return current, nil
}

func validateDealFields(service, leadSource, details *string, value *float64, status *models.DealStatus) error {
	if service != nil && strings.TrimSpace(*service) == "" {
		return invalid("service", "is required")
	}
	if leadSource != nil && strings.TrimSpace(*leadSource) == "" {
		return invalid("leadSource", "is required")
	}
	if details != nil && strings.TrimSpace(*details) == "" {
		return invalid("dealDetails", "is required")
	}
	if value != nil && *value < 0 {
		return invalid("dealValue", "must not be negative")
	}
	if status != nil && !status.Valid() {
		return invalid("status", "unknown status "+string(*status))
	}
	return nil
}

// AddDeal creates a deal, first creating its customer when the form asks for it.
func (s *Service) AddDeal(ctx context.Context, form models.DealForm) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireUser()
	if err != nil {
		return models.Deal{}, err
	}
	if form.Status == "" {
		form.Status = models.DealStatusFollowUp1
	}
	if err := validateDealFields(&form.Service, &form.LeadSource, &form.DealDetails, &form.DealValue, &form.Status); err != nil {
		return models.Deal{}, s.reject(err)
	}

	customerID := form.CustomerID
	if form.CreateNewCustomer {
		if strings.TrimSpace(form.NewCustomerName) == "" {
			return models.Deal{}, s.reject(invalid("newCustomerName", "is required"))
		}
		if strings.TrimSpace(form.NewCustomerPhone) == "" {
			return models.Deal{}, s.reject(invalid("newCustomerPhone", "is required"))
		}
		customer, err := s.addCustomer(ctx, models.CustomerForm{
			Name:               form.NewCustomerName,
			PhoneNumber:        form.NewCustomerPhone,
			CustomerStatus:     models.CustomerStatusNewClient,
			AssignedSalesRepID: viewer.ID,
		})
		if err != nil {
			return models.Deal{}, err
		}
		customerID = customer.ID
	} else {
		if customerID == "" {
			return models.Deal{}, s.reject(invalid("customerId", "is required"))
		}
		if _, ok := s.findCustomer(customerID); !ok {
			return models.Deal{}, s.reject(invalid("customerId", "unknown customer"))
		}
	}

	row, err := s.store.Insert(ctx, models.CollectionDeals, convert.DealRow(models.Deal{
		CustomerID:            customerID,
		Service:               form.Service,
		LeadSource:            form.LeadSource,
		SalesRepresentativeID: ownerFor(viewer, form.SalesRepresentativeID),
		Status:                form.Status,
		DealDetails:           form.DealDetails,
		DealValue:             form.DealValue,
	}))
	if err != nil {
		return models.Deal{}, s.fail("failed to add deal", err)
	}
	deal, err := convert.Deal(row)
	if err != nil {
		return models.Deal{}, s.fail("failed to add deal", err)
	}
	if err := s.state.Append(deal); err != nil {
		return models.Deal{}, err
	}
	s.succeed()
	return deal, nil
}

// UpdateDeal applies patch and bumps the last update date.
func (s *Service) UpdateDeal(ctx context.Context, id string, patch models.DealPatch) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireUser()
	if err != nil {
		return models.Deal{}, err
	}
	current, ok := s.findDeal(id)
	if !ok {
		return models.Deal{}, ErrNotFound
	}
	if !viewer.Role.Elevated() {
		if current.SalesRepresentativeID != viewer.ID {
			return models.Deal{}, ErrNotFound
		}
		if patch.SalesRepresentativeID != nil && *patch.SalesRepresentativeID != viewer.ID {
			return models.Deal{}, ErrForbidden
		}
	}
	if err := validateDealFields(patch.Service, patch.LeadSource, patch.DealDetails, patch.DealValue, patch.Status); err != nil {
		return models.Deal{}, s.reject(err)
	}
	if patch.CustomerID != nil {
		if _, ok := s.findCustomer(*patch.CustomerID); !ok {
			return models.Deal{}, s.reject(invalid("customerId", "unknown customer"))
		}
	}

	now := s.clock()
	patch.LastUpdateDate = &now
	if err := s.store.Update(ctx, models.CollectionDeals, id, convert.DealPatchRow(patch)); err != nil {
		return models.Deal{}, s.fail("failed to update deal", err)
	}
	_ = s.state.Patch(id, patch)
	s.succeed()
	patch.Apply(&current)
	return current, nil
}

// AddActivity records an interaction by the current user.
func (s *Service) AddActivity(ctx context.Context, form models.ActivityForm) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireUser()
	if err != nil {
		return models.Activity{}, err
	}
	if !form.ActivityType.Valid() {
		return models.Activity{}, s.reject(invalid("activityType", "unknown type "+string(form.ActivityType)))
	}
	if form.CustomerID == nil && form.DealID == nil {
		return models.Activity{}, s.reject(invalid("customerId", "an activity needs a customer or a deal"))
	}

	row, err := s.store.Insert(ctx, models.CollectionActivities, convert.ActivityRow(models.Activity{
		CustomerID:       form.CustomerID,
		DealID:           form.DealID,
		ActivityDetails:  form.ActivityDetails,
		ActivityType:     form.ActivityType,
		RecordedByUserID: viewer.ID,
	}))
	if err != nil {
		return models.Activity{}, s.fail("failed to add activity", err)
	}
	activity, err := convert.Activity(row)
	if err != nil {
		return models.Activity{}, s.fail("failed to add activity", err)
	}
	if err := s.state.Append(activity); err != nil {
		return models.Activity{}, err
	}
	s.succeed()
	return activity, nil
}

// AddTask creates a pending task. Representatives can only assign to themselves.
func (s *Service) AddTask(ctx context.Context, form models.TaskForm) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireUser()
	if err != nil {
		return models.Task{}, err
	}
	if strings.TrimSpace(form.TaskDescription) == "" {
		return models.Task{}, s.reject(invalid("taskDescription", "is required"))
	}
	if !form.TaskType.Valid() {
		return models.Task{}, s.reject(invalid("taskType", "unknown type "+string(form.TaskType)))
	}
	if form.DueDate.IsZero() {
		return models.Task{}, s.reject(invalid("dueDate", "is required"))
	}

	task, err := s.insertTask(ctx, models.Task{
		CustomerID:       form.CustomerID,
		DealID:           form.DealID,
		AssignedToUserID: ownerFor(viewer, form.AssignedToUserID),
		TaskDescription:  form.TaskDescription,
		DueDate:          form.DueDate,
		TaskStatus:       models.TaskStatusPending,
		TaskType:         form.TaskType,
		CreatedByUserID:  viewer.ID,
	})
	if err != nil {
		return models.Task{}, s.fail("failed to add task", err)
	}
	s.succeed()
	return task, nil
}

func (s *Service) insertTask(ctx context.Context, t models.Task) (models.Task, error) {
	row, err := s.store.Insert(ctx, models.CollectionTasks, convert.TaskRow(t))
	if err != nil {
		return models.Task{}, err
	}
	task, err := convert.Task(row)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.state.Append(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CompleteTask marks a task completed now.
func (s *Service) CompleteTask(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireUser()
	if err != nil {
		return models.Task{}, err
	}
	current, ok := s.findTask(id)
	if !ok || (!viewer.Role.Elevated() && current.AssignedToUserID != viewer.ID) {
		return models.Task{}, ErrNotFound
	}

	now := s.clock()
	status := models.TaskStatusCompleted
	patch := models.TaskPatch{TaskStatus: &status, CompletedDate: &now}
	if err := s.store.Update(ctx, models.CollectionTasks, id, convert.TaskPatchRow(patch)); err != nil {
		return models.Task{}, s.fail("failed to complete task", err)
	}
	_ = s.state.Patch(id, patch)
	s.succeed()
	patch.Apply(&current)
	return current, nil
}
