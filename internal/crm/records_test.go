package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/datastore"
	"sales-crm/internal/models"
)

func TestAddCustomerSchedulesFollowUp(t *testing.T) {
	f := newFixture(t)
	svc := f.session(t, f.rep1)

	c, err := svc.AddCustomer(context.Background(), models.CustomerForm{
		Name: "Acme Trading", PhoneNumber: "0501112222", AssignedSalesRepID: f.rep2.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, f.rep1.ID, c.AssignedSalesRepID, "a representative always owns what they add")
	assert.Equal(t, models.CustomerStatusNewClient, c.CustomerStatus)
	assert.True(t, c.FirstContactDate.Equal(f.clock.Now()))

	snap := svc.Snapshot()
	require.Len(t, snap.Customers, 1)
	require.Len(t, snap.Tasks, 1)
	task := snap.Tasks[0]
	assert.Equal(t, models.TaskTypeNewCustomerFollowup, task.TaskType)
	assert.Equal(t, "follow up with new customer Acme Trading", task.TaskDescription)
	assert.Equal(t, f.rep1.ID, task.AssignedToUserID)
	assert.True(t, task.DueDate.Equal(f.clock.Now().Add(FollowUpDelay)))
	require.NotNil(t, task.CustomerID)
	assert.Equal(t, c.ID, *task.CustomerID)
	assert.Empty(t, snap.Error)

	stored := f.reloaded(t)
	assert.Equal(t, snap.Customers, stored.Customers)
	assert.Equal(t, snap.Tasks, stored.Tasks)
}

func TestManagerAssignsCustomer(t *testing.T) {
	f := newFixture(t)
	svc := f.session(t, f.manager)

	c, err := svc.AddCustomer(context.Background(), models.CustomerForm{
		Name: "Blue Sky", PhoneNumber: "0503334444", AssignedSalesRepID: f.rep2.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.rep2.ID, c.AssignedSalesRepID)
	assert.Equal(t, f.manager.ID, c.CreatedByUserID)
	assert.Equal(t, f.rep2.ID, svc.Snapshot().Tasks[0].AssignedToUserID)
}

func TestFailedInsertLeavesSnapshotUnchanged(t *testing.T) {
	f := newFixture(t)
	svc := f.sessionOn(t, failOn(f.store, "insert:customers"), f.rep1)
	before := svc.Snapshot()

	_, err := svc.AddCustomer(context.Background(), models.CustomerForm{Name: "Acme", PhoneNumber: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)

	after := svc.Snapshot()
	assert.Equal(t, before.Customers, after.Customers)
	assert.Equal(t, before.Tasks, after.Tasks)
	assert.NotEmpty(t, after.Error)
}

func TestFollowUpFailureKeepsCustomer(t *testing.T) {
	f := newFixture(t)
	svc := f.sessionOn(t, failOn(f.store, "insert:tasks"), f.rep1)

	c, err := svc.AddCustomer(context.Background(), models.CustomerForm{Name: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)
	snap := svc.Snapshot()
	assert.Equal(t, []models.Customer{c}, snap.Customers)
	assert.Empty(t, snap.Tasks)
	assert.NotEmpty(t, snap.Error)
	assert.Len(t, f.reloaded(t).Customers, 1)
}

func TestCustomerValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.session(t, f.rep1)
	ctx := context.Background()

	cases := map[string]models.CustomerForm{
		"name":           {PhoneNumber: "1"},
		"phoneNumber":    {Name: "Acme"},
		"customerStatus": {Name: "Acme", PhoneNumber: "1", CustomerStatus: "dormant"},
	}
	for field, form := range cases {
		_, err := svc.AddCustomer(ctx, form)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, field)
		assert.Equal(t, field, ve.Field)
	}
	assert.Empty(t, f.reloaded(t).Customers)
}

func TestUpdateCustomerScopeAndBump(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.session(t, f.rep1)
	c, err := mine.AddCustomer(ctx, models.CustomerForm{Name: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)

	other := f.session(t, f.rep2)
	name := "Hijacked"
	_, err = other.UpdateCustomer(ctx, c.ID, models.CustomerPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = mine.UpdateCustomer(ctx, c.ID, models.CustomerPatch{AssignedSalesRepID: &f.rep2.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	f.clock.Advance(3 * time.Hour)
	status := models.CustomerStatusFollowUp
	reminder := f.clock.Now().AddDate(0, 0, 2)
	updated, err := mine.UpdateCustomer(ctx, c.ID, models.CustomerPatch{CustomerStatus: &status, ReminderDate: &reminder})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerStatusFollowUp, updated.CustomerStatus)
	assert.True(t, updated.LastUpdateDate.Equal(f.clock.Now()))

	stored := f.reloaded(t).Customers[0]
	assert.True(t, stored.LastUpdateDate.Equal(f.clock.Now()))
	require.NotNil(t, stored.ReminderDate)
	assert.True(t, stored.ReminderDate.Equal(reminder))
	assert.Equal(t, updated, mine.Snapshot().Customers[0])
}

func TestAddDealValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.session(t, f.rep1)
	ctx := context.Background()
	c, err := svc.AddCustomer(ctx, models.CustomerForm{Name: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)

	valid := models.DealForm{CustomerID: c.ID, Service: "hosting", LeadSource: "referral", DealDetails: "annual plan", DealValue: 120}

	negative := valid
	negative.DealValue = -1
	_, err = svc.AddDeal(ctx, negative)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "dealValue", ve.Field)

	unknown := valid
	unknown.CustomerID = "missing"
	_, err = svc.AddDeal(ctx, unknown)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "customerId", ve.Field)

	noService := valid
	noService.Service = " "
	_, err = svc.AddDeal(ctx, noService)
	require.ErrorAs(t, err, &ve)

	d, err := svc.AddDeal(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusFollowUp1, d.Status)
	assert.Equal(t, f.rep1.ID, d.SalesRepresentativeID)
	assert.Len(t, f.reloaded(t).Deals, 1)
}

func TestAddDealWithNewCustomer(t *testing.T) {
	f := newFixture(t)
	svc := f.session(t, f.manager)

	d, err := svc.AddDeal(context.Background(), models.DealForm{
		Service: "hosting", LeadSource: "walk-in", DealDetails: "starter", DealValue: 50,
		CreateNewCustomer: true, NewCustomerName: "Cedar", NewCustomerPhone: "0507778888",
	})
	require.NoError(t, err)

	snap := svc.Snapshot()
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, snap.Customers[0].ID, d.CustomerID)
	assert.Equal(t, f.manager.ID, snap.Customers[0].AssignedSalesRepID)
	assert.Equal(t, f.manager.ID, d.SalesRepresentativeID)
	assert.Len(t, snap.Tasks, 1, "the new customer gets its follow-up")
	assert.Len(t, snap.Deals, 1)
}

func TestUpdateDealBumpsLastUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.session(t, f.rep1)
	c, err := svc.AddCustomer(ctx, models.CustomerForm{Name: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)
	d, err := svc.AddDeal(ctx, models.DealForm{CustomerID: c.ID, Service: "s", LeadSource: "l", DealDetails: "d", DealValue: 10})
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	status := models.DealStatusCompleted
	value := 99.5
	updated, err := svc.UpdateDeal(ctx, d.ID, models.DealPatch{Status: &status, DealValue: &value})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusCompleted, updated.Status)
	assert.True(t, updated.LastUpdateDate.Equal(f.clock.Now()))

	stored := f.reloaded(t).Deals[0]
	assert.Equal(t, 99.5, stored.DealValue)
	assert.True(t, stored.LastUpdateDate.Equal(f.clock.Now()))

	_, err = f.session(t, f.rep2).UpdateDeal(ctx, d.ID, models.DealPatch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)

	negative := -5.0
	_, err = svc.UpdateDeal(ctx, d.ID, models.DealPatch{DealValue: &negative})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestTasksAndActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rep := f.session(t, f.rep1)

	due := f.clock.Now().Add(-time.Hour)
	task, err := rep.AddTask(ctx, models.TaskForm{
		TaskDescription: "call back", TaskType: models.TaskTypeScheduledFollowup,
		DueDate: due, AssignedToUserID: f.rep2.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.rep1.ID, task.AssignedToUserID)
	assert.Equal(t, models.TaskStatusPending, task.TaskStatus)

	overdue := rep.Tasks(models.TaskFilters{Status: string(models.TaskStatusOverdue)})
	require.Len(t, overdue, 1)
	assert.Equal(t, models.TaskStats{Pending: 1, Overdue: 1}, rep.TaskStats(models.TaskFilters{}))

	_, err = f.session(t, f.rep2).CompleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	f.clock.Advance(time.Minute)
	done, err := rep.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, done.TaskStatus)
	require.NotNil(t, done.CompletedDate)
	assert.True(t, done.CompletedDate.Equal(f.clock.Now()))
	assert.Empty(t, rep.Tasks(models.TaskFilters{Status: string(models.TaskStatusOverdue)}))
	assert.Equal(t, models.TaskStatusCompleted, f.reloaded(t).Tasks[0].TaskStatus)

	_, err = rep.AddTask(ctx, models.TaskForm{TaskDescription: "x", TaskType: "chores", DueDate: due})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "taskType", ve.Field)

	c, err := rep.AddCustomer(ctx, models.CustomerForm{Name: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)
	a, err := rep.AddActivity(ctx, models.ActivityForm{CustomerID: &c.ID, ActivityType: models.ActivityTypeCall, ActivityDetails: "intro call"})
	require.NoError(t, err)
	assert.Equal(t, f.rep1.ID, a.RecordedByUserID)
	assert.Equal(t, []models.Activity{a}, rep.Activities())

	_, err = rep.AddActivity(ctx, models.ActivityForm{CustomerID: &c.ID, ActivityType: "fax"})
	assert.ErrorAs(t, err, &ve)
}

func TestStoreErrorIsSurfaced(t *testing.T) {
	f := newFixture(t)
	svc := f.sessionOn(t, failOn(f.store, "update:tasks"), f.rep1)
	ctx := context.Background()
	task, err := svc.AddTask(ctx, models.TaskForm{TaskDescription: "x", TaskType: models.TaskTypeManagerAssigned, DueDate: f.clock.Now()})
	require.NoError(t, err)

	_, err = svc.CompleteTask(ctx, task.ID)
	require.Error(t, err)
	assert.True(t, datastore.IsStoreError(err))
	assert.Equal(t, models.TaskStatusPending, svc.Snapshot().Tasks[0].TaskStatus)
}
