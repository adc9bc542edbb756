// Package crm runs the operations of one user session against the data store
// and keeps that session's state store in step with what was written.
package crm

import (
	"context"
	"sync"
	"time"

	"sales-crm/internal/auth"
	"sales-crm/internal/convert"
	"sales-crm/internal/datastore"
	"sales-crm/internal/logger"
	"sales-crm/internal/models"
	"sales-crm/internal/state"
)

// Service is a single session. Writes go to the store first; the state store
// only changes once the write succeeded.
type Service struct {
	mu       sync.Mutex
	store    datastore.Store
	state    *state.Store
	creds    auth.Verifier
	log      logger.Logger
	now      func() time.Time
	loc      *time.Location
	loadedAt time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock. Tests use it to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the calendar used by date-granular rules.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func NewService(store datastore.Store, creds auth.Verifier, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store: store,
		state: state.New(),
		creds: creds,
		log:   log,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

// Now is the session's current time in its calendar. Handlers styling
// records by date use it so they agree with the filters and counts.
func (s *Service) Now() time.Time { return s.clock() }

// Location is the calendar of this session.
func (s *Service) Location() *time.Location { return s.loc }

// State exposes the session's state store for read access.
func (s *Service) State() *state.Store { return s.state }

// fail records a user-facing message on the state store and passes err through.
func (s *Service) fail(message string, err error) error {
	s.log.Error("%s: %v", message, err)
	s.state.SetError(message)
	return err
}

// reject flags a refused request, such as a failed validation, without treating it as a fault.
func (s *Service) reject(err error) error {
	s.log.Debug("rejected: %v", err)
	s.state.SetError(err.Error())
	return err
}

func (s *Service) succeed() {
	s.state.SetError("")
}

func (s *Service) requireUser() (*models.User, error) {
	u := s.state.CurrentUser()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

func (s *Service) requireElevated() (*models.User, error) {
	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	if !u.Role.Elevated() {
		return nil, ErrForbidden
	}
	return u, nil
}

// LoadData replaces every collection with the store's contents. A failed load
// leaves the previously loaded collections untouched.
func (s *Service) LoadData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadData(ctx)
}

// Reload is LoadData under the name the UI uses for an explicit refresh.
func (s *Service) Reload(ctx context.Context) error {
	return s.LoadData(ctx)
}

func (s *Service) loadData(ctx context.Context) error {
	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	var p models.PartialSnapshot
	err := loadInto(ctx, s.store, models.CollectionUsers, convert.User, &p.Users)
	if err == nil {
		err = loadInto(ctx, s.store, models.CollectionCustomers, convert.Customer, &p.Customers)
	}
	if err == nil {
		err = loadInto(ctx, s.store, models.CollectionDeals, convert.Deal, &p.Deals)
	}
	if err == nil {
		err = loadInto(ctx, s.store, models.CollectionActivities, convert.Activity, &p.Activities)
	}
	if err == nil {
		err = loadInto(ctx, s.store, models.CollectionTasks, convert.Task, &p.Tasks)
	}
	if err == nil {
		err = loadInto(ctx, s.store, models.CollectionDailyReports, convert.DailyReport, &p.DailyReports)
	}
	if err != nil {
		return s.fail("failed to load data", err)
	}

	s.state.ReplaceAll(p)
	s.loadedAt = s.now()
	s.succeed()
	s.log.Debug("loaded %d users, %d customers, %d deals, %d activities, %d tasks, %d reports",
		len(*p.Users), len(*p.Customers), len(*p.Deals), len(*p.Activities), len(*p.Tasks), len(*p.DailyReports))
	return nil
}

func loadInto[T any](ctx context.Context, store datastore.Store, coll models.Collection, fn func(datastore.Row) (T, error), dst **[]T) error {
	rows, err := datastore.FetchAll(ctx, store, coll)
	if err != nil {
		return err
	}
	items, err := convert.All(rows, fn)
	if err != nil {
		return err
	}
	*dst = &items
	return nil
}

// LoadedAt is when the snapshot was last replaced from the store.
func (s *Service) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}
