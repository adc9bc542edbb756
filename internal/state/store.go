// Package state holds a session's loaded entities and flags. Callers change it
// only through the named transitions below; readers get copies.
package state

import (
	"fmt"
	"sync"

	"sales-crm/internal/models"
)

type Store struct {
	mu   sync.RWMutex
	snap models.Snapshot
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Loading = loading
}

// SetError sets the inline error message; an empty message clears it.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Error = message
}

// SetCurrentUser sets or, with nil, clears the session user. Loaded collections are kept.
func (s *Store) SetCurrentUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.snap.CurrentUser = nil
		return
	}
	cp := *u
	s.snap.CurrentUser = &cp
}

// ReplaceAll swaps in every collection present in p.
func (s *Store) ReplaceAll(p models.PartialSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Users != nil {
		s.snap.Users = clone(*p.Users)
	}
	if p.Customers != nil {
		s.snap.Customers = clone(*p.Customers)
	}
	if p.Deals != nil {
		s.snap.Deals = clone(*p.Deals)
	}
	if p.Activities != nil {
		s.snap.Activities = clone(*p.Activities)
	}
	if p.Tasks != nil {
		s.snap.Tasks = clone(*p.Tasks)
	}
	if p.DailyReports != nil {
		s.snap.DailyReports = clone(*p.DailyReports)
	}
}

// Append adds one entity to the collection matching its type.
// Duplicate ids are not checked.
func (s *Store) Append(record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r := record.(type) {
	case models.User:
		s.snap.Users = append(s.snap.Users, r)
	case models.Customer:
		s.snap.Customers = append(s.snap.Customers, r)
	case models.Deal:
		s.snap.Deals = append(s.snap.Deals, r)
	case models.Activity:
		s.snap.Activities = append(s.snap.Activities, r)
	case models.Task:
		s.snap.Tasks = append(s.snap.Tasks, r)
	case models.DailyReport:
		s.snap.DailyReports = append(s.snap.DailyReports, r)
	default:
		return fmt.Errorf("state: cannot append %T", record)
	}
	return nil
}

// Patch merges patch into the record with the given id. An absent id is a no-op.
// A user patch also refreshes the current user when it is the same record.
func (s *Store) Patch(id string, patch any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch p := patch.(type) {
	case models.CustomerPatch:
		for i := range s.snap.Customers {
			if s.snap.Customers[i].ID == id {
				p.Apply(&s.snap.Customers[i])
				break
			}
		}
	case models.DealPatch:
		for i := range s.snap.Deals {
			if s.snap.Deals[i].ID == id {
				p.Apply(&s.snap.Deals[i])
				break
			}
		}
	case models.TaskPatch:
		for i := range s.snap.Tasks {
			if s.snap.Tasks[i].ID == id {
				p.Apply(&s.snap.Tasks[i])
				break
			}
		}
	case models.UserPatch:
		for i := range s.snap.Users {
			if s.snap.Users[i].ID == id {
				p.Apply(&s.snap.Users[i])
				break
			}
		}
		if s.snap.CurrentUser != nil && s.snap.CurrentUser.ID == id {
			p.Apply(s.snap.CurrentUser)
		}
	default:
		return fmt.Errorf("state: cannot patch with %T", patch)
	}
	return nil
}

// RemoveUser drops a user from the users collection. Other collections are reconciled by a reload.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.snap.Users[:0:0]
	for _, u := range s.snap.Users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	s.snap.Users = out
}

// Snapshot returns a copy safe to read while the store keeps changing.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := models.Snapshot{
		Customers:    clone(s.snap.Customers),
		Deals:        clone(s.snap.Deals),
		Activities:   clone(s.snap.Activities),
		Tasks:        clone(s.snap.Tasks),
		DailyReports: clone(s.snap.DailyReports),
		Users:        clone(s.snap.Users),
		Loading:      s.snap.Loading,
		Error:        s.snap.Error,
	}
	if s.snap.CurrentUser != nil {
		u := *s.snap.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

// CurrentUser returns a copy of the session user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.CurrentUser == nil {
		return nil
	}
	u := *s.snap.CurrentUser
	return &u
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
