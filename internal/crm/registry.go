package crm

import (
	"context"
	"sync"
	"time"

	"sales-crm/internal/logger"
	"sales-crm/internal/metrics"
	"sales-crm/internal/models"
)

// DefaultRefresh is how old a session's snapshot may get before Get reloads it.
const DefaultRefresh = 30 * time.Second

// Registry keeps one Service per logged-in user.
type Registry struct {
	mu         sync.Mutex
	sessions   map[string]*Service
	newSession func() *Service
	refresh    time.Duration
	log        logger.Logger
}

// NewRegistry builds sessions with newSession. A refresh of zero never reloads.
func NewRegistry(newSession func() *Service, refresh time.Duration, log logger.Logger) *Registry {
	return &Registry{
		sessions:   make(map[string]*Service),
		newSession: newSession,
		refresh:    refresh,
		log:        log,
	}
}

// Login authenticates on a fresh session, loads its data and registers it,
// replacing any earlier session of the same user.
func (r *Registry) Login(ctx context.Context, username, password string) (*Service, models.User, error) {
	svc := r.newSession()
	user, err := svc.Login(ctx, username, password)
	if err != nil {
		return nil, models.User{}, err
	}
	if err := svc.LoadData(ctx); err != nil {
		return nil, models.User{}, err
	}
	r.put(user.ID, svc)
	return svc, user, nil
}

// Signup creates an account on a throwaway session. The new user is not logged in.
func (r *Registry) Signup(ctx context.Context, form models.UserForm) (models.User, error) {
	return r.newSession().Signup(ctx, form)
}

// Get returns the user's session, resuming one from the store when the process
// has none. Stale snapshots are reloaded first.
func (r *Registry) Get(ctx context.Context, userID string) (*Service, error) {
	r.mu.Lock()
	svc, ok := r.sessions[userID]
	r.mu.Unlock()

	if !ok {
		fresh := r.newSession()
		if _, err := fresh.Resume(ctx, userID); err != nil {
			return nil, err
		}
		svc, ok = r.putIfAbsent(userID, fresh)
		if !ok {
			fresh.Logout()
			return svc, nil
		}
		r.log.Info("resumed session for user %s", userID)
		return svc, nil
	}
	if svc.CurrentUser() == nil {
		r.Drop(userID)
		return nil, ErrNotAuthenticated
	}
	if r.refresh > 0 && svc.now().Sub(svc.LoadedAt()) > r.refresh {
		if err := svc.Reload(ctx); err != nil {
			r.log.Warn("could not refresh session of %s: %v", userID, err)
		} else if !activeUser(svc.Snapshot().Users, userID) {
			r.Drop(userID)
			return nil, ErrNotAuthenticated
		}
	}
	return svc, nil
}

// Drop forgets a session after logout, deactivation or deletion of its user.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if svc, ok := r.sessions[userID]; ok {
		svc.Logout()
		delete(r.sessions, userID)
		metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) put(userID string, svc *Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = svc
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
}

// putIfAbsent registers svc unless a concurrent request already did. It
// returns the registered session and whether it is svc.
func (r *Registry) putIfAbsent(userID string, svc *Service) (*Service, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[userID]; ok {
		return existing, false
	}
	r.sessions[userID] = svc
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return svc, true
}

func activeUser(users []models.User, id string) bool {
	for _, u := range users {
		if u.ID == id {
			return u.IsActive
		}
	}
	return false
}
