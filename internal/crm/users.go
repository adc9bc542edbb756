package crm

import (
	"context"
	"errors"
	"strings"

	"sales-crm/internal/convert"
	"sales-crm/internal/datastore"
	"sales-crm/internal/metrics"
	"sales-crm/internal/models"
)

// Login accepts an active user whose credentials pass the verifier, records
// the login time and makes the user current.
func (s *Service) Login(ctx context.Context, username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	rows, err := s.store.Select(ctx, models.CollectionUsers, datastore.And(
		datastore.Eq("username", username),
		datastore.Eq("is_active", true),
	))
	if err != nil {
		return models.User{}, s.fail("could not reach the database", err)
	}
	if len(rows) == 0 {
		s.log.Info("login rejected for %q: no active user", username)
		return models.User{}, s.reject(ErrInvalidCredentials)
	}
	user, err := convert.User(rows[0])
	if err != nil {
		return models.User{}, s.fail("login failed", err)
	}
	if err := s.creds.Verify(user.ID, password); err != nil {
		s.log.Info("login rejected for %q: %v", username, err)
		return models.User{}, s.reject(ErrInvalidCredentials)
	}

	now := s.clock()
	patch := models.UserPatch{LastLoginDate: &now}
	if err := s.store.Update(ctx, models.CollectionUsers, user.ID, convert.UserPatchRow(patch)); err != nil {
		// The login stands; only the bookkeeping is lost.
		s.log.Warn("could not record login time for %s: %v", user.ID, err)
	} else {
		patch.Apply(&user)
		_ = s.state.Patch(user.ID, patch)
	}

	s.state.SetCurrentUser(&user)
	s.succeed()
	s.log.Info("user %s (%s) logged in", user.Username, user.Role)
	return user, nil
}

// Logout clears the current user. Loaded collections are kept.
func (s *Service) Logout() {
	s.state.SetCurrentUser(nil)
}

// Resume restores a session for a user already authenticated elsewhere, such
// as by a bearer token that outlived the process.
func (s *Service) Resume(ctx context.Context, userID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadData(ctx); err != nil {
		return models.User{}, err
	}
	for _, u := range s.state.Snapshot().Users {
		if u.ID == userID && u.IsActive {
			s.state.SetCurrentUser(&u)
			return u, nil
		}
	}
	return models.User{}, ErrNotAuthenticated
}

func validateUserForm(f models.UserForm) error {
	if strings.TrimSpace(f.Username) == "" {
		return invalid("username", "is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "is required")
	}
	if !f.Role.Valid() {
		return invalid("role", "unknown role "+string(f.Role))
	}
	return nil
}

// Signup creates an active representative or manager. It does not log the new user in.
func (s *Service) Signup(ctx context.Context, form models.UserForm) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	if form.Role == "" {
		form.Role = models.RoleSalesRepresentative
	}
	if form.Role == models.RoleAdministrator {
		return models.User{}, s.reject(invalid("role", "administrators cannot sign up"))
	}
	return s.createUser(ctx, form, nil)
}

// AddUser lets a manager or administrator create a user of any role.
func (s *Service) AddUser(ctx context.Context, form models.UserForm) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireElevated()
	if err != nil {
		return models.User{}, err
	}
	creator := viewer.ID
	return s.createUser(ctx, form, &creator)
}

func (s *Service) createUser(ctx context.Context, form models.UserForm, createdBy *string) (models.User, error) {
	if err := validateUserForm(form); err != nil {
		return models.User{}, s.reject(err)
	}

	existing, err := s.store.Select(ctx, models.CollectionUsers, datastore.Eq("username", form.Username))
	if err != nil {
		return models.User{}, s.fail("failed to create account", err)
	}
	if len(existing) > 0 {
		return models.User{}, s.reject(ErrUsernameTaken)
	}

	row, err := s.store.Insert(ctx, models.CollectionUsers, convert.UserRow(models.User{
		Username:        form.Username,
		Role:            form.Role,
		Name:            form.Name,
		Email:           form.Email,
		CreatedByUserID: createdBy,
		IsActive:        true,
	}))
	if err != nil {
		return models.User{}, s.fail("failed to create account", err)
	}
	user, err := convert.User(row)
	if err != nil {
		return models.User{}, s.fail("failed to create account", err)
	}

	if err := s.creds.Enroll(user.ID, form.Password); err != nil {
		// Without credentials the account is unusable; take it back out.
		if _, delErr := s.store.Delete(ctx, models.CollectionUsers, datastore.Eq("id", user.ID)); delErr != nil {
			s.log.Error("could not remove user %s after failed enrollment: %v", user.ID, delErr)
		}
		return models.User{}, s.fail("failed to create account", err)
	}

	if err := s.state.Append(user); err != nil {
		return models.User{}, err
	}
	s.succeed()
	s.log.Info("user %s created with role %s", user.Username, user.Role)
	return user, nil
}

// SetUserActive activates or deactivates a user, the normal alternative to deletion.
func (s *Service) SetUserActive(ctx context.Context, userID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireElevated()
	if err != nil {
		return err
	}
	if viewer.ID == userID {
		return ErrForbidden
	}
	rows, err := s.store.Select(ctx, models.CollectionUsers, datastore.Eq("id", userID))
	if err != nil {
		return s.fail("failed to update user", err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	patch := models.UserPatch{IsActive: &active}
	if err := s.store.Update(ctx, models.CollectionUsers, userID, convert.UserPatchRow(patch)); err != nil {
		return s.fail("failed to update user", err)
	}
	_ = s.state.Patch(userID, patch)
	s.succeed()
	return nil
}

type cascadeStep struct {
	name string
	coll models.Collection
	pred datastore.Predicate
}

func cascadeSteps(userID string) []cascadeStep {
	return []cascadeStep{
		{"daily_reports", models.CollectionDailyReports, datastore.Eq("sales_representative_id", userID)},
		{"tasks", models.CollectionTasks, datastore.Or(
			datastore.Eq("assigned_to_user_id", userID),
			datastore.Eq("created_by_user_id", userID),
		)},
		{"activities", models.CollectionActivities, datastore.Eq("recorded_by_user_id", userID)},
		{"deals", models.CollectionDeals, datastore.Eq("sales_representative_id", userID)},
		{"customers", models.CollectionCustomers, datastore.Or(
			datastore.Eq("created_by_user_id", userID),
			datastore.Eq("assigned_sales_rep_id", userID),
		)},
		{"user", models.CollectionUsers, datastore.Eq("id", userID)},
	}
}

// DeleteUser removes a user and every record they own, then reloads the snapshot.
// Stores that support transactions apply the whole cascade or nothing; otherwise
// it stops at the first failed step and earlier steps stay applied.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewer, err := s.requireElevated()
	if err != nil {
		return err
	}
	if viewer.ID == userID {
		return s.reject(invalid("userId", "you cannot delete your own account"))
	}

	rows, err := s.store.Select(ctx, models.CollectionUsers, datastore.Eq("id", userID))
	if err != nil {
		return s.fail("failed to delete user", err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}

	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	run := func(st datastore.Store) error {
		for _, step := range cascadeSteps(userID) {
			n, err := st.Delete(ctx, step.coll, step.pred)
			if err != nil {
				return &CascadeError{Step: step.name, Err: err}
			}
			s.log.Info("delete user %s: removed %d from %s", userID, n, step.name)
		}
		return nil
	}
	if tx, ok := s.store.(datastore.Transactor); ok {
		err = tx.WithTx(ctx, run)
	} else {
		err = run(s.store)
	}
	if err != nil {
		metrics.CascadeDeletions.WithLabelValues("error").Inc()
		var ce *CascadeError
		if !errors.As(err, &ce) {
			err = &CascadeError{Step: "commit", Err: err}
		}
		return s.fail("failed to delete user", err)
	}
	metrics.CascadeDeletions.WithLabelValues("ok").Inc()

	if err := s.creds.Revoke(userID); err != nil {
		s.log.Warn("could not revoke credentials of %s: %v", userID, err)
	}
	s.state.RemoveUser(userID)
	if err := s.loadData(ctx); err != nil {
		return err
	}
	s.succeed()
	return nil
}
