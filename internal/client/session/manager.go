// Package session owns the current-session truth for the client: a small
// state machine (unknown -> anonymous <-> authenticated) plus the login,
// signup, logout and profile-update transitions. All collaborator and
// storage failures are converted to sentinel errors and transient notices
// here; no raw failure propagates to a view.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/smazurs/peerpoint/internal/client/client"
	"github.com/smazurs/peerpoint/internal/client/credstore"
	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/notices"
	"github.com/smazurs/peerpoint/internal/common"
	"github.com/smazurs/peerpoint/internal/logging"
)

const storageWarning = "Could not save your session. You will need to log in again after a restart."

const minPasswordLen = 6

// Manager is the single owner of session state. Views receive snapshots and
// call the operations below; they never hold a mutable Session.
//
// Overlapping login/logout resolution follows a last-writer-wins policy:
// the state transition of whichever operation resolves later is the one
// that sticks.
type Manager struct {
	client client.Client
	store  *credstore.Store
	bus    *notices.Bus
	log    logging.Logger

	mu       sync.Mutex
	state    State
	session  models.Session
	inFlight bool
}

func NewManager(c client.Client, store *credstore.Store, bus *notices.Bus, log logging.Logger) *Manager {
	return &Manager{
		client: c,
		store:  store,
		bus:    bus,
		log:    log,
		state:  StateUnknown,
	}
}

// Bootstrap performs the synchronous startup credential check. It never
// calls the collaborator. After it returns the state is Anonymous or
// Authenticated, never Unknown, so the guard can evaluate routes.
func (m *Manager) Bootstrap(ctx context.Context) {
	cred, err := m.store.Load(ctx)
	if err != nil {
		// startup must not crash on storage trouble; run without a session
		m.log.Warn(ctx, "credential load failed", "error", err)
		m.bus.Raise("Could not read your saved session.", notices.KindWarning)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cred == nil {
		m.state = StateAnonymous
		return
	}

	m.state = StateAuthenticated
	m.session = models.SessionFromRecord(cred.AuthToken, cred.User)
}

// Snapshot returns a read-only copy of the session, the current state, and
// whether a login/signup is in flight.
func (m *Manager) Snapshot() (models.Session, State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Clone(), m.state, m.inFlight
}

// Login authenticates against the collaborator. Duplicate submissions while
// a login or signup is in flight are rejected with ErrOperationInFlight.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.acquireFlight(); err != nil {
		return err
	}
	defer m.releaseFlight()

	payload, err := m.client.Authenticate(ctx, email, password)
	if err != nil {
		return m.reportAuthFailure(ctx, "login", err)
	}

	m.applyAuth(ctx, payload)
	m.bus.Raise("Welcome back, "+payload.User.Name+"!", notices.KindSuccess)
	return nil
}

// Signup registers a new account. Email and a password of at least six
// characters are required before the collaborator is even contacted; richer
// field validation stays in the form layer.
func (m *Manager) Signup(ctx context.Context, reg models.Registration) error {
	if reg.Email == "" || len(reg.Password) < minPasswordLen {
		return common.ErrValidation
	}

	if err := m.acquireFlight(); err != nil {
		return err
	}
	defer m.releaseFlight()

	payload, err := m.client.Register(ctx, reg)
	if err != nil {
		return m.reportAuthFailure(ctx, "signup", err)
	}

	m.applyAuth(ctx, payload)
	m.bus.Raise("Welcome to PeerPoint, "+payload.User.Name+"!", notices.KindSuccess)
	return nil
}

// Logout clears the stored credential and discards the in-memory session.
// Safe to call from any state; logging out while anonymous is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	wasAuthenticated := m.state == StateAuthenticated
	m.state = StateAnonymous
	m.session = models.Session{}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "credential clear failed", "error", err)
	}

	if wasAuthenticated {
		m.bus.Raise("You have been logged out.", notices.KindInfo)
	}
}

// UpdateProfile merges the allowed fields into the current session and
// re-persists the credential. Identity fields (role, email, user id) are
// ignored even if present in the update. Calling it while anonymous is
// logged and reported as ErrNotAuthenticated but raises no notice: the
// guard should have made this unreachable.
func (m *Manager) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		m.log.Warn(ctx, "profile update without a session")
		return common.ErrNotAuthenticated
	}

	merge(&m.session, update)
	token := m.session.AuthToken
	record := m.session.Record()
	m.mu.Unlock()

	if err := m.store.Save(ctx, token, record); err != nil {
		m.log.Warn(ctx, "credential save failed", "error", err)
		m.bus.Raise(storageWarning, notices.KindWarning)
	}

	m.bus.Raise("Profile updated.", notices.KindSuccess)
	return nil
}

func merge(s *models.Session, u models.ProfileUpdate) {
	if u.DisplayName != nil {
		s.DisplayName = *u.DisplayName
	}
	if u.College != nil {
		s.College = *u.College
	}
	if u.Department != nil {
		s.Department = *u.Department
	}
	if u.Year != nil {
		s.Year = *u.Year
	}
	if u.Bio != nil {
		s.Bio = *u.Bio
	}
	if u.Interests != nil {
		s.Interests = append([]string(nil), u.Interests...)
	}
	if u.Skills != nil {
		s.Skills = append([]string(nil), u.Skills...)
	}
	// u.Role and u.Email are deliberately not applied
}

// applyAuth persists the credential first, then publishes the in-memory
// transition, so a view observing the authenticated state never sees a
// store lacking the matching record. A failed persist still transitions in
// memory; the user is warned the session will not survive a restart.
func (m *Manager) applyAuth(ctx context.Context, payload *models.AuthPayload) {
	if err := m.store.Save(ctx, payload.Token, payload.User); err != nil {
		m.log.Warn(ctx, "credential save failed", "error", err)
		m.bus.Raise(storageWarning, notices.KindWarning)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.session = models.SessionFromRecord(payload.Token, payload.User)
	m.mu.Unlock()
}

func (m *Manager) reportAuthFailure(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, client.ErrInvalidCredentials):
		m.log.Info(ctx, op+" rejected", "error", err)
		m.bus.Raise("Invalid email or password.", notices.KindError)
	default:
		m.log.Warn(ctx, op+" failed", "error", err)
		m.bus.Raise("Cannot reach the server. Please try again.", notices.KindError)
	}
	return err
}

func (m *Manager) acquireFlight() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return common.ErrOperationInFlight
	}
	m.inFlight = true
	return nil
}

func (m *Manager) releaseFlight() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}
