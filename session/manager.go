// Package session owns the authentication session lifecycle: login,
// registration, profile updates, logout and the timed session record
// persisted to durable storage. Exactly one session is active per manager.
package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/0xsonu/mlms/internal/metrics"
	"github.com/0xsonu/mlms/storage"
	"github.com/0xsonu/mlms/users"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTTL is how long a session stays valid after login, register
	// or an explicit refresh.
	DefaultTTL = 24 * time.Hour

	// DefaultCheckInterval is how often the expiry watcher compares the
	// session expiry against the clock.
	DefaultCheckInterval = time.Minute
)

// Deps holds the collaborators the Manager is constructed with.
type Deps struct {
	Users users.Directory // User lookup by email/id
	Store storage.Store   // Durable session and user snapshot slots
}

// Manager authenticates users and maintains the single durable session
// record. Safe for concurrent use.
type Manager struct {
	deps          Deps
	metrics       *metrics.Metrics
	ttl           time.Duration
	checkInterval time.Duration
	nowTime       func() time.Time // nowTime function (injectable for testing)

	mu     sync.RWMutex
	user   *users.User
	expiry time.Time

	startOnce   sync.Once
	closeOnce   sync.Once
	watcherStop chan struct{}
	watcherDone chan struct{}
}

// Option modifies the Manager instance.
type Option func(*Manager)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithTTL overrides the session duration.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithCheckInterval overrides the expiry watcher interval.
func WithCheckInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.checkInterval = interval
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(mx *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mx
	}
}

// NewManager initializes a Manager and restores any previously persisted
// session. An expired or unreadable persisted record is discarded and the
// manager starts logged out; restore problems are never returned.
func NewManager(deps Deps, options ...Option) (*Manager, error) {
	if deps.Users == nil {
		return nil, errors.New("[NewManager] Users directory is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[NewManager] Store is required")
	}

	m := &Manager{
		deps:          deps,
		ttl:           DefaultTTL,
		checkInterval: DefaultCheckInterval,
		nowTime:       time.Now,
		watcherStop:   make(chan struct{}),
		watcherDone:   make(chan struct{}),
	}

	for _, opt := range options {
		opt(m)
	}

	m.restore(context.Background())
	return m, nil
}

// Login looks the user up by email and establishes a fresh session.
// An unknown email, or a password mismatch against a directory entry that
// carries a hash, fails with ErrInvalidCredentials and leaves any prior
// session untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*users.User, error) {
	user, err := m.deps.Users.GetByEmail(strings.TrimSpace(email))
	if err != nil || user == nil {
		m.countLogin("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if user.PasswordHash != "" && !users.CheckPasswordHash(password, user.PasswordHash) {
		m.countLogin("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if err := m.establish(ctx, user); err != nil {
		m.countLogin("error")
		return nil, errors.Wrap(err, "[Manager.Login] establish")
	}

	m.countLogin("ok")
	u := *user
	return &u, nil
}

// RegisterParams are the caller-supplied fields for a new account.
// Email, Name and TenantID are required; Role defaults to learner.
type RegisterParams struct {
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Password  string         `json:"password,omitempty"`
	Role      users.RoleType `json:"role,omitempty"`
	TenantID  string         `json:"tenantId"`
	AvatarURL string         `json:"avatar,omitempty"`
}

// Register creates a new user in the directory and establishes a session
// exactly as Login does.
func (m *Manager) Register(ctx context.Context, params RegisterParams) (*users.User, error) {
	if strings.TrimSpace(params.Email) == "" {
		return nil, errors.Wrap(ErrValidation, "email is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, errors.Wrap(ErrValidation, "name is required")
	}
	if strings.TrimSpace(params.TenantID) == "" {
		return nil, errors.Wrap(ErrValidation, "tenant id is required")
	}

	role := params.Role
	if role == "" {
		role = users.RoleLearner
	}
	if !users.ValidRole(role) {
		return nil, errors.Wrapf(ErrValidation, "unknown role %q", role)
	}

	var passwordHash string
	if params.Password != "" {
		hash, err := users.HashPassword(params.Password)
		if err != nil {
			return nil, errors.Wrap(err, "[Manager.Register] HashPassword")
		}
		passwordHash = hash
	}

	now := m.nowTime()
	user := &users.User{
		ID:           uuid.New().String(),
		Email:        strings.TrimSpace(params.Email),
		Name:         strings.TrimSpace(params.Name),
		Role:         role,
		AvatarURL:    params.AvatarURL,
		TenantID:     params.TenantID,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := m.deps.Users.Upsert(user); err != nil {
		return nil, errors.Wrap(err, "[Manager.Register] Users.Upsert")
	}

	if err := m.establish(ctx, user); err != nil {
		return nil, errors.Wrap(err, "[Manager.Register] establish")
	}

	if m.metrics != nil {
		m.metrics.RegistrationsTotal.Inc()
	}
	u := *user
	return &u, nil
}

// UpdateProfile merges the non-empty update fields into the current user,
// bumps UpdatedAt and persists the new snapshot. Fails with
// ErrNotAuthenticated when no session is active.
func (m *Manager) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return nil, ErrNotAuthenticated
	}

	updated := *m.user
	if update.Name != "" {
		updated.Name = update.Name
	}
	if update.Email != "" {
		updated.Email = update.Email
	}
	if update.AvatarURL != "" {
		updated.AvatarURL = update.AvatarURL
	}
	updated.UpdatedAt = m.nowTime()

	if err := m.deps.Users.Upsert(&updated); err != nil {
		return nil, errors.Wrap(err, "[Manager.UpdateProfile] Users.Upsert")
	}
	if err := m.persistUser(ctx, &updated); err != nil {
		return nil, errors.Wrap(err, "[Manager.UpdateProfile] persistUser")
	}

	m.user = &updated
	u := updated
	return &u, nil
}

// Logout clears the in-memory user and destroys the persisted session and
// user snapshot. Idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clear(ctx)
	return nil
}

// Refresh extends the session expiry to now + TTL. No-op when logged out.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return nil
	}
	return m.persistSession(ctx, m.user)
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (m *Manager) CurrentUser() *users.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// Expiry returns the session expiry and whether a session is active.
func (m *Manager) Expiry() (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expiry, m.user != nil
}

// Start launches the background expiry watcher. It runs until Close.
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		go m.watch()
	})
}

// Close stops the expiry watcher. Safe to call more than once and without
// a prior Start.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.watcherStop)
	})
	m.startOnce.Do(func() {
		// Watcher never ran; unblock the Close wait below.
		close(m.watcherDone)
	})
	<-m.watcherDone
	return nil
}

func (m *Manager) watch() {
	defer close(m.watcherDone)
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.watcherStop:
			return
		case <-ticker.C:
			m.expireIfDue()
		}
	}
}

// expireIfDue emulates server-side session enforcement: once the expiry
// passes, the session ends as if Logout had been called.
func (m *Manager) expireIfDue() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil || m.expiry.After(m.nowTime()) {
		return
	}
	log.Info().Str("user_id", m.user.ID).Time("expiry", m.expiry).Msg("Session expired, logging out")
	m.clear(context.Background())
	if m.metrics != nil {
		m.metrics.ExpirationsTotal.Inc()
	}
}

// establish persists a new session record and user snapshot and sets the
// in-memory state.
func (m *Manager) establish(ctx context.Context, user *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persistSession(ctx, user); err != nil {
		return err
	}
	if err := m.persistUser(ctx, user); err != nil {
		return err
	}

	u := *user
	m.user = &u
	if m.metrics != nil {
		m.metrics.SessionsActive.Set(1)
	}
	return nil
}

// persistSession writes a fresh expiry for user. Caller holds the lock.
func (m *Manager) persistSession(ctx context.Context, user *users.User) error {
	expiry := m.nowTime().Add(m.ttl)
	data, err := json.Marshal(record{Expiry: expiry, UserID: user.ID})
	if err != nil {
		return errors.Wrap(err, "marshal session record")
	}
	if err := m.deps.Store.Set(ctx, storage.KeySession, string(data)); err != nil {
		return errors.Wrap(err, "persist session record")
	}
	m.expiry = expiry
	return nil
}

func (m *Manager) persistUser(ctx context.Context, user *users.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "marshal user snapshot")
	}
	if err := m.deps.Store.Set(ctx, storage.KeyUser, string(data)); err != nil {
		return errors.Wrap(err, "persist user snapshot")
	}
	return nil
}

// clear drops the in-memory state and both storage slots. Caller holds the
// lock. Storage failures are logged, not surfaced; the worst outcome is a
// stale record that the next restore discards.
func (m *Manager) clear(ctx context.Context) {
	if err := m.deps.Store.Delete(ctx, storage.KeySession); err != nil {
		log.Err(err).Msg("Failed to delete session record")
	}
	if err := m.deps.Store.Delete(ctx, storage.KeyUser); err != nil {
		log.Err(err).Msg("Failed to delete user snapshot")
	}
	m.user = nil
	m.expiry = time.Time{}
	if m.metrics != nil {
		m.metrics.SessionsActive.Set(0)
	}
}

// restore reads the persisted session and user snapshot. Only a record
// with a future expiry and a matching, parsable user snapshot re-enters
// the authenticated state; anything else is treated as no session.
func (m *Manager) restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.deps.Store.Get(ctx, storage.KeySession)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Err(err).Msg("Failed to read persisted session")
		}
		return
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		log.Err(err).Msg("Corrupt session record, discarding")
		m.clear(ctx)
		return
	}

	if rec.expired(m.nowTime()) {
		m.clear(ctx)
		return
	}

	rawUser, err := m.deps.Store.Get(ctx, storage.KeyUser)
	if err != nil {
		log.Err(err).Msg("Session record without user snapshot, discarding")
		m.clear(ctx)
		return
	}

	var user users.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.ID != rec.UserID {
		log.Err(err).Msg("Corrupt user snapshot, discarding session")
		m.clear(ctx)
		return
	}

	m.user = &user
	m.expiry = rec.Expiry
	if m.metrics != nil {
		m.metrics.SessionsActive.Set(1)
	}
	log.Info().Str("user_id", user.ID).Time("expiry", rec.Expiry).Msg("Restored persisted session")
}

func (m *Manager) countLogin(status string) {
	if m.metrics != nil {
		m.metrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}
