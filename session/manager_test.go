package session_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/0xsonu/mlms/session"
	"github.com/0xsonu/mlms/storage"
	"github.com/0xsonu/mlms/storage/memstore"
	"github.com/0xsonu/mlms/users"
	userfake "github.com/0xsonu/mlms/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "u1"
	testUserEmail = "a@x.com"
	testTenantID  = "t1"
	testPassword  = "Password123"
)

// testClock is an injectable clock shared between the fixture and the
// manager under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testFixture holds all test dependencies
type testFixture struct {
	dir     *userfake.FakeUserDirectory
	store   *memstore.Store
	clock   *testClock
	manager *session.Manager
}

func setupTestFixture(t *testing.T, options ...session.Option) *testFixture {
	t.Helper()

	f := &testFixture{
		dir:   userfake.NewFakeUserDirectory(),
		store: memstore.New(),
		clock: &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.createDirectoryUser(t, "")

	opts := append([]session.Option{session.WithNowTime(f.clock.Now)}, options...)
	manager, err := session.NewManager(session.Deps{Users: f.dir, Store: f.store}, opts...)
	require.NoError(t, err)
	f.manager = manager
	t.Cleanup(func() { _ = manager.Close() })
	return f
}

func (f *testFixture) createDirectoryUser(t *testing.T, password string) {
	t.Helper()
	var hash string
	if password != "" {
		var err error
		hash, err = users.HashPassword(password)
		require.NoError(t, err)
	}
	require.NoError(t, f.dir.Upsert(&users.User{
		ID:           testUserID,
		Email:        testUserEmail,
		Name:         "Ada Admin",
		Role:         users.RoleAdmin,
		TenantID:     testTenantID,
		PasswordHash: hash,
	}))
}

func (f *testFixture) persistedRecord(t *testing.T) (expiry time.Time, userID string) {
	t.Helper()
	raw, err := f.store.Get(context.Background(), storage.KeySession)
	require.NoError(t, err)
	var rec struct {
		Expiry time.Time `json:"expiry"`
		UserID string    `json:"userId"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec.Expiry, rec.UserID
}

func TestLoginEstablishesSession(t *testing.T) {
	f := setupTestFixture(t)

	user, err := f.manager.Login(context.Background(), testUserEmail, "anypassword")
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
	require.True(t, f.manager.IsAuthenticated())

	expiry, ok := f.manager.Expiry()
	require.True(t, ok)
	require.Equal(t, f.clock.Now().Add(24*time.Hour), expiry)

	storedExpiry, storedUserID := f.persistedRecord(t)
	require.Equal(t, testUserID, storedUserID)
	require.True(t, storedExpiry.Equal(expiry))
}

func TestLoginUnknownEmailFails(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), "nouser@x.com", "x")
	require.ErrorIs(t, err, session.ErrInvalidCredentials)
	require.False(t, f.manager.IsAuthenticated())
}

func TestLoginFailureLeavesPriorSessionUntouched(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), testUserEmail, "anypassword")
	require.NoError(t, err)
	expiryBefore, _ := f.manager.Expiry()

	_, err = f.manager.Login(context.Background(), "nouser@x.com", "x")
	require.ErrorIs(t, err, session.ErrInvalidCredentials)

	require.True(t, f.manager.IsAuthenticated())
	expiryAfter, ok := f.manager.Expiry()
	require.True(t, ok)
	require.Equal(t, expiryBefore, expiryAfter)
	require.Equal(t, testUserID, f.manager.CurrentUser().ID)
}

func TestLoginChecksPasswordWhenHashPresent(t *testing.T) {
	f := setupTestFixture(t)
	f.createDirectoryUser(t, testPassword)

	_, err := f.manager.Login(context.Background(), testUserEmail, "wrong-password")
	require.ErrorIs(t, err, session.ErrInvalidCredentials)

	user, err := f.manager.Login(context.Background(), testUserEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
}

func TestRegisterDefaultsRoleToLearner(t *testing.T) {
	f := setupTestFixture(t)

	user, err := f.manager.Register(context.Background(), session.RegisterParams{
		Email:    "new@x.com",
		Name:     "New User",
		TenantID: testTenantID,
	})
	require.NoError(t, err)
	require.Equal(t, users.RoleLearner, user.Role)
	require.NotEmpty(t, user.ID)
	require.Equal(t, f.clock.Now(), user.CreatedAt)
	require.Equal(t, f.clock.Now(), user.UpdatedAt)
	require.True(t, f.manager.IsAuthenticated())

	// The new user is findable in the directory afterwards.
	stored, err := f.dir.GetByEmail("new@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	f := setupTestFixture(t)

	cases := []session.RegisterParams{
		{Name: "No Email", TenantID: testTenantID},
		{Email: "no-name@x.com", TenantID: testTenantID},
		{Email: "no-tenant@x.com", Name: "No Tenant"},
	}
	for _, params := range cases {
		_, err := f.manager.Register(context.Background(), params)
		require.ErrorIs(t, err, session.ErrValidation)
		require.False(t, f.manager.IsAuthenticated())
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.UpdateProfile(context.Background(), users.ProfileUpdate{Name: "Changed"})
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), testUserEmail, "x")
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	updated, err := f.manager.UpdateProfile(context.Background(), users.ProfileUpdate{Name: "Grace Admin"})
	require.NoError(t, err)
	require.Equal(t, "Grace Admin", updated.Name)
	require.Equal(t, testUserEmail, updated.Email) // untouched
	require.Equal(t, f.clock.Now(), updated.UpdatedAt)

	stored, err := f.dir.GetByID(testUserID)
	require.NoError(t, err)
	require.Equal(t, "Grace Admin", stored.Name)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), testUserEmail, "x")
	require.NoError(t, err)

	require.NoError(t, f.manager.Logout(context.Background()))
	require.False(t, f.manager.IsAuthenticated())
	require.Nil(t, f.manager.CurrentUser())

	require.NoError(t, f.manager.Logout(context.Background()))
	require.False(t, f.manager.IsAuthenticated())

	_, err = f.store.Get(context.Background(), storage.KeySession)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = f.store.Get(context.Background(), storage.KeyUser)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRefreshExtendsExpiry(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), testUserEmail, "x")
	require.NoError(t, err)
	expiryBefore, _ := f.manager.Expiry()

	f.clock.Advance(2 * time.Hour)
	require.NoError(t, f.manager.Refresh(context.Background()))

	expiryAfter, ok := f.manager.Expiry()
	require.True(t, ok)
	require.Equal(t, expiryBefore.Add(2*time.Hour), expiryAfter)
}

func TestRefreshIsNoOpWhenLoggedOut(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.manager.Refresh(context.Background()))
	require.False(t, f.manager.IsAuthenticated())
}

func TestRestoreFromValidPersistedSession(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), testUserEmail, "x")
	require.NoError(t, err)

	// Simulate a reload: a fresh manager over the same store.
	restored, err := session.NewManager(
		session.Deps{Users: f.dir, Store: f.store},
		session.WithNowTime(f.clock.Now),
	)
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()

	require.True(t, restored.IsAuthenticated())
	require.Equal(t, testUserID, restored.CurrentUser().ID)
}

func TestRestoreDiscardsExpiredSession(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), testUserEmail, "x")
	require.NoError(t, err)

	f.clock.Advance(25 * time.Hour)
	restored, err := session.NewManager(
		session.Deps{Users: f.dir, Store: f.store},
		session.WithNowTime(f.clock.Now),
	)
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()

	require.False(t, restored.IsAuthenticated())
	_, err = f.store.Get(context.Background(), storage.KeySession)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestoreDiscardsCorruptRecords(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.store.Set(context.Background(), storage.KeySession, "{not json"))
	restored, err := session.NewManager(
		session.Deps{Users: f.dir, Store: f.store},
		session.WithNowTime(f.clock.Now),
	)
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()
	require.False(t, restored.IsAuthenticated())
}

func TestRestoreDiscardsSessionWithoutUserSnapshot(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.manager.Login(context.Background(), testUserEmail, "x")
	require.NoError(t, err)
	require.NoError(t, f.store.Delete(context.Background(), storage.KeyUser))

	restored, err := session.NewManager(
		session.Deps{Users: f.dir, Store: f.store},
		session.WithNowTime(f.clock.Now),
	)
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()
	require.False(t, restored.IsAuthenticated())
}

func TestWatcherLogsOutExpiredSession(t *testing.T) {
	f := setupTestFixture(t, session.WithCheckInterval(5*time.Millisecond))

	_, err := f.manager.Login(context.Background(), testUserEmail, "x")
	require.NoError(t, err)

	f.manager.Start()
	f.clock.Advance(25 * time.Hour)

	require.Eventually(t, func() bool {
		return !f.manager.IsAuthenticated()
	}, time.Second, 5*time.Millisecond)
}

func TestCloseStopsWatcher(t *testing.T) {
	f := setupTestFixture(t, session.WithCheckInterval(5*time.Millisecond))
	f.manager.Start()
	require.NoError(t, f.manager.Close())
	require.NoError(t, f.manager.Close()) // safe to call twice
}
