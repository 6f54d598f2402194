package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xsonu/mlms/branding"
	"github.com/0xsonu/mlms/internal/config"
	"github.com/0xsonu/mlms/server"
	"github.com/0xsonu/mlms/session"
	"github.com/0xsonu/mlms/storage/memstore"
	tenantfake "github.com/0xsonu/mlms/tenants/repofake"
	"github.com/0xsonu/mlms/themes"
	userfake "github.com/0xsonu/mlms/users/repofake"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	server   *server.Server
	sessions *session.Manager
	resolver *branding.Resolver
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	store := memstore.New()
	dir := userfake.NewFakeUserDirectory()
	catalog := tenantfake.NewFakeTenantCatalog()

	sessions, err := session.NewManager(session.Deps{Users: dir, Store: store})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	resolver, err := branding.NewResolver(branding.Deps{
		Tenants: catalog,
		Store:   store,
		Applier: branding.NopApplier(),
	})
	require.NoError(t, err)

	cfg := &config.Config{Env: "test", AllowedOrigins: "*", LoginRatePerMinute: 600}
	srv, err := server.New(cfg, server.Deps{
		Sessions: sessions,
		Branding: resolver,
		Users:    dir,
		Tenants:  catalog,
	})
	require.NoError(t, err)

	// server.New seeds the demo tenants; resolve branding afterwards, as
	// the binary does.
	require.NoError(t, resolver.Initialize(t.Context()))

	return &testFixture{server: srv, sessions: sessions, resolver: resolver}
}

func (f *testFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestLoginEndpoint(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@acme.edu",
		"password": "anything",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[server.SessionResponse](t, rec)
	require.True(t, resp.Authenticated)
	require.Equal(t, "u-admin", resp.User.ID)
	require.NotNil(t, resp.Expiry)
}

func TestLoginEndpointRejectsUnknownUser(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@acme.edu",
		"password": "x",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, f.sessions.IsAuthenticated())
}

func TestRegisterEndpointValidation(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "partial@acme.edu",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "fresh@acme.edu",
		"name":     "Fresh User",
		"tenantId": "t-acme",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[server.SessionResponse](t, rec)
	require.Equal(t, "learner", string(resp.User.Role))
}

func TestSessionEndpointReflectsLogout(t *testing.T) {
	f := setupTestFixture(t)

	f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "learner@acme.edu"})
	rec := f.do(t, http.MethodGet, "/api/v1/auth/session", nil)
	require.True(t, decode[server.SessionResponse](t, rec).Authenticated)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/auth/logout", nil).Code)
	rec = f.do(t, http.MethodGet, "/api/v1/auth/session", nil)
	require.False(t, decode[server.SessionResponse](t, rec).Authenticated)
}

func TestProfileEndpointRequiresSession(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodPatch, "/api/v1/auth/profile", map[string]string{"name": "Renamed"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantAndThemeEndpoints(t *testing.T) {
	f := setupTestFixture(t)

	// Seeded default tenant comes back with its dark theme.
	rec := f.do(t, http.MethodGet, "/api/v1/tenant", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tr := decode[server.TenantResponse](t, rec)
	require.True(t, tr.Dark)
	require.Equal(t, "Dark", tr.Theme.Name)

	// Switch tenant, then theme.
	rec = f.do(t, http.MethodPut, "/api/v1/tenant", map[string]string{"tenantId": "t-bright"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "t-bright", f.resolver.CurrentTenant().ID)

	rec = f.do(t, http.MethodPost, "/api/v1/tenant/theme", map[string]string{"theme": themes.KeyCorporate})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, themes.KeyCorporate, f.resolver.CurrentThemeKey())

	// Unknown theme keys are ignored, not errors.
	rec = f.do(t, http.MethodPost, "/api/v1/tenant/theme", map[string]string{"theme": "neon"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, themes.KeyCorporate, f.resolver.CurrentThemeKey())
}

func TestStyleTokensEndpoint(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tenant/tokens", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tokens map[string]string `json:"tokens"`
		Dark   bool              `json:"dark"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Tokens, 14)
	require.True(t, body.Dark)
}

func TestSwitchTenantUnknownID(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodPut, "/api/v1/tenant", map[string]string{"tenantId": "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	f := setupTestFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
