// Package branding resolves which tenant's branding applies and
// materializes the selected theme as style tokens for the UI layer.
package branding

import (
	"context"
	"sync"

	"github.com/0xsonu/mlms/internal/metrics"
	"github.com/0xsonu/mlms/storage"
	"github.com/0xsonu/mlms/tenants"
	"github.com/0xsonu/mlms/themes"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Applier receives resolved style tokens whenever the active theme
// changes. The dashboard applies them to its rendering surface; services
// and tests use NopApplier. Apply has no failure mode.
type Applier interface {
	Apply(tokens map[string]string, dark bool)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(tokens map[string]string, dark bool)

func (f ApplierFunc) Apply(tokens map[string]string, dark bool) { f(tokens, dark) }

// NopApplier discards token updates.
func NopApplier() Applier {
	return ApplierFunc(func(map[string]string, bool) {})
}

// Deps holds the collaborators the Resolver is constructed with.
type Deps struct {
	Tenants tenants.Catalog // Tenant lookup and default
	Store   storage.Store   // Durable current-tenant slot
	Applier Applier         // Receives applied themes; nil means NopApplier
}

// Resolver owns the current tenant and the active theme. Resolution
// failures degrade to the catalog's default tenant; there is no error
// state. Safe for concurrent use.
type Resolver struct {
	deps    Deps
	metrics *metrics.Metrics

	mu       sync.RWMutex
	tenant   *tenants.Tenant
	theme    themes.Theme
	themeKey string
}

// Option modifies the Resolver instance.
type Option func(*Resolver)

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(mx *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = mx
	}
}

// NewResolver initializes a Resolver. Call Initialize before use.
func NewResolver(deps Deps, options ...Option) (*Resolver, error) {
	if deps.Tenants == nil {
		return nil, errors.New("[NewResolver] Tenants catalog is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[NewResolver] Store is required")
	}
	if deps.Applier == nil {
		deps.Applier = NopApplier()
	}

	r := &Resolver{
		deps:  deps,
		theme: themes.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Initialize resolves the current tenant from the previously saved tenant
// id, falling back to the catalog's default tenant, and applies its theme.
// It only fails when the catalog has no tenants at all.
func (r *Resolver) Initialize(ctx context.Context) error {
	tenant := r.savedTenant(ctx)
	if tenant == nil {
		first, err := r.deps.Tenants.First()
		if err != nil {
			return errors.Wrap(err, "[Resolver.Initialize] Tenants.First")
		}
		tenant = first
	}

	r.mu.Lock()
	theme, key := r.setTenant(tenant)
	r.mu.Unlock()

	r.apply(theme, key)
	return nil
}

// savedTenant resolves the persisted tenant id, or nil when nothing valid
// has been saved.
func (r *Resolver) savedTenant(ctx context.Context) *tenants.Tenant {
	id, err := r.deps.Store.Get(ctx, storage.KeyCurrentTenant)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Err(err).Msg("Failed to read saved tenant id")
		}
		return nil
	}
	tenant, err := r.deps.Tenants.Get(id)
	if err != nil {
		log.Warn().Str("tenant_id", id).Msg("Saved tenant id no longer resolves, using default")
		return nil
	}
	return tenant
}

// SetCurrentTenant replaces the current tenant, persists its id and
// applies its theme.
func (r *Resolver) SetCurrentTenant(ctx context.Context, tenant *tenants.Tenant) error {
	if tenant == nil {
		return errors.New("[Resolver.SetCurrentTenant] tenant is required")
	}

	r.mu.Lock()
	t := *tenant
	theme, key := r.setTenant(&t)
	r.mu.Unlock()

	r.apply(theme, key)

	if err := r.deps.Store.Set(ctx, storage.KeyCurrentTenant, tenant.ID); err != nil {
		return errors.Wrap(err, "[Resolver.SetCurrentTenant] persist tenant id")
	}
	if r.metrics != nil {
		r.metrics.TenantSwitchTotal.Inc()
	}
	return nil
}

// SwitchTheme applies the theme for key and records it as the current
// tenant's preference. An unknown key is silently ignored, as is a call
// before any tenant is current.
func (r *Resolver) SwitchTheme(ctx context.Context, key string) error {
	theme, ok := themes.Resolve(key)
	if !ok {
		log.Debug().Str("theme", key).Msg("Unknown theme key, ignoring")
		if r.metrics != nil {
			r.metrics.ThemeSwitchesTotal.WithLabelValues("unknown_key").Inc()
		}
		return nil
	}

	r.mu.Lock()
	if r.tenant == nil {
		r.mu.Unlock()
		return nil
	}
	r.tenant.Theme = key
	r.theme = theme
	r.themeKey = key
	tenantID := r.tenant.ID
	r.mu.Unlock()

	r.apply(theme, key)

	if err := r.deps.Store.Set(ctx, storage.KeyCurrentTenant, tenantID); err != nil {
		return errors.Wrap(err, "[Resolver.SwitchTheme] persist tenant id")
	}
	if r.metrics != nil {
		r.metrics.ThemeSwitchesTotal.WithLabelValues("ok").Inc()
	}
	return nil
}

// CurrentTenant returns a copy of the current tenant, or nil before
// Initialize.
func (r *Resolver) CurrentTenant() *tenants.Tenant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.tenant == nil {
		return nil
	}
	t := *r.tenant
	return &t
}

// CurrentTheme returns the active theme.
func (r *Resolver) CurrentTheme() themes.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.theme
}

// CurrentThemeKey returns the active theme's catalog key.
func (r *Resolver) CurrentThemeKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.themeKey
}

// StyleTokens returns the active theme resolved to style variables.
func (r *Resolver) StyleTokens() map[string]string {
	return themes.StyleTokens(r.CurrentTheme())
}

// setTenant makes tenant current and resolves its theme. An unresolvable
// theme key on the tenant record is a configuration error; it degrades to
// the default theme rather than leaving the UI theme-less. Caller holds
// the lock and applies the returned theme after unlocking.
func (r *Resolver) setTenant(tenant *tenants.Tenant) (themes.Theme, string) {
	theme, ok := themes.Resolve(tenant.Theme)
	key := tenant.Theme
	if !ok {
		log.Warn().Str("tenant_id", tenant.ID).Str("theme", tenant.Theme).
			Msg("Tenant references unknown theme, falling back to default")
		theme = themes.Default()
		key = themes.KeyDark
	}
	r.tenant = tenant
	r.theme = theme
	r.themeKey = key
	return theme, key
}

func (r *Resolver) apply(theme themes.Theme, key string) {
	r.deps.Applier.Apply(themes.StyleTokens(theme), themes.IsDark(key))
}
