package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthLogin    = "/api/v1/auth/login"
	RouteAuthRegister = "/api/v1/auth/register"
	RouteAuthLogout   = "/api/v1/auth/logout"
	RouteAuthRefresh  = "/api/v1/auth/refresh"
	RouteAuthSession  = "/api/v1/auth/session"
	RouteAuthProfile  = "/api/v1/auth/profile"

	// Tenant / Theme Routes
	RouteTenant       = "/api/v1/tenant"
	RouteTenantTheme  = "/api/v1/tenant/theme"
	RouteTenantThemes = "/api/v1/tenant/themes"
	RouteTenantTokens = "/api/v1/tenant/tokens"

	// Operational Routes
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
)
