package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware(s.LoginRateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware(s.LoginRateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthSession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteAuthProfile, ChainMiddleware(s.UpdateProfileHandler(), s.APIMiddleware()...))

	// TENANT / THEME
	s.RegisterRouteHandler("GET "+RouteTenant, ChainMiddleware(s.CurrentTenantHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteTenant, ChainMiddleware(s.SwitchTenantHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteTenantTheme, ChainMiddleware(s.SwitchThemeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTenantThemes, ChainMiddleware(s.ThemeCatalogHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTenantTokens, ChainMiddleware(s.StyleTokensHandler(), s.APIMiddleware()...))

	// OPERATIONAL
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}

func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
