package server

import (
	"encoding/json"
	"net/http"

	"github.com/0xsonu/mlms/themes"
	"github.com/rs/zerolog/log"
)

// TenantResponse carries the current tenant and its resolved theme.
type TenantResponse struct {
	Tenant any          `json:"tenant"`
	Theme  themes.Theme `json:"theme"`
	Dark   bool         `json:"dark"`
}

func (s *Server) CurrentTenantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := s.deps.Branding.CurrentTenant()
		if tenant == nil {
			respondError(w, http.StatusNotFound, "no tenant resolved")
			return
		}
		respondJSON(w, http.StatusOK, TenantResponse{
			Tenant: tenant,
			Theme:  s.deps.Branding.CurrentTheme(),
			Dark:   themes.IsDark(s.deps.Branding.CurrentThemeKey()),
		})
	}
}

type switchTenantRequest struct {
	TenantID string `json:"tenantId"`
}

func (s *Server) SwitchTenantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req switchTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TenantID == "" {
			respondError(w, http.StatusBadRequest, "tenantId is required")
			return
		}

		tenant, err := s.deps.Tenants.Get(req.TenantID)
		if err != nil {
			respondError(w, http.StatusNotFound, "tenant not found")
			return
		}
		if err := s.deps.Branding.SetCurrentTenant(r.Context(), tenant); err != nil {
			log.Err(err).Str("tenant_id", req.TenantID).Msg("Failed to switch tenant")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, http.StatusOK, TenantResponse{
			Tenant: s.deps.Branding.CurrentTenant(),
			Theme:  s.deps.Branding.CurrentTheme(),
			Dark:   themes.IsDark(s.deps.Branding.CurrentThemeKey()),
		})
	}
}

type switchThemeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) SwitchThemeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req switchThemeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
			respondError(w, http.StatusBadRequest, "theme is required")
			return
		}

		// Unknown keys are ignored by contract; the response reflects
		// whatever theme is active afterwards.
		if err := s.deps.Branding.SwitchTheme(r.Context(), req.Theme); err != nil {
			log.Err(err).Str("theme", req.Theme).Msg("Failed to switch theme")
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, http.StatusOK, TenantResponse{
			Tenant: s.deps.Branding.CurrentTenant(),
			Theme:  s.deps.Branding.CurrentTheme(),
			Dark:   themes.IsDark(s.deps.Branding.CurrentThemeKey()),
		})
	}
}

func (s *Server) ThemeCatalogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := make(map[string]themes.Theme, len(themes.Keys()))
		for _, key := range themes.Keys() {
			theme, _ := themes.Resolve(key)
			catalog[key] = theme
		}
		respondJSON(w, http.StatusOK, catalog)
	}
}

// StyleTokensHandler serves the resolved style variables the dashboard
// applies to its document root.
func (s *Server) StyleTokensHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"tokens": s.deps.Branding.StyleTokens(),
			"dark":   themes.IsDark(s.deps.Branding.CurrentThemeKey()),
		})
	}
}
