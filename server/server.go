package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/0xsonu/mlms/branding"
	"github.com/0xsonu/mlms/internal/config"
	"github.com/0xsonu/mlms/session"
	"github.com/0xsonu/mlms/tenants"
	"github.com/0xsonu/mlms/users"
	"golang.org/x/time/rate"
)

// Deps holds everything the HTTP surface serves.
type Deps struct {
	Sessions *session.Manager
	Branding *branding.Resolver
	Users    users.Directory
	Tenants  tenants.Catalog
}

// Server exposes the session manager and branding resolver to the
// dashboard UI as a JSON API.
type Server struct {
	env          string // Environment (e.g., "DEV", "production")
	mux          *http.ServeMux
	routes       []string
	config       *config.Config
	deps         Deps
	loginLimiter *rate.Limiter
}

func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil {
		return nil, fmt.Errorf("[Server New] session manager is required")
	}
	if deps.Branding == nil {
		return nil, fmt.Errorf("[Server New] branding resolver is required")
	}
	if deps.Users == nil || deps.Tenants == nil {
		return nil, fmt.Errorf("[Server New] users directory and tenant catalog are required")
	}

	perMinute := cfg.LoginRatePerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	s := &Server{
		env:          cfg.Env,
		mux:          http.NewServeMux(),
		config:       cfg,
		deps:         deps,
		loginLimiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
	}

	// Bootstrap: seed demo tenants and users on an empty catalog
	if err := s.seedIfEmpty(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] failed to seed system data: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
