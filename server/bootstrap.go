package server

import (
	"context"
	"fmt"
	"time"

	"github.com/0xsonu/mlms/tenants"
	"github.com/0xsonu/mlms/themes"
	"github.com/0xsonu/mlms/users"
	"github.com/rs/zerolog/log"
)

// seedIfEmpty populates an empty tenant catalog with demo tenants and
// users so a fresh deployment has something to log into. Catalogs that
// already hold tenants are left untouched.
func (s *Server) seedIfEmpty(ctx context.Context) error {
	existing, err := s.deps.Tenants.List(0, 1)
	if err != nil {
		return fmt.Errorf("[seedIfEmpty] failed to list tenants: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	seedTenants := []*tenants.Tenant{
		{
			ID:             "t-acme",
			Name:           "Acme Academy",
			Domain:         "acme.lms.local",
			PrimaryColor:   "217.2 91.2% 59.8%",
			SecondaryColor: "217.2 32.6% 17.5%",
			FontFamily:     "Inter, system-ui, sans-serif",
			Theme:          themes.KeyDark,
			Settings: tenants.Settings{
				AllowSelfRegistration:    true,
				RequireEmailVerification: false,
				DefaultUserRole:          string(users.RoleLearner),
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:             "t-bright",
			Name:           "Bright Learning",
			Domain:         "bright.lms.local",
			PrimaryColor:   "262.1 83.3% 57.8%",
			SecondaryColor: "220 14.3% 95.9%",
			FontFamily:     "Inter, system-ui, sans-serif",
			Theme:          themes.KeyEduBright,
			Settings: tenants.Settings{
				AllowSelfRegistration:    false,
				RequireEmailVerification: true,
				DefaultUserRole:          string(users.RoleInstructor),
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, t := range seedTenants {
		if err := s.deps.Tenants.Upsert(t); err != nil {
			return fmt.Errorf("[seedIfEmpty] failed to seed tenant %s: %w", t.ID, err)
		}
	}

	seedUsers := []*users.User{
		{ID: "u-admin", Email: "admin@acme.edu", Name: "Ada Admin", Role: users.RoleAdmin, TenantID: "t-acme"},
		{ID: "u-instructor", Email: "instructor@acme.edu", Name: "Ivan Instructor", Role: users.RoleInstructor, TenantID: "t-acme"},
		{ID: "u-learner", Email: "learner@acme.edu", Name: "Lena Learner", Role: users.RoleLearner, TenantID: "t-acme"},
	}
	for _, u := range seedUsers {
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := s.deps.Users.Upsert(u); err != nil {
			return fmt.Errorf("[seedIfEmpty] failed to seed user %s: %w", u.Email, err)
		}
	}

	log.Info().Int("tenants", len(seedTenants)).Int("users", len(seedUsers)).Msg("Seeded demo tenants and users")
	return nil
}
