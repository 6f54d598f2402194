package tenants

import "time"

// Settings controls how new users join a tenant.
type Settings struct {
	AllowSelfRegistration    bool   `json:"allowSelfRegistration"`
	RequireEmailVerification bool   `json:"requireEmailVerification"`
	DefaultUserRole          string `json:"defaultUserRole"` // instructor or learner
}

// Tenant represents an organization with its own branding and theme.
// Multiple tenants share one application instance; exactly one tenant is
// current per deployment context, resolved at startup by the branding
// resolver.
type Tenant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Domain         string    `json:"domain"`
	LogoURL        string    `json:"logo,omitempty"`
	PrimaryColor   string    `json:"primaryColor"`
	SecondaryColor string    `json:"secondaryColor"`
	FontFamily     string    `json:"fontFamily"`
	Theme          string    `json:"theme"` // key into the theme catalog
	Settings       Settings  `json:"settings"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}
