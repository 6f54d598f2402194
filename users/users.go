package users

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user's role within their tenant.
type RoleType string

const (
	RoleAdmin      RoleType = "admin"      // Can manage the tenant, its users and billing
	RoleInstructor RoleType = "instructor" // Can create and manage courses
	RoleLearner    RoleType = "learner"    // Can enrol in and take courses
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role RoleType) bool {
	switch role {
	case RoleAdmin, RoleInstructor, RoleLearner:
		return true
	}
	return false
}

// User is an identity record owned by a single tenant. Email is unique
// within a tenant. The password hash is never serialized.
type User struct {
	ID           string    `json:"id,omitempty"`        // Unique identifier for the user
	Email        string    `json:"email,omitempty"`     // User's email address
	Name         string    `json:"name,omitempty"`      // Display name
	Role         RoleType  `json:"role,omitempty"`      // admin, instructor or learner
	AvatarURL    string    `json:"avatar,omitempty"`    // Optional avatar image URL
	TenantID     string    `json:"tenantId,omitempty"`  // Owning tenant
	PasswordHash string    `json:"-"`                   // Hashed password - never serialize
	CreatedAt    time.Time `json:"createdAt,omitempty"` // When the user registered
	UpdatedAt    time.Time `json:"updatedAt,omitempty"` // Last profile change
}

// ProfileUpdate carries the fields a user may change about themselves.
// Empty fields are left untouched.
type ProfileUpdate struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar,omitempty"`
}

// Validate checks the fields required of every directory entry.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(u.TenantID) == "" {
		return fmt.Errorf("tenant id is required")
	}
	if u.Role != "" && !ValidRole(u.Role) {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
