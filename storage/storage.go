// Package storage defines the durable key/value store the session manager
// and branding resolver persist their state in. The key surface is three
// string-valued slots carried over from the browser-local store of the
// original dashboard.
package storage

import (
	"context"
	"errors"
)

// The three persisted slots. KeySession holds a JSON session record,
// KeyUser the JSON user snapshot, KeyCurrentTenant a raw tenant id.
// The session manager writes the first two; the branding resolver writes
// the third.
const (
	KeySession       = "lms_session"
	KeyUser          = "lms_user"
	KeyCurrentTenant = "currentTenantId"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable string key/value store. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
