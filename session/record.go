package session

import "time"

// record is the persisted session shape, stored as JSON under
// storage.KeySession. The field names and the RFC3339 expiry format are
// frozen for compatibility with previously persisted sessions.
type record struct {
	Expiry time.Time `json:"expiry"`
	UserID string    `json:"userId"`
}

func (r record) expired(now time.Time) bool {
	return !r.Expiry.After(now)
}
