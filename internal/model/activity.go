package model

import (
	"context"
	"time"
)

// ActivityEntry records one cart action applied to a session's store.
// Version is the store version after the action, so entries can be ordered
// even when they were appended out of order.
type ActivityEntry struct {
	Version  uint64    `json:"version"`
	Action   Action    `json:"action"`
	Changed  bool      `json:"changed"`
	Recorded time.Time `json:"recorded_at"`
}

// ActivityJournal keeps the actions applied to each session's cart for as
// long as the session lives.
type ActivityJournal interface {
	Append(ctx context.Context, sessionID string, entry ActivityEntry) error
	// Load returns the entries ordered by Version.
	Load(ctx context.Context, sessionID string) ([]ActivityEntry, error)
	Clear(ctx context.Context, sessionID string) error
}
