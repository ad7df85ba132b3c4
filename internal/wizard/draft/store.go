// Package draft persists partially-complete wizard state outside the normal
// step-advance flow. The codec splits state into a JSON-safe data document and
// a preview-only file-reference document, written under two independent keys
// through a storage port so tests can substitute an in-memory fake.
package draft

import (
	"context"
	"time"
)

// Error Contract:
// All store methods follow this pattern:
// - Get returns the value, or an error wrapping sentinel.ErrNotFound when the
//   key is absent or expired
// - Set overwrites unconditionally; ttl <= 0 means no expiry
// - Delete is idempotent; deleting an absent key is not an error
// - Infrastructure failures are returned wrapped with context

// Store is the persistence port for drafts: a browser-localStorage shaped
// string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
