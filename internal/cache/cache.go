// Package cache provides result caches for recommendation outcomes keyed by
// request fingerprint. Entries expire after a fixed TTL and expiry is checked
// when an entry is read.
package cache

import (
	"context"
	"time"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

// DefaultTTL is how long a stored result stays valid.
const DefaultTTL = 24 * time.Hour

// Cache is an advisor.ResultCache that can also report its health.
type Cache interface {
	advisor.ResultCache
	Ping(ctx context.Context) error
}
