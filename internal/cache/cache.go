// Package cache holds analysis results for the lifetime of the process,
// keyed by a digest of the prepared transcript content, so an unchanged
// conversation never triggers a second round of model calls.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Waseeq28/recalibration-app/internal/conversation"
	"github.com/Waseeq28/recalibration-app/internal/profile"
)

// TTL is how long an entry stays valid. An older entry is a miss even if
// still present, and is evicted lazily on lookup or by Sweep.
const TTL = 30 * time.Minute

const (
	keyContentPrefix = 50 // chars of each turn's content that feed the key
	keyLength        = 20 // hex chars of the digest kept as the key
)

type entry struct {
	data     profile.Profile
	storedAt time.Time
}

// Cache is an in-memory analysis cache with time-based expiry. It is safe
// for concurrent use. The zero value is not usable; construct with New.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
		logger:  logger,
	}
}

// Key derives the cache key for a prepared turn sequence: role plus the
// first keyContentPrefix characters of each turn's content, digested to a
// short fixed-length string. Identical prepared transcripts map to
// identical keys.
func Key(turns []conversation.Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		content := t.Content
		if len(content) > keyContentPrefix {
			content = content[:keyContentPrefix]
		}
		parts[i] = string(t.Role) + ":" + content
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:keyLength]
}

// Get returns the cached profile for key, or false on a miss. An expired
// entry counts as a miss and is evicted on the spot.
func (c *Cache) Get(key string) (profile.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return profile.Profile{}, false
	}
	if c.now().Sub(e.storedAt) >= TTL {
		delete(c.entries, key)
		return profile.Profile{}, false
	}
	return e.data, true
}

// Put stores a validated profile under key, superseding any previous
// entry for the same transcript.
func (c *Cache) Put(key string, p profile.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: p, storedAt: c.now()}
}

// Sweep evicts every expired entry and reports how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) >= TTL {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper runs Sweep on a TTL interval until ctx is cancelled.
func (c *Cache) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(TTL)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.Sweep(); removed > 0 {
					c.logger.Debug("cache sweep", "evicted", removed)
				}
			}
		}
	}()
}
