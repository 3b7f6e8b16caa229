// Package cache holds in-process read-through caches for rarely written data.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

var _ ports.SettingsProvider = (*SettingsCache)(nil)

const settingsKey = "approval_settings"

// SettingsCache serves approval settings from memory for ttl. Concurrent misses
// share one database read. A missing settings row is cached too, as nil.
type SettingsCache struct {
	repo  ports.SettingsRepository
	ttl   time.Duration
	clock ports.Clock

	group singleflight.Group

	mu         sync.RWMutex
	value      *settings.ApprovalSettings
	loaded     bool
	expiresAt  time.Time
	generation uint64
}

func NewSettingsCache(repo ports.SettingsRepository, ttl time.Duration, clock ports.Clock) *SettingsCache {
	return &SettingsCache{repo: repo, ttl: ttl, clock: clock}
}

func (c *SettingsCache) ApprovalSettings(ctx context.Context) (*settings.ApprovalSettings, error) {
	if s, ok := c.cached(); ok {
		return s, nil
	}

	v, err, _ := c.group.Do(settingsKey, func() (any, error) {
		if s, ok := c.cached(); ok {
			return s, nil
		}
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return clone(v.(*settings.ApprovalSettings)), nil
}

// Invalidate drops the cached value. A load that started before the call does
// not repopulate the cache.
func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	c.value = nil
	c.loaded = false
	c.generation++
	c.mu.Unlock()
	c.group.Forget(settingsKey)
}

func (c *SettingsCache) cached() (*settings.ApprovalSettings, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded || !c.clock.Now().Before(c.expiresAt) {
		return nil, false
	}
	return clone(c.value), true
}

func (c *SettingsCache) load(ctx context.Context) (*settings.ApprovalSettings, error) {
	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	s, err := c.repo.GetApprovalSettings(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		s, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == generation {
		c.value = s
		c.loaded = true
		c.expiresAt = c.clock.Now().Add(c.ttl)
	}
	c.mu.Unlock()
	return s, nil
}

func clone(s *settings.ApprovalSettings) *settings.ApprovalSettings {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
