package db

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"fintrack-server/src/models"
)

// ProfileCache keeps recently fetched users keyed by id. Users cannot be
// edited after registration, so entries only leave through TTL or eviction.
type ProfileCache struct {
	cache *ristretto.Cache[string, *models.User]
	ttl   time.Duration
}

func NewProfileCache(ttl time.Duration) (*ProfileCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *models.User]{
		NumCounters:        10000, // number of keys to track frequency of
		MaxCost:            1000,
		BufferItems:        64, // number of keys per Get buffer
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &ProfileCache{cache: cache, ttl: ttl}, nil
}

func (c *ProfileCache) Get(userID string) (*models.User, bool) {
	return c.cache.Get(userID)
}

func (c *ProfileCache) Set(user *models.User) {
	c.cache.SetWithTTL(user.ID, user, 1, c.ttl)
}

func (c *ProfileCache) Del(userID string) {
	c.cache.Del(userID)
}

// Wait blocks until buffered writes are visible to Get.
func (c *ProfileCache) Wait() {
	c.cache.Wait()
}

func (c *ProfileCache) Close() {
	c.cache.Close()
}
