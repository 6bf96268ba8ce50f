package state

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// ConfigStore is a concurrent string to string map holding the runtime configuration of a service
type ConfigStore struct {
	sync.RWMutex
	entries map[string]string
	logger  *zerolog.Logger
}

// NewConfigStore creates an empty ConfigStore. Parse failures are logged to logger
func NewConfigStore(logger *zerolog.Logger) *ConfigStore {
	return &ConfigStore{
		entries: make(map[string]string),
		logger:  logger,
	}
}

// Get returns the value stored for key and whether the key is present
func (c *ConfigStore) Get(key string) (string, bool) {
	c.RLock()
	defer c.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set inserts or overwrites the value for key
func (c *ConfigStore) Set(key, value string) {
	c.Lock()
	defer c.Unlock()
	c.entries[key] = value
}

// GetUint32 returns the value for key parsed as an unsigned 32 bit integer. defaultValue is returned when the key
// is absent or when the value does not parse, the latter being logged as a warning
func (c *ConfigStore) GetUint32(key string, defaultValue uint32) uint32 {
	v, ok := c.Get(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn().Str("key", key).Msgf("failed to convert value [%s]", v)
		}
		return defaultValue
	}
	return uint32(n)
}

// GetString returns the value for key or defaultValue if absent
func (c *ConfigStore) GetString(key, defaultValue string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return defaultValue
}

// Len returns the number of entries
func (c *ConfigStore) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.entries)
}

// Clear removes every entry
func (c *ConfigStore) Clear() {
	c.Lock()
	defer c.Unlock()
	c.entries = make(map[string]string)
}
