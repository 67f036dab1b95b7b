package settings

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// snapshot holds the in-memory panel setting values.
type snapshot struct {
	updatedAt time.Time
	values    map[string]json.RawMessage
}

// globalSnapshot stores the latest snapshot atomically.
var globalSnapshot atomic.Value // stores snapshot

// init seeds the global snapshot.
func init() {
	globalSnapshot.Store(snapshot{values: map[string]json.RawMessage{}})
}

// Store replaces the in-memory snapshot of DB-backed panel settings.
func Store(updatedAt time.Time, values map[string]json.RawMessage) {
	next := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if v == nil {
			next[key] = nil
			continue
		}
		copied := make([]byte, len(v))
		copy(copied, v)
		next[key] = copied
	}

	globalSnapshot.Store(snapshot{
		updatedAt: updatedAt.UTC(),
		values:    next,
	})
}

// UpdatedAt returns the last update timestamp of the snapshot.
func UpdatedAt() time.Time {
	return loadSnapshot().updatedAt
}

// Value returns a copy of the raw setting value for a key.
func Value(key string) (json.RawMessage, bool) {
	cfg := loadSnapshot()
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	val, ok := cfg.values[key]
	if !ok {
		return nil, false
	}
	if val == nil {
		return nil, true
	}
	copied := make([]byte, len(val))
	copy(copied, val)
	return copied, true
}

// PanelName returns the configured panel display name.
func PanelName() string {
	raw, ok := Value(PanelNameKey)
	if !ok {
		return DefaultPanelName
	}
	var name string
	if errUnmarshal := json.Unmarshal(raw, &name); errUnmarshal != nil {
		return DefaultPanelName
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPanelName
	}
	return name
}

// MockFallbackEnabled reports whether failed performance fetches should be
// answered with generated mock metrics.
func MockFallbackEnabled() bool {
	raw, ok := Value(PerformanceMockFallbackKey)
	if !ok {
		return DefaultPerformanceMockFallback
	}
	var enabled bool
	if errUnmarshal := json.Unmarshal(raw, &enabled); errUnmarshal != nil {
		return DefaultPerformanceMockFallback
	}
	return enabled
}

// loadSnapshot returns the current snapshot with safe defaults.
func loadSnapshot() snapshot {
	v := globalSnapshot.Load()
	cfg, ok := v.(snapshot)
	if !ok {
		return snapshot{values: map[string]json.RawMessage{}}
	}
	if cfg.values == nil {
		return snapshot{updatedAt: cfg.updatedAt, values: map[string]json.RawMessage{}}
	}
	return cfg
}
