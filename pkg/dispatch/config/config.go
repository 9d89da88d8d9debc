package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config is a read-only view of registry settings.
// Accessors return the supplied default when a key is missing or holds a
// value of another type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Path returns the string value for key as a filesystem path.
// Environment variables ($VAR, ${VAR}) and a leading "~/" are expanded.
// The special SQLite path ":memory:" is returned unchanged.
func (c Config) Path(key, defaultVal string) string {
	p := c.String(key, defaultVal)
	if p == "" || p == ":memory:" {
		return p
	}

	p = os.ExpandEnv(p)
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, rest)
		}
	}
	return p
}

// Section returns the nested map under key as a Config.
// Missing keys and non-map values yield an empty Config.
func (c Config) Section(key string) Config {
	if m, ok := c.data[key].(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Keys returns the top-level keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unknown returns the top-level keys not listed in known, sorted.
// Used to reject misspelled settings.
func (c Config) Unknown(known ...string) []string {
	allowed := make(map[string]bool, len(known))
	for _, k := range known {
		allowed[k] = true
	}

	var unknown []string
	for _, k := range c.Keys() {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}
