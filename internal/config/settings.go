package config

import (
	"sort"
	"strings"
)

// Settings is an immutable name to value mapping built once at startup.
type Settings struct {
	values map[string]string
}

// NewSettings copies values into a new Settings.
func NewSettings(values map[string]string) Settings {
	out := make(map[string]string, len(values))
	for name, value := range values {
		out[name] = value
	}
	return Settings{values: out}
}

// SettingsFromEnviron builds Settings from KEY=VALUE pairs as returned by os.Environ.
func SettingsFromEnviron(environ []string) Settings {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		values[name] = value
	}
	return Settings{values: values}
}

// Lookup reports the value for name and whether it is set at all.
func (s Settings) Lookup(name string) (string, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Get returns the value for name, or an empty string.
func (s Settings) Get(name string) string {
	return s.values[name]
}

// Len returns the number of entries.
func (s Settings) Len() int {
	return len(s.values)
}

// Names returns the setting names in sorted order.
func (s Settings) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new Settings where entries from fill are added only when
// the name is not already set in s.
func (s Settings) Merge(fill map[string]string) Settings {
	out := make(map[string]string, len(s.values)+len(fill))
	for name, value := range s.values {
		out[name] = value
	}
	for name, value := range fill {
		if _, exists := out[name]; exists {
			continue
		}
		out[name] = value
	}
	return Settings{values: out}
}
