package config

// Config tunes registry initialization from a startup file, without code
// changes at the registration sites:
//
//   - DefaultPriority applies to registrations that do not specify one.
//   - Priorities overrides the priority of specific keys.
//   - Disabled lists keys whose registrations are skipped entirely.
//
// Keys use the registry's key syntax: the fully qualified type name,
// optionally followed by "#" and an instance name.
type Config struct {
	DefaultPriority int            `yaml:"default_priority" json:"default_priority"`
	Priorities      map[string]int `yaml:"priorities" json:"priorities"`
	Disabled        []string       `yaml:"disabled" json:"disabled"`
}

// defaultPriority mirrors the registry's built-in default.
const defaultPriority = 5

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{DefaultPriority: defaultPriority}
}

// PriorityFor returns the configured priority for key, or fallback when
// no override exists.
func (c Config) PriorityFor(key string, fallback int) int {
	if p, ok := c.Priorities[key]; ok {
		return p
	}
	return fallback
}

// IsDisabled reports whether registrations for key should be skipped.
func (c Config) IsDisabled(key string) bool {
	for _, k := range c.Disabled {
		if k == key {
			return true
		}
	}
	return false
}
