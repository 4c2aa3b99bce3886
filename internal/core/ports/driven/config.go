package driven

// ConfigStore provides persistent key/value configuration. Keys use
// dot notation for nested TOML tables, e.g. "chunking.max_tokens".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Path returns the backing file path.
	Path() string
}
