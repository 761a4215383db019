package driven

// ConfigStore persists CLI settings. Keys use dot notation
// ("llm.provider", "pipeline.max_chunk_tokens"); the settings service
// owns the key vocabulary, implementations own storage and type
// conversion.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" when the key is
	// missing or holds another type.
	GetString(key string) string

	// GetInt returns the value as an int, or 0 when the key is missing
	// or holds another type.
	GetInt(key string) int

	// GetBool returns the value as a bool, or false when the key is
	// missing or holds another type.
	GetBool(key string) bool

	// Set stores a value. The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the backing file path, when there is one.
	Path() string
}
