package file

// Configuration keys recognised in config.toml.
const (
	KeyStorageBackend      = "storage.backend"
	KeyStorageDataDir      = "storage.data_dir"
	KeyInputDir            = "input.dir"
	KeyChunkingMaxTokens   = "chunking.max_tokens"
	KeyChunkingOverlap     = "chunking.overlap"
	KeyEmbeddingBackend    = "embedding.backend"
	KeyEmbeddingDimensions = "embedding.dimensions"
	KeyEmbeddingModel      = "embedding.model"
	KeyEmbeddingBaseURL    = "embedding.base_url"
)

// Defaults applied when a key is absent.
const (
	DefaultBackend          = "json"
	DefaultMaxTokens        = 120
	DefaultOverlap          = 40
	DefaultEmbeddingBackend = "hashed"
	DefaultDimensions       = 8
)

// Settings is the typed view of the pipeline configuration.
type Settings struct {
	Backend   string
	DataDir   string
	InputDir  string
	MaxTokens int
	Overlap   int

	// EmbeddingBackend selects "hashed" (deterministic, default) or
	// "ollama" (model-backed).
	EmbeddingBackend string
	Dimensions       int
	EmbeddingModel   string
	EmbeddingBaseURL string
}

// LoadSettings reads the typed settings from the store, applying
// defaults for missing keys. Empty DataDir and InputDir mean the
// adapters should fall back to their ~/.docgraph locations.
func LoadSettings(store *ConfigStore) Settings {
	s := Settings{
		Backend:          store.GetString(KeyStorageBackend),
		DataDir:          store.GetString(KeyStorageDataDir),
		InputDir:         store.GetString(KeyInputDir),
		MaxTokens:        store.GetInt(KeyChunkingMaxTokens),
		Overlap:          DefaultOverlap,
		EmbeddingBackend: store.GetString(KeyEmbeddingBackend),
		Dimensions:       store.GetInt(KeyEmbeddingDimensions),
		EmbeddingModel:   store.GetString(KeyEmbeddingModel),
		EmbeddingBaseURL: store.GetString(KeyEmbeddingBaseURL),
	}

	// Overlap zero is a valid setting, so presence matters.
	if _, ok := store.Get(KeyChunkingOverlap); ok {
		s.Overlap = store.GetInt(KeyChunkingOverlap)
	}

	if s.Backend == "" {
		s.Backend = DefaultBackend
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = DefaultMaxTokens
	}
	if s.Overlap < 0 || s.Overlap >= s.MaxTokens {
		s.Overlap = DefaultOverlap
		// Small windows need the fallback scaled down too.
		if s.Overlap >= s.MaxTokens {
			s.Overlap = s.MaxTokens / 3
		}
	}
	if s.EmbeddingBackend == "" {
		s.EmbeddingBackend = DefaultEmbeddingBackend
	}
	if s.Dimensions <= 0 {
		s.Dimensions = DefaultDimensions
	}
	return s
}
