// Package cli provides the cobra command tree for the docgraph CLI.
// Commands render pipeline results; all indexing logic lives in the
// core services.
package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgraph-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docgraph-cli/internal/adapters/driven/export/graphml"
	"github.com/custodia-labs/docgraph-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/docgraph-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docgraph-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docgraph-cli/internal/core/services"
	"github.com/custodia-labs/docgraph-cli/internal/embeddings/hashed"
	"github.com/custodia-labs/docgraph-cli/internal/embeddings/ollama"
	"github.com/custodia-labs/docgraph-cli/internal/extractors/heuristic"
	"github.com/custodia-labs/docgraph-cli/internal/logger"
	"github.com/custodia-labs/docgraph-cli/internal/normalisers"
	"github.com/custodia-labs/docgraph-cli/internal/normalisers/html"
	"github.com/custodia-labs/docgraph-cli/internal/normalisers/office"
	"github.com/custodia-labs/docgraph-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/docgraph-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/docgraph-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verboseFlag  bool
	dataDirFlag  string
	inputDirFlag string
	backendFlag  string
)

// Wired collaborators. Tests inject pipelineService and inputScanner
// directly; production wiring happens in initPipeline.
var (
	pipelineService driving.Pipeline
	inputScanner    driven.InputScanner
	storeCloser     io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "docgraph",
	Short: "Index documents into a content-addressed knowledge graph",
	Long: `docgraph ingests documents, splits them into overlapping token
chunks, extracts entities and relations, and maintains a persistent
knowledge graph with deterministic embeddings and a GraphML export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if pipelineService != nil {
			return nil
		}
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initPipeline()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if storeCloser != nil {
			_ = storeCloser.Close()
			storeCloser = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Data directory (default ~/.docgraph/rag_storage)")
	rootCmd.PersistentFlags().StringVar(&inputDirFlag, "input-dir", "", "Input directory (default ~/.docgraph/inputs)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: json or sqlite (default from config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initPipeline builds the production adapter stack from configuration
// and flags.
func initPipeline() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	settings := file.LoadSettings(configStore)
	if dataDirFlag != "" {
		settings.DataDir = dataDirFlag
	}
	if inputDirFlag != "" {
		settings.InputDir = inputDirFlag
	}
	if backendFlag != "" {
		settings.Backend = backendFlag
	}

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(html.New())
	registry.Register(office.New())
	registry.Register(pdf.New())

	scanner, err := filesystem.New(settings.InputDir, registry)
	if err != nil {
		return err
	}

	var store driven.StateStore
	var dataDir string
	switch settings.Backend {
	case "sqlite":
		s, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return err
		}
		store = s
		dataDir = filepath.Dir(s.Path())
	case "json":
		s, err := jsonfile.NewStore(settings.DataDir)
		if err != nil {
			return err
		}
		store = s
		dataDir = s.Path()
	default:
		return fmt.Errorf("unknown storage backend %q", settings.Backend)
	}

	var embedder driven.EmbeddingService
	switch settings.EmbeddingBackend {
	case "ollama":
		embedder = ollama.New(ollama.Config{
			BaseURL:    settings.EmbeddingBaseURL,
			Model:      settings.EmbeddingModel,
			Dimensions: settings.Dimensions,
		})
	case "hashed":
		embedder = hashed.New(settings.Dimensions)
	default:
		return fmt.Errorf("unknown embedding backend %q", settings.EmbeddingBackend)
	}

	pipelineService = services.NewPipelineService(
		store,
		chunker.New(
			chunker.WithMaxTokens(settings.MaxTokens),
			chunker.WithOverlap(settings.Overlap),
		),
		heuristic.New(),
		embedder,
		graphml.New(dataDir),
		scanner,
		registry,
	)
	inputScanner = scanner
	storeCloser = store

	logger.Debug("pipeline initialised: backend=%s data=%s input=%s",
		settings.Backend, dataDir, scanner.Dir())
	return nil
}
