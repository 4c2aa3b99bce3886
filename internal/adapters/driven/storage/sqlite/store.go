package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docgraph-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// Mapping names used as the kv_records discriminator.
const (
	mappingDocs            = "docs"
	mappingDocStatus       = "doc_status"
	mappingChunks          = "chunks"
	mappingEntities        = "entities"
	mappingRelations       = "relations"
	mappingChunkVectors    = "chunk_vectors"
	mappingEntityVectors   = "entity_vectors"
	mappingRelationVectors = "relation_vectors"
	mappingLLMCache        = "llm_cache"
)

// Ensure Store implements the interface.
var _ driven.StateStore = (*Store)(nil)

// Store is a SQLite-backed implementation of driven.StateStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store inside dataDir, creating the
// directory if needed.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docgraph", "rag_storage")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docgraph.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every mapping into a state snapshot.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	state := domain.NewState()

	if err := loadMapping(ctx, s.db, mappingDocs, state.Docs); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingDocStatus, state.DocStatus); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingChunks, state.Chunks); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingEntities, state.Entities); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingRelations, state.Relations); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingChunkVectors, state.ChunkVectors); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingEntityVectors, state.EntityVectors); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingRelationVectors, state.RelationVectors); err != nil {
		return nil, err
	}
	if err := loadMapping(ctx, s.db, mappingLLMCache, state.LLMCache); err != nil {
		return nil, err
	}

	return state, nil
}

// Persist rewrites every mapping inside one transaction.
func (s *Store) Persist(ctx context.Context, state *domain.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM kv_records"); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	if err := saveMapping(ctx, tx, mappingDocs, state.Docs); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingDocStatus, state.DocStatus); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingChunks, state.Chunks); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingEntities, state.Entities); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingRelations, state.Relations); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingChunkVectors, state.ChunkVectors); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingEntityVectors, state.EntityVectors); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingRelationVectors, state.RelationVectors); err != nil {
		return err
	}
	if err := saveMapping(ctx, tx, mappingLLMCache, state.LLMCache); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing state: %w", err)
	}
	return nil
}

// LoadPipelineStatus reads the pipeline status singleton.
func (s *Store) LoadPipelineStatus(ctx context.Context) (*domain.PipelineStatus, error) {
	status := domain.NewPipelineStatus()

	var payload string
	row := s.db.QueryRowContext(ctx, "SELECT payload FROM pipeline_status WHERE id = 1")
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return status, nil
		}
		return nil, fmt.Errorf("loading pipeline status: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), status); err != nil {
		return nil, fmt.Errorf("decoding pipeline status: %w", err)
	}
	if status.HistoryMessages == nil {
		status.HistoryMessages = []string{}
	}
	return status, nil
}

// SavePipelineStatus writes the pipeline status singleton.
func (s *Store) SavePipelineStatus(ctx context.Context, status *domain.PipelineStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encoding pipeline status: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pipeline_status (id, payload) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload
	`, string(payload))
	if err != nil {
		return fmt.Errorf("saving pipeline status: %w", err)
	}
	return nil
}

// loadMapping fills dst with all rows of one mapping.
func loadMapping[T any](ctx context.Context, db *sql.DB, mapping string, dst map[string]T) error {
	rows, err := db.QueryContext(ctx,
		"SELECT id, payload FROM kv_records WHERE mapping = ?", mapping)
	if err != nil {
		return fmt.Errorf("querying %s: %w", mapping, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return fmt.Errorf("scanning %s: %w", mapping, err)
		}

		var value T
		if err := json.Unmarshal([]byte(payload), &value); err != nil {
			return fmt.Errorf("decoding %s record %s: %w", mapping, id, err)
		}
		dst[id] = value
	}
	return rows.Err()
}

// saveMapping inserts all entries of one mapping within the transaction.
func saveMapping[T any](ctx context.Context, tx *sql.Tx, mapping string, src map[string]T) error {
	if len(src) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO kv_records (mapping, id, payload) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", mapping, err)
	}
	defer stmt.Close()

	for id, value := range src {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding %s record %s: %w", mapping, id, err)
		}
		if _, err := stmt.ExecContext(ctx, mapping, id, string(payload)); err != nil {
			return fmt.Errorf("inserting %s record %s: %w", mapping, id, err)
		}
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
