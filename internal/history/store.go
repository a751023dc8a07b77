// Package history persists past canvas submissions in a bounded,
// newest-first archive backed by local SQLite key-value storage.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

const (
	// archiveKey is the single durable key holding the serialized archive.
	archiveKey = "bmc_history"

	// MaxEntries caps the archive; appending a 21st item evicts the oldest.
	MaxEntries = 20

	// previewLimit bounds the derived preview string, ellipsis excluded.
	previewLimit = 60

	// previewPlaceholder is shown when no preview source field is filled.
	previewPlaceholder = "Untitled Plan"
)

// Item is an immutable archival record of one canvas submission.
type Item struct {
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Preview   string            `json:"preview"`
	Data      canvas.CanvasData `json:"data"`
}

// Archive is the ordered archive, newest first.
type Archive []Item

// Store reads and writes the archive. The whole archive is serialized as one
// JSON value under a fixed key; every mutation rewrites it (last write wins,
// acceptable for single-process, single-user state).
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// NewStore opens (creating if needed) the history database at path.
func NewStore(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("failed to set sqlite journal_mode=WAL", zap.Error(err))
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the archive from durable storage. A missing key or malformed
// content yields an empty archive, never an error: the archive is cached
// convenience data, not working state.
func (s *Store) Load() Archive {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, archiveKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Archive{}
	}
	if err != nil {
		s.log.Warn("failed to read history archive, starting empty", zap.Error(err))
		return Archive{}
	}

	var archive Archive
	if err := json.Unmarshal([]byte(raw), &archive); err != nil {
		s.log.Warn("history archive is malformed, starting empty", zap.Error(err))
		return Archive{}
	}
	if len(archive) > MaxEntries {
		archive = archive[:MaxEntries]
	}
	return archive
}

// Append prepends a new item built from data, truncates to MaxEntries and
// persists the result. A persist failure is logged and the in-memory archive
// is still returned so the session stays consistent.
func (s *Store) Append(archive Archive, data canvas.CanvasData) Archive {
	item := Item{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Preview:   Preview(data),
		Data:      data,
	}

	updated := make(Archive, 0, len(archive)+1)
	updated = append(updated, item)
	updated = append(updated, archive...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	if err := s.persist(updated); err != nil {
		s.log.Error("failed to persist history archive", zap.Error(err))
	}
	return updated
}

// Delete removes the entry with the given id. Absent ids are a no-op.
func (s *Store) Delete(archive Archive, id string) Archive {
	updated := make(Archive, 0, len(archive))
	for _, item := range archive {
		if item.ID != id {
			updated = append(updated, item)
		}
	}
	if len(updated) == len(archive) {
		return archive
	}

	if err := s.persist(updated); err != nil {
		s.log.Error("failed to persist history archive", zap.Error(err))
	}
	return updated
}

func (s *Store) persist(archive Archive) error {
	raw, err := json.Marshal(archive)
	if err != nil {
		return fmt.Errorf("failed to serialize archive: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		archiveKey, string(raw))
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// Preview derives the display string for a canvas: the first non-empty of
// value propositions, key activities and customer segments, truncated to 60
// characters with a trailing ellipsis marker, or a placeholder when all
// three are empty.
func Preview(data canvas.CanvasData) string {
	source := ""
	for _, candidate := range []string{data.ValuePropositions, data.KeyActivities, data.CustomerSegments} {
		if strings.TrimSpace(candidate) != "" {
			source = strings.TrimSpace(candidate)
			break
		}
	}
	if source == "" {
		return previewPlaceholder
	}

	runes := []rune(source)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return source
}
