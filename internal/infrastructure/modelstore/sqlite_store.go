package modelstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS model_artifacts (
	purpose  TEXT PRIMARY KEY,
	payload  BLOB NOT NULL,
	saved_at TEXT NOT NULL
);`

// SQLiteStore persists model artifacts in a local sqlite file, one blob per
// purpose. Implements port.ModelStore. Each payload already bundles model and
// scaler, and the upsert swaps it in a single transaction, so a reader can
// never observe a model without its scaler.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the artifact database at path.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("modelstore: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("modelstore: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the persisted payload for purpose, or
// model.ErrArtifactNotFound when none was ever saved.
func (s *SQLiteStore) Load(ctx context.Context, purpose string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM model_artifacts WHERE purpose = ?`, purpose,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("modelstore: load %s: %w", purpose, err)
	}
	return payload, nil
}

// Save overwrites the payload for purpose.
func (s *SQLiteStore) Save(ctx context.Context, purpose string, payload []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("modelstore: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO model_artifacts (purpose, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT (purpose) DO UPDATE SET
			payload  = excluded.payload,
			saved_at = excluded.saved_at`,
		purpose, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("modelstore: save %s: %w", purpose, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("modelstore: commit %s: %w", purpose, err)
	}
	return nil
}
