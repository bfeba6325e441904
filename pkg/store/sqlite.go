package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
	"github.com/halcyonlabs/mcp-firestore/pkg/logger"
)

var log *logrus.Entry

func init() {
	log = logger.WithName("store")
}

// SQLiteStore is a local document store: one row per document, data held as
// a JSON column. It backs the test suite and credential-free deployments.
// Timestamps survive as RFC3339 strings rather than native values; that is
// a known fidelity limit relative to the Firestore backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) a local document database.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	log.WithField("path", path).Debug("Opening local document store")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection)"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (document.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return document.Document{}, ErrNotFound
	}
	if err != nil {
		return document.Document{}, err
	}

	data, err := decodeData(raw)
	if err != nil {
		return document.Document{}, err
	}
	return document.Document{ID: id, Data: data}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, collection string, data map[string]any) (document.Document, error) {
	id := uuid.NewString()
	raw, err := encodeData(data)
	if err != nil {
		return document.Document{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)",
		collection, id, raw,
	); err != nil {
		return document.Document{}, err
	}
	return document.Document{ID: id, Data: data}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	if merge {
		existing, err := s.Get(ctx, collection, id)
		if err != nil && err != ErrNotFound {
			return err
		}
		if err == nil {
			merged := make(map[string]any, len(existing.Data)+len(data))
			for k, v := range existing.Data {
				merged[k] = v
			}
			for k, v := range data {
				merged[k] = v
			}
			data = merged
		}
	}

	raw, err := encodeData(data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO documents (collection, id, data) VALUES (?, ?, ?)",
		collection, id, raw,
	)
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	return err
}

// Query scans the collection and evaluates filters, ordering, and the limit
// in process, mirroring the Firestore operator semantics.
func (s *SQLiteStore) Query(ctx context.Context, q document.Query) ([]document.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, data FROM documents WHERE collection = ? ORDER BY id",
		q.Collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]document.Document, 0)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		data, err := decodeData(raw)
		if err != nil {
			return nil, err
		}
		if matchFilters(data, q.Filters) {
			docs = append(docs, document.Document{ID: id, Data: data})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortDocuments(docs, q.Orders)
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *SQLiteStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT collection FROM documents ORDER BY collection",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeData(data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(raw), nil
}

func decodeData(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return data, nil
}
