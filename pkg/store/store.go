// Package store provides per-project document store handles. The Firestore
// backend is the production path; the SQLite backend serves tests and
// credential-free local deployments behind the same interface.
package store

import (
	"context"
	"errors"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
)

// ErrNotFound is returned by Get when no document exists at the given id.
var ErrNotFound = errors.New("document not found")

// Store is one project's authenticated document database handle.
type Store interface {
	// Get fetches one document by id, returning ErrNotFound when absent.
	Get(ctx context.Context, collection, id string) (document.Document, error)

	// Create adds a document under an auto-generated id.
	Create(ctx context.Context, collection string, data map[string]any) (document.Document, error)

	// Set writes a document at an explicit id. With merge, fields are
	// combined into any existing document; otherwise the document is
	// replaced wholesale. A missing document is created either way.
	Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error

	// Delete removes a document. Deleting an absent document is not an
	// error at this level; callers check existence first when they need to.
	Delete(ctx context.Context, collection, id string) error

	// Query returns the documents matching q, filters AND-combined, order
	// directives applied in listed order, then the limit.
	Query(ctx context.Context, q document.Query) ([]document.Document, error)

	// Collections enumerates collection names at the database root.
	Collections(ctx context.Context) ([]string, error)

	Close() error
}
