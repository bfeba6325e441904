package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/halcyonlabs/mcp-firestore/pkg/config"
	"github.com/halcyonlabs/mcp-firestore/pkg/store"
)

// NewOpener selects the opener for the configured backend.
func NewOpener(cfg *config.Config) (Opener, error) {
	switch cfg.Database.Backend {
	case "firestore", "":
		return &firestoreOpener{cfg: cfg}, nil
	case "sqlite":
		return &sqliteOpener{dir: cfg.Database.SQLite.Dir}, nil
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
}

// firestoreOpener locates a service-account key for the project and builds
// a Firestore client from it.
type firestoreOpener struct {
	cfg *config.Config
}

func (o *firestoreOpener) Open(ctx context.Context, projectID string) (store.Store, error) {
	credFile := o.cfg.CredentialFile(projectID)
	if _, err := os.Stat(credFile); err != nil {
		return nil, fmt.Errorf("no credential file at %s: %w", credFile, err)
	}
	return store.OpenFirestore(ctx, projectID, credFile)
}

// sqliteOpener keeps one local database file per project under a data
// directory. No credentials are involved.
type sqliteOpener struct {
	dir string
}

func (o *sqliteOpener) Open(ctx context.Context, projectID string) (store.Store, error) {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return store.OpenSQLite(filepath.Join(o.dir, projectID+".db"))
}
