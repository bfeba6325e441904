package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlabs/mcp-firestore/pkg/config"
	"github.com/halcyonlabs/mcp-firestore/pkg/store"
)

func memoryOpener(t *testing.T) Opener {
	t.Helper()
	return OpenerFunc(func(ctx context.Context, projectID string) (store.Store, error) {
		return store.OpenSQLite(":memory:")
	})
}

func testConfig(projects ...string) *config.Config {
	raw := ""
	for i, p := range projects {
		if i > 0 {
			raw += ","
		}
		raw += p
	}
	return &config.Config{Projects: projects, RawProjects: raw}
}

func TestInitializeRegistersAllProjects(t *testing.T) {
	cfg := testConfig("alpha", "beta")

	r, err := Initialize(context.Background(), cfg, memoryOpener(t))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"alpha", "beta"}, r.Projects())
	assert.Equal(t, "alpha", r.DefaultProject())
	assert.Equal(t, "alpha,beta", r.ConfiguredProjects())
}

func TestInitializeSkipsFailingProjects(t *testing.T) {
	cfg := testConfig("broken", "ok")
	opener := OpenerFunc(func(ctx context.Context, projectID string) (store.Store, error) {
		if projectID == "broken" {
			return nil, fmt.Errorf("no credential file for %s", projectID)
		}
		return store.OpenSQLite(":memory:")
	})

	r, err := Initialize(context.Background(), cfg, opener)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"ok"}, r.Projects())
	assert.Equal(t, "ok", r.DefaultProject())
}

func TestInitializeEmptyRegistryFails(t *testing.T) {
	cfg := testConfig("a", "b")
	opener := OpenerFunc(func(ctx context.Context, projectID string) (store.Store, error) {
		return nil, fmt.Errorf("nope")
	})

	_, err := Initialize(context.Background(), cfg, opener)
	assert.ErrorIs(t, err, ErrNoProjects)
}

func TestResolve(t *testing.T) {
	cfg := testConfig("alpha", "beta")
	r, err := Initialize(context.Background(), cfg, memoryOpener(t))
	require.NoError(t, err)
	defer r.Close()

	t.Run("by id", func(t *testing.T) {
		s, err := r.Resolve("beta")
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("empty id resolves default", func(t *testing.T) {
		s, err := r.Resolve("")
		require.NoError(t, err)
		def, err2 := r.Resolve("alpha")
		require.NoError(t, err2)
		assert.Same(t, def, s)
	})

	t.Run("unknown id errors without panic", func(t *testing.T) {
		_, err := r.Resolve("gamma")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gamma")
	})
}

func TestSQLiteOpenerCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	opener := &sqliteOpener{dir: dir}

	s, err := opener.Open(context.Background(), "alpha")
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, filepath.Join(dir, "alpha.db"))
}

func TestFirestoreOpenerMissingCredentials(t *testing.T) {
	cfg := &config.Config{
		Credentials: config.CredentialsConfig{Dir: t.TempDir()},
	}
	opener := &firestoreOpener{cfg: cfg}

	_, err := opener.Open(context.Background(), "alpha")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no credential file")
}

func TestNewOpenerUnknownBackend(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Backend: "postgres"}}
	_, err := NewOpener(cfg)
	assert.Error(t, err)
}
