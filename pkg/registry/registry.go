// Package registry holds one initialized document store per configured
// project. It is built once at startup and read-only afterwards; handlers
// receive it by reference, never through globals.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/halcyonlabs/mcp-firestore/pkg/config"
	"github.com/halcyonlabs/mcp-firestore/pkg/logger"
	"github.com/halcyonlabs/mcp-firestore/pkg/store"
)

var log *logrus.Entry

func init() {
	log = logger.WithName("registry")
}

// ErrNoProjects is returned when not a single configured project could be
// initialized. The caller treats it as fatal.
var ErrNoProjects = errors.New("no projects could be initialized")

// Opener constructs an authenticated store handle for one project id.
type Opener interface {
	Open(ctx context.Context, projectID string) (store.Store, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, projectID string) (store.Store, error)

func (f OpenerFunc) Open(ctx context.Context, projectID string) (store.Store, error) {
	return f(ctx, projectID)
}

// Registry maps project ids to initialized store handles. The first
// successfully registered project is the default.
type Registry struct {
	stores map[string]store.Store
	order  []string
	raw    string
}

// Initialize opens a store for every configured project. Projects whose
// opener fails (typically a missing credential file) are skipped with a
// warning; an entirely empty registry is an error.
func Initialize(ctx context.Context, cfg *config.Config, opener Opener) (*Registry, error) {
	r := &Registry{
		stores: make(map[string]store.Store, len(cfg.Projects)),
		raw:    cfg.RawProjects,
	}

	for _, projectID := range cfg.Projects {
		s, err := opener.Open(ctx, projectID)
		if err != nil {
			log.WithError(err).WithField("project", projectID).Warn("Skipping project")
			continue
		}
		r.stores[projectID] = s
		r.order = append(r.order, projectID)
		log.WithField("project", projectID).Info("Project initialized")
	}

	if len(r.order) == 0 {
		return nil, ErrNoProjects
	}
	return r, nil
}

// Resolve returns the store for a project id, or the default project's
// store when the id is empty.
func (r *Registry) Resolve(projectID string) (store.Store, error) {
	if projectID == "" {
		projectID = r.order[0]
	}
	s, ok := r.stores[projectID]
	if !ok {
		return nil, fmt.Errorf("project %q is not registered", projectID)
	}
	return s, nil
}

// Projects returns the registered project ids in registration order.
func (r *Registry) Projects() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultProject returns the id used when a call omits a project.
func (r *Registry) DefaultProject() string {
	return r.order[0]
}

// ConfiguredProjects returns the raw configuration string the registry was
// built from.
func (r *Registry) ConfiguredProjects() string {
	return r.raw
}

// Close closes every registered store.
func (r *Registry) Close() {
	for projectID, s := range r.stores {
		if err := s.Close(); err != nil {
			log.WithError(err).WithField("project", projectID).Warn("Failed to close store")
		}
	}
}
