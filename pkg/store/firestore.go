package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
)

// FirestoreStore wraps an authenticated Firestore client for one project.
type FirestoreStore struct {
	client    *firestore.Client
	projectID string
}

// OpenFirestore builds a Firestore handle from a service-account key file.
func OpenFirestore(ctx context.Context, projectID, credentialFile string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client for %s: %w", projectID, err)
	}
	return &FirestoreStore{client: client, projectID: projectID}, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (document.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return document.Document{}, ErrNotFound
	}
	if err != nil {
		return document.Document{}, err
	}
	return document.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, data map[string]any) (document.Document, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return document.Document{}, err
	}
	return document.Document{ID: ref.ID, Data: data}, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	ref := s.client.Collection(collection).Doc(id)
	var err error
	if merge {
		_, err = ref.Set(ctx, data, firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, data)
	}
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) Query(ctx context.Context, q document.Query) ([]document.Document, error) {
	snaps, err := buildQuery(s.client.Collection(q.Collection).Query, q).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	docs := make([]document.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, document.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Collections(ctx context.Context) ([]string, error) {
	var names []string
	it := s.client.Collections(ctx)
	for {
		col, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, col.ID)
	}
	return names, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// buildQuery chains filters in input order, then order directives in input
// order, then the limit. Operator/field compatibility is left to the
// engine; its rejections surface as internal errors.
func buildQuery(q firestore.Query, dq document.Query) firestore.Query {
	for _, f := range dq.Filters {
		q = q.Where(f.Field, f.Operator, f.Value)
	}
	for _, o := range dq.Orders {
		dir := firestore.Asc
		if o.Direction == "desc" {
			dir = firestore.Desc
		}
		q = q.OrderBy(o.Field, dir)
	}
	if dq.Limit > 0 {
		q = q.Limit(dq.Limit)
	}
	return q
}
