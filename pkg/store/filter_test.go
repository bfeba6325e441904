package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
)

func TestMatchFilterComparisons(t *testing.T) {
	data := map[string]any{"age": 30.0, "name": "carol"}

	cases := []struct {
		op    string
		value any
		want  bool
	}{
		{"==", 30.0, true},
		{"==", 31.0, false},
		{"!=", 31.0, true},
		{"!=", 30.0, false},
		{"<", 31.0, true},
		{"<=", 30.0, true},
		{">", 29.0, true},
		{">=", 31.0, false},
	}
	for _, c := range cases {
		got := matchFilter(data, document.Filter{Field: "age", Operator: c.op, Value: c.value})
		assert.Equal(t, c.want, got, "age %s %v", c.op, c.value)
	}
}

func TestMatchFilterMissingFieldNeverMatches(t *testing.T) {
	data := map[string]any{"name": "carol"}

	assert.False(t, matchFilter(data, document.Filter{Field: "age", Operator: "==", Value: 30.0}))
	assert.False(t, matchFilter(data, document.Filter{Field: "age", Operator: "!=", Value: 30.0}))
}

func TestMatchFilterIntAndFloatEqual(t *testing.T) {
	data := map[string]any{"count": int64(5)}
	assert.True(t, matchFilter(data, document.Filter{Field: "count", Operator: "==", Value: 5.0}))
}

func TestMatchFilterDottedPath(t *testing.T) {
	data := map[string]any{"address": map[string]any{"city": "berlin"}}
	assert.True(t, matchFilter(data, document.Filter{Field: "address.city", Operator: "==", Value: "berlin"}))
	assert.False(t, matchFilter(data, document.Filter{Field: "address.zip", Operator: "==", Value: "10115"}))
}

func TestCompareValuesMixedKinds(t *testing.T) {
	_, comparable := compareValues("a", 1.0)
	assert.False(t, comparable)

	cmp, comparable := compareValues(time.Unix(1, 0), time.Unix(2, 0))
	assert.True(t, comparable)
	assert.Equal(t, -1, cmp)
}

func TestSortDocumentsMultipleKeys(t *testing.T) {
	docs := []document.Document{
		{ID: "1", Data: map[string]any{"group": "b", "rank": 2.0}},
		{ID: "2", Data: map[string]any{"group": "a", "rank": 2.0}},
		{ID: "3", Data: map[string]any{"group": "a", "rank": 1.0}},
	}

	sortDocuments(docs, []document.Order{
		{Field: "group", Direction: "asc"},
		{Field: "rank", Direction: "desc"},
	})

	ids := []string{docs[0].ID, docs[1].ID, docs[2].ID}
	assert.Equal(t, []string{"2", "3", "1"}, ids)
}

func TestSortDocumentsStable(t *testing.T) {
	docs := []document.Document{
		{ID: "1", Data: map[string]any{"rank": 1.0}},
		{ID: "2", Data: map[string]any{"rank": 1.0}},
	}
	sortDocuments(docs, []document.Order{{Field: "rank", Direction: "asc"}})
	assert.Equal(t, "1", docs[0].ID)
	assert.Equal(t, "2", docs[1].ID)
}
