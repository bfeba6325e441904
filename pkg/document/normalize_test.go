package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScalarsUnchanged(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Equal(t, "hello", Normalize("hello"))
	assert.Equal(t, 42.0, Normalize(42.0))
	assert.Equal(t, true, Normalize(true))
}

func TestNormalizeWireTimestamp(t *testing.T) {
	got := Normalize(map[string]any{"seconds": 1700000000.0, "nanoseconds": 500.0})

	ts, ok := got.(time.Time)
	require.True(t, ok, "expected time.Time, got %T", got)
	assert.Equal(t, time.Unix(1700000000, 500).UTC(), ts)
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize(map[string]any{"seconds": 1700000000.0, "nanoseconds": 0.0})
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeNativeTimestampUnchanged(t *testing.T) {
	now := time.Now()
	assert.Equal(t, now, Normalize(now))
}

func TestNormalizeNearMissShapes(t *testing.T) {
	t.Run("extra key stays a mapping", func(t *testing.T) {
		v := map[string]any{"seconds": 1.0, "nanoseconds": 2.0, "zone": "UTC"}
		got := Normalize(v)
		assert.Equal(t, v, got)
	})

	t.Run("missing nanoseconds stays a mapping", func(t *testing.T) {
		v := map[string]any{"seconds": 1.0, "millis": 2.0}
		assert.Equal(t, v, Normalize(v))
	})

	t.Run("non-numeric field stays a mapping", func(t *testing.T) {
		v := map[string]any{"seconds": "1", "nanoseconds": 2.0}
		assert.Equal(t, v, Normalize(v))
	})
}

func TestNormalizeNested(t *testing.T) {
	v := map[string]any{
		"name": "event",
		"when": map[string]any{"seconds": 100.0, "nanoseconds": 0.0},
		"history": []any{
			map[string]any{"seconds": 50.0, "nanoseconds": 0.0},
			"plain",
		},
		"meta": map[string]any{"count": 3.0},
	}

	got := Normalize(v).(map[string]any)

	assert.Equal(t, "event", got["name"])
	assert.Equal(t, time.Unix(100, 0).UTC(), got["when"])

	history := got["history"].([]any)
	require.Len(t, history, 2)
	assert.Equal(t, time.Unix(50, 0).UTC(), history[0])
	assert.Equal(t, "plain", history[1])

	assert.Equal(t, map[string]any{"count": 3.0}, got["meta"])
}

func TestNormalizePreservesStructureWithoutTimestamps(t *testing.T) {
	v := map[string]any{
		"a": []any{1.0, 2.0, []any{"x", nil}},
		"b": map[string]any{"c": map[string]any{"d": false}},
	}
	assert.Equal(t, v, Normalize(v))
}

func TestNormalizeMapNil(t *testing.T) {
	assert.Nil(t, NormalizeMap(nil))
}

func TestWithID(t *testing.T) {
	doc := Document{ID: "abc", Data: map[string]any{"name": "a"}}
	got := doc.WithID()
	assert.Equal(t, map[string]any{"id": "abc", "name": "a"}, got)
	// The receiver's data is not mutated.
	assert.NotContains(t, doc.Data, "id")
}

func TestValidOperator(t *testing.T) {
	for _, op := range Operators {
		assert.True(t, ValidOperator(op), op)
	}
	assert.False(t, ValidOperator("="))
	assert.False(t, ValidOperator("contains"))
}

func TestValidDirection(t *testing.T) {
	assert.True(t, ValidDirection("asc"))
	assert.True(t, ValidDirection("desc"))
	assert.False(t, ValidDirection("ascending"))
}
