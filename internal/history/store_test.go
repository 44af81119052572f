// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{
		DBPath: filepath.Join(t.TempDir(), "nested", "history.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// clock returns a now function that advances one minute per call.
func clock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(time.Minute)
		return t
	}
}

func sampleReport(source string, avg float64) types.AggregateReport {
	return types.AggregateReport{
		Source: source,
		SlideScores: []types.SlideScore{
			{Number: 1, Weighted: 2.5, Report: types.SlideReport{
				types.CriterionStructure: {Score: 5, Comment: `Title present: "A".`, Weight: 0.5},
			}},
			{Number: 2, Weighted: 0, Report: types.SlideReport{
				types.CriterionStructure: {Comment: "No title found.", Weight: 0.5},
			}},
		},
		AverageScore: avg,
	}
}

func TestNewStoreCreatesSchema(t *testing.T) {
	store := testStore(t)
	for _, table := range []string{"runs", "slide_scores"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}
}

func TestRecordAndGet(t *testing.T) {
	store := testStore(t)
	store.now = clock(time.Date(2026, 3, 1, 9, 30, 15, 500, time.UTC))
	ctx := context.Background()

	run, err := store.Record(ctx, sampleReport("review.pptx", 1.25))
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, 2, run.SlideCount)

	got, err := store.Get(ctx, run.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "review.pptx", got.Deck)
	assert.Equal(t, 1.25, got.AverageScore)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC), got.ScoredAt)
	assert.Equal(t, sampleReport("review.pptx", 1.25).SlideScores, got.Slides)
}

func TestGetErrors(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrRunNotFound)

	run, err := store.Record(ctx, sampleReport("a.pptx", 1))
	require.NoError(t, err)
	_, err = store.Get(ctx, run.ID+"x")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestGetAmbiguousPrefix(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"abc-1", "abc-2"} {
		_, err := store.db.Exec(
			`INSERT INTO runs (id, deck, scored_at, slide_count, average_score) VALUES (?, 'd.pptx', ?, 0, 0)`,
			id, time.Now().UTC().Format(time.RFC3339))
		require.NoError(t, err)
	}

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	run, err := store.Get(ctx, "abc-2")
	require.NoError(t, err)
	assert.Empty(t, run.Slides)
}

func TestList(t *testing.T) {
	store := testStore(t)
	store.now = clock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i, src := range []string{"a.pptx", "b.pptx", "a.pptx"} {
		_, err := store.Record(ctx, sampleReport(src, float64(i)))
		require.NoError(t, err)
	}

	all, err := store.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, 2.0, all[0].AverageScore)
	assert.Equal(t, 0.0, all[2].AverageScore)
	assert.Nil(t, all[0].Slides)

	onlyA, err := store.List(ctx, "a.pptx", 0)
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)

	limited, err := store.List(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 2.0, limited[0].AverageScore)
}

func TestRecordEmptyReport(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	run, err := store.Record(ctx, types.AggregateReport{Source: "blank.pptx", SlideScores: []types.SlideScore{}})
	require.NoError(t, err)

	got, err := store.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Zero(t, got.SlideCount)
	assert.Empty(t, got.Slides)
}
