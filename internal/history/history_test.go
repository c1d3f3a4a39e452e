package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/muxer/internal/target"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	muxer := target.FromDir("code/muxer", "/home/u/code/muxer")
	notes := target.FromDir("notes", "/home/u/notes")

	require.NoError(t, store.Record(ctx, muxer))
	require.NoError(t, store.Record(ctx, muxer))
	require.NoError(t, store.Record(ctx, notes))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "muxer", entries[0].Name)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, "code/muxer", entries[0].Display)
	assert.WithinDuration(t, time.Now(), entries[0].LastLaunch, time.Minute)

	assert.Equal(t, "notes", entries[1].Name)
	assert.Equal(t, 1, entries[1].Count)
}

func TestRecord_KindsDoNotCollide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dir := target.Target{Kind: target.KindDir, Name: "web", Display: "web"}
	host := target.FromHost("web", "")
	host.Name = "web" // force the same name across kinds

	require.NoError(t, store.Record(ctx, dir))
	require.NoError(t, store.Record(ctx, host))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "same name under different kinds stays separate")
}

func TestRank(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	web := target.FromHost("web", "")
	muxer := target.FromDir("code/muxer", "/home/u/code/muxer")
	notes := target.FromDir("notes", "/home/u/notes")

	// muxer launched most, web once, notes never.
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Record(ctx, muxer))
	}
	require.NoError(t, store.Record(ctx, web))

	ranked := store.Rank(ctx, []target.Target{web, muxer, notes})
	require.Len(t, ranked, 3)
	assert.Equal(t, "code/muxer", ranked[0].Display)
	assert.Equal(t, "ssh: web", ranked[1].Display)
	assert.Equal(t, "notes", ranked[2].Display)
}

func TestRank_NoHistoryKeepsOrder(t *testing.T) {
	store := newTestStore(t)

	a := target.FromDir("a", "/a")
	b := target.FromDir("b", "/b")
	ranked := store.Rank(context.Background(), []target.Target{b, a})

	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Display)
	assert.Equal(t, "a", ranked[1].Display)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, target.FromDir("notes", "/home/u/notes")))
	require.NoError(t, store.Clear(ctx))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must find the same schema.
	store, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		count int
		age   time.Duration
		want  float64
	}{
		{"recent launch weighs most", 2, 30 * time.Minute, 8},
		{"today", 2, 5 * time.Hour, 4},
		{"this week", 2, 3 * 24 * time.Hour, 2},
		{"older decays", 2, 30 * 24 * time.Hour, 0.5},
		{"never launched", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.count, tt.age))
		})
	}
}
