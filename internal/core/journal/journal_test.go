package journal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/dsrename/internal/core/dataset"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "j.yaml"))
	plan := &dataset.Plan{
		Dir:    "/data/crow",
		Prefix: "crow",
		Order:  dataset.SortLexical,
		Steps: []dataset.Step{
			{Index: 1, Original: "a.jpg", Staged: "x.jpg", Final: "crow1.jpg", State: dataset.StatePending},
			{Index: 2, Original: "b.png", Staged: "y.png", Final: "crow2.png", State: dataset.StatePending},
		},
	}
	require.NoError(t, store.Begin(ctx, plan))
	require.NoError(t, store.Mark(ctx, 1, dataset.StateStaged))

	j, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Version, j.Version)
	assert.Equal(t, "crow", j.Plan.Prefix)
	assert.Equal(t, dataset.StatePending, j.Plan.Steps[0].State)
	assert.Equal(t, dataset.StateStaged, j.Plan.Steps[1].State)
	assert.False(t, j.CreatedAt.IsZero())

	// Begin copies the steps
	assert.Equal(t, dataset.StatePending, plan.Steps[1].State)

	assert.Error(t, store.Mark(ctx, 5, dataset.StateDone))

	require.NoError(t, store.Finish(ctx))
	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestStore_RejectsRelativeDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "j.yaml"))
	err := store.Begin(context.Background(), &dataset.Plan{Dir: "relative", Prefix: "p"})
	assert.Error(t, err)
}

func TestStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewStore(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	assert.Error(t, err)

	writeFile(t, dir, "v9.yaml", "version: 9\nplan:\n  dir: /x\n  prefix: p\n")
	_, err = NewStore(filepath.Join(dir, "v9.yaml")).Load(context.Background())
	assert.ErrorContains(t, err, "unsupported journal version")

	writeFile(t, dir, "empty.yaml", "version: 1\n")
	_, err = NewStore(filepath.Join(dir, "empty.yaml")).Load(context.Background())
	assert.ErrorContains(t, err, "no plan")
}

func TestDefaultPath(t *testing.T) {
	a, err := DefaultPath("/var/journals", "/data/crow")
	require.NoError(t, err)
	b, err := DefaultPath("/var/journals", "/other/crow")
	require.NoError(t, err)

	assert.Equal(t, "/var/journals", filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), "crow-"))
	assert.True(t, strings.HasSuffix(a, ".yaml"))
	assert.NotEqual(t, a, b)
}

func TestStore_RecordsRenamerProgress(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "b.jpeg", "b")
	writeFile(t, dir, "a.jpg", "a")

	store := NewStore(filepath.Join(t.TempDir(), "journal.yaml"))
	r := dataset.NewRenamer(dataset.WithRecorder(store))

	res, err := r.Rename(ctx, dir, "squirrel")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Renamed)

	// a successful run leaves no journal behind
	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(dir, "squirrel2.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestStore_ResumeFromJournal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", "a")
	writeFile(t, dir, "b.jpg", "b")

	store := NewStore(filepath.Join(t.TempDir(), "journal.yaml"))
	plan, err := dataset.NewRenamer().Plan(dir, "rat")
	require.NoError(t, err)
	require.NoError(t, store.Begin(ctx, plan))

	// simulate a crash after the first file was staged
	require.NoError(t, os.Rename(filepath.Join(dir, "a.jpg"), filepath.Join(dir, plan.Steps[0].Staged)))
	require.NoError(t, store.Mark(ctx, 0, dataset.StateStaged))

	j, err := store.Load(ctx)
	require.NoError(t, err)

	_, err = dataset.NewRenamer(dataset.WithRecorder(store)).Resume(ctx, &j.Plan)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "rat1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
	data, err = os.ReadFile(filepath.Join(dir, "rat2.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestStore_BeginKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", "a")
	writeFile(t, dir, "b.jpg", "b")

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(filepath.Join(t.TempDir(), "journal.yaml"))
	store.now = func() time.Time { return clock }

	plan, err := dataset.NewRenamer().Plan(dir, "crow")
	require.NoError(t, err)
	require.NoError(t, store.Begin(ctx, plan))
	created := clock

	clock = clock.Add(time.Hour)
	require.NoError(t, store.Begin(ctx, plan))

	j, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, j.CreatedAt.Equal(created), "created_at = %v", j.CreatedAt)
	assert.True(t, j.UpdatedAt.Equal(clock), "updated_at = %v", j.UpdatedAt)

	// Resume calls Begin again on the same journal.
	clock = clock.Add(time.Hour)
	var seen []time.Time
	rec := &createdAtRecorder{Store: store, seen: &seen}
	_, err = dataset.NewRenamer(dataset.WithRecorder(rec)).Resume(ctx, &j.Plan)
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	for _, c := range seen {
		assert.True(t, c.Equal(created), "created_at = %v", c)
	}
}

// createdAtRecorder captures the journal's creation time after every mark,
// before Finish removes the file.
type createdAtRecorder struct {
	*Store
	seen *[]time.Time
}

func (r *createdAtRecorder) Mark(ctx context.Context, index int, state dataset.StepState) error {
	if err := r.Store.Mark(ctx, index, state); err != nil {
		return err
	}
	j, err := r.Store.Load(ctx)
	if err != nil {
		return err
	}
	*r.seen = append(*r.seen, j.CreatedAt)
	return nil
}
