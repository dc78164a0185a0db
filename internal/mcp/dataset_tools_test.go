package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/dsrename/internal/core/classes"
	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/dirlock"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestPlanRename(t *testing.T) {
	s := NewServer(Options{})
	ctx := context.Background()
	dir := t.TempDir()
	writeFiles(t, dir, "photo.jpg", "B.JPEG", "a.png", ".keep")

	result, err := s.handlePlanRename(ctx, callRequest("plan_rename", map[string]interface{}{
		"dir":    dir,
		"prefix": "cat",
	}))
	require.NoError(t, err)

	var plan dataset.Plan
	meta := decodeResult(t, result, &plan)
	assert.Equal(t, "plan_rename", meta["tool_used"])

	require.Len(t, plan.Steps, 3)
	assert.Equal(t, "B.JPEG", plan.Steps[0].Original)
	assert.Equal(t, "cat1.jpg", plan.Steps[0].Final)
	assert.Equal(t, "cat2.png", plan.Steps[1].Final)
	assert.Equal(t, "cat3.jpg", plan.Steps[2].Final)

	// Planning does not touch the directory.
	assert.Equal(t, []string{".keep", "B.JPEG", "a.png", "photo.jpg"}, listDir(t, dir))
}

func TestRenameDataset(t *testing.T) {
	ctx := context.Background()

	t.Run("renames and verifies", func(t *testing.T) {
		s := NewServer(Options{})
		dir := t.TempDir()
		writeFiles(t, dir, "photo.jpg", "B.JPEG", "a.png", ".keep")

		result, err := s.handleRenameDataset(ctx, callRequest("rename_dataset", map[string]interface{}{
			"dir":    dir,
			"prefix": "cat",
		}))
		require.NoError(t, err)

		var res dataset.Result
		meta := decodeResult(t, result, &res)
		assert.Equal(t, 3, res.Renamed)
		assert.Equal(t, map[string]any{"sort": "lexical"}, meta["inferred_parameters"])
		assert.Equal(t, []string{".keep", "cat1.jpg", "cat2.png", "cat3.jpg"}, listDir(t, dir))

		result, err = s.handleVerifyDataset(ctx, callRequest("verify_dataset", map[string]interface{}{
			"dir":    dir,
			"prefix": "cat",
		}))
		require.NoError(t, err)
		var report struct {
			Total      int  `json:"total"`
			Normalized bool `json:"normalized"`
		}
		decodeResult(t, result, &report)
		assert.Equal(t, 3, report.Total)
		assert.True(t, report.Normalized)
	})

	t.Run("natural sort", func(t *testing.T) {
		s := NewServer(Options{})
		dir := t.TempDir()
		writeFiles(t, dir, "img10.png", "img2.png")

		_, err := s.handleRenameDataset(ctx, callRequest("rename_dataset", map[string]interface{}{
			"dir":    dir,
			"prefix": "x",
			"sort":   "natural",
		}))
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "x1.png"))
		require.NoError(t, err)
		assert.Equal(t, "img2.png", string(content))
	})

	t.Run("missing directory", func(t *testing.T) {
		s := NewServer(Options{})
		_, err := s.handleRenameDataset(ctx, callRequest("rename_dataset", map[string]interface{}{
			"dir":    filepath.Join(t.TempDir(), "nope"),
			"prefix": "x",
		}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, dataset.ErrNotFound))
		assert.Contains(t, err.Error(), "list_classes")
	})

	t.Run("locked directory", func(t *testing.T) {
		locker := dirlock.New(t.TempDir(), 100*time.Millisecond)
		s := NewServer(Options{Locker: locker})
		dir := t.TempDir()
		writeFiles(t, dir, "a.png")

		held, err := locker.Acquire(ctx, dir)
		require.NoError(t, err)
		defer held.Release()

		_, err = s.handleRenameDataset(ctx, callRequest("rename_dataset", map[string]interface{}{
			"dir":    dir,
			"prefix": "x",
		}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, dirlock.ErrLocked))
		assert.Equal(t, []string{"a.png"}, listDir(t, dir))
	})
}

func TestArgumentValidation(t *testing.T) {
	s := NewServer(Options{})
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{name: "missing dir", args: map[string]interface{}{"prefix": "x"}, want: "invalid dir"},
		{name: "missing prefix", args: map[string]interface{}{"dir": t.TempDir()}, want: "invalid prefix"},
		{name: "bad sort", args: map[string]interface{}{"dir": t.TempDir(), "prefix": "x", "sort": "random"}, want: "invalid sort"},
		{name: "non-string prefix", args: map[string]interface{}{"dir": t.TempDir(), "prefix": 3}, want: "invalid prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handlePlanRename(ctx, callRequest("plan_rename", tt.args))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestListClasses(t *testing.T) {
	s := NewServer(Options{})
	ctx := context.Background()

	t.Run("lists classes", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, filepath.Join(root, "rat"), "rat1.png", "rat2.png")
		writeFiles(t, filepath.Join(root, "crow"), "b.png")

		result, err := s.handleListClasses(ctx, callRequest("list_classes", map[string]interface{}{"root": root}))
		require.NoError(t, err)

		var list []classes.Class
		decodeResult(t, result, &list)
		require.Len(t, list, 2)
		assert.Equal(t, "crow", list[0].Name)
		assert.False(t, list[0].Normalized)
		assert.Equal(t, "rat", list[1].Name)
		assert.Equal(t, 2, list[1].Files)
		assert.True(t, list[1].Normalized)
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := s.handleListClasses(ctx, callRequest("list_classes", map[string]interface{}{"root": t.TempDir()}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "classes ensure")
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := s.handleListClasses(ctx, callRequest("list_classes", map[string]interface{}{
			"root": filepath.Join(t.TempDir(), "nope"),
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory not found")
	})
}
