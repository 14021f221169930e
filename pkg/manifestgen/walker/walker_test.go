package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/manifestgen/pkg/manifestgen/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTree builds:
//
//	root/
//	  a.txt
//	  sub/b.txt
//	  sub/deep/c.bin
//	  logs/run.log
//	  .DS_Store
func createTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"a.txt":          "alpha",
		"sub/b.txt":      "bravo",
		"sub/deep/c.bin": "charlie",
		"logs/run.log":   "delta",
		".DS_Store":      "junk",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func rels(entries []types.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Rel
	}
	return out
}

func TestWalk_AllRegularFilesSorted(t *testing.T) {
	root := createTree(t)

	entries, errs, err := Walk(context.Background(), root, Options{Sort: true})
	require.NoError(t, err)
	assert.Empty(t, errs)

	assert.Equal(t, []string{
		".DS_Store",
		"a.txt",
		"logs/run.log",
		"sub/b.txt",
		"sub/deep/c.bin",
	}, rels(entries))

	for _, e := range entries {
		assert.Equal(t, filepath.Join(root, filepath.FromSlash(e.Rel)), e.Path)
	}
}

func TestWalk_UnsortedHasSameMembership(t *testing.T) {
	root := createTree(t)

	sorted, _, err := Walk(context.Background(), root, Options{Sort: true})
	require.NoError(t, err)
	unsorted, _, err := Walk(context.Background(), root, Options{Workers: 4})
	require.NoError(t, err)

	assert.ElementsMatch(t, rels(sorted), rels(unsorted))
}

func TestWalk_RelativePathsUseForwardSlash(t *testing.T) {
	root := createTree(t)

	entries, _, err := Walk(context.Background(), root, Options{Sort: true})
	require.NoError(t, err)

	base := filepath.Base(root)
	for _, e := range entries {
		assert.NotContains(t, e.Rel, `\`)
		assert.NotContains(t, e.Rel, base, "relative path must not include the root name")
		assert.False(t, filepath.IsAbs(e.Rel))
	}
}

func TestWalk_EmptyDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "only-dirs"), 0o755))

	entries, errs, err := Walk(context.Background(), root, Options{Sort: true})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.Empty(t, errs)
}

func TestWalk_Exclude(t *testing.T) {
	root := createTree(t)

	tests := []struct {
		name    string
		exclude []string
		want    []string
	}{
		{
			name:    "directory prefix",
			exclude: []string{"sub"},
			want:    []string{".DS_Store", "a.txt", "logs/run.log"},
		},
		{
			name:    "base name glob",
			exclude: []string{"*.log", ".DS_Store"},
			want:    []string{"a.txt", "sub/b.txt", "sub/deep/c.bin"},
		},
		{
			name:    "full path glob",
			exclude: []string{"sub/deep/*"},
			want:    []string{".DS_Store", "a.txt", "logs/run.log", "sub/b.txt"},
		},
		{
			name:    "empty pattern ignored",
			exclude: []string{""},
			want:    []string{".DS_Store", "a.txt", "logs/run.log", "sub/b.txt", "sub/deep/c.bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, _, err := Walk(context.Background(), root, Options{Sort: true, Exclude: tt.exclude})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rels(entries))
		})
	}
}

func TestWalk_Symlinks(t *testing.T) {
	root := createTree(t)
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "shared.dat"), []byte("shared"), 0o644))

	if err := os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked-dir")))

	t.Run("skipped by default", func(t *testing.T) {
		entries, _, err := Walk(context.Background(), root, Options{Sort: true})
		require.NoError(t, err)
		assert.NotContains(t, rels(entries), "link.txt")
		assert.NotContains(t, rels(entries), "linked-dir/shared.dat")
	})

	t.Run("followed when enabled", func(t *testing.T) {
		entries, _, err := Walk(context.Background(), root, Options{Sort: true, FollowSymlinks: true})
		require.NoError(t, err)
		assert.Contains(t, rels(entries), "link.txt")
		assert.Contains(t, rels(entries), "linked-dir/shared.dat")
	})
}

func TestWalk_MissingRoot(t *testing.T) {
	_, _, err := Walk(context.Background(), filepath.Join(t.TempDir(), "files"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrRootNotFound)
}

func TestWalk_RootIsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	_, _, err := Walk(context.Background(), p, Options{})
	assert.ErrorIs(t, err, types.ErrNotDirectory)
}

func TestWalk_Cancelled(t *testing.T) {
	root := createTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, _, err := Walk(ctx, root, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, entries)
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		rel     string
		pattern string
		want    bool
	}{
		{"sub/b.txt", "sub", true},
		{"subway/b.txt", "sub", false},
		{"sub/b.txt", "sub/", true},
		{"sub/b.txt", "*.txt", true},
		{"sub/b.txt", "sub/*.txt", true},
		{"sub/deep/c.bin", "sub/*.bin", false},
		{"a.txt", "[", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel+"~"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesPattern(tt.rel, tt.pattern))
		})
	}
}
