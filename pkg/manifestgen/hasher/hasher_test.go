package hasher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSHA256_KnownDigests(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  []byte
		wantHex  string
		wantSize int64
	}{
		{name: "empty file", content: nil, wantHex: emptySHA256, wantSize: 0},
		{name: "hello", content: []byte("hello"), wantHex: helloSHA256, wantSize: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_"), tt.content)

			d, err := New().Hash(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHex, d.Hex)
			assert.Equal(t, tt.wantSize, d.Size)
			assert.Len(t, d.Hex, HexLength)
		})
	}
}

func TestSHA256_SpansManyChunks(t *testing.T) {
	dir := t.TempDir()
	data := bytes.Repeat([]byte("0123456789abcdef"), 1000) // 16000 bytes, not a chunk multiple
	data = append(data, 'x')
	path := writeFile(t, dir, "big.bin", data)

	small := &SHA256{ChunkSize: 7}
	d1, err := small.Hash(context.Background(), path)
	require.NoError(t, err)

	d2, err := New().Hash(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, d2, d1, "digest must not depend on chunk size")
	assert.Equal(t, int64(len(data)), d1.Size)
}

func TestSHA256_Deterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "same.txt", []byte("launcher payload"))

	h := New()
	first, err := h.Hash(context.Background(), path)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := h.Hash(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSHA256_ZeroChunkSizeUsesDefault(t *testing.T) {
	d, err := (&SHA256{}).HashReader(context.Background(), strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, helloSHA256, d.Hex)
}

func TestSHA256_MissingFile(t *testing.T) {
	_, err := New().Hash(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestSHA256_ReadError(t *testing.T) {
	cause := errors.New("device went away")
	_, err := New().HashReader(context.Background(), failingReader{err: cause})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestSHA256_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().HashReader(ctx, io.LimitReader(strings.NewReader("abc"), 3))
	assert.ErrorIs(t, err, context.Canceled)
}
