// Package hasher computes content digests for files listed in a manifest.
// Files are streamed in fixed-size chunks so memory use does not grow with
// file size.
package hasher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize is the read size used when streaming file content.
const DefaultChunkSize = 4096

// HexLength is the length of a hex-encoded SHA-256 digest.
const HexLength = sha256.Size * 2

// Digest is the result of hashing a single file.
type Digest struct {
	// Hex is the lowercase hex-encoded digest.
	Hex string

	// Size is the number of bytes that were hashed.
	Size int64
}

// Hasher computes the digest of a file on disk.
type Hasher interface {
	Hash(ctx context.Context, path string) (Digest, error)
}

// SHA256 hashes files with SHA-256.
type SHA256 struct {
	// ChunkSize is the number of bytes read per call. Zero uses DefaultChunkSize.
	ChunkSize int
}

// New returns a SHA-256 hasher reading DefaultChunkSize bytes at a time.
func New() *SHA256 {
	return &SHA256{ChunkSize: DefaultChunkSize}
}

// Hash opens path and returns the SHA-256 digest of its full content.
func (s *SHA256) Hash(ctx context.Context, path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.HashReader(ctx, f)
}

// HashReader returns the SHA-256 digest of everything read from r.
// The context is checked between chunks.
func (s *SHA256) HashReader(ctx context.Context, r io.Reader) (Digest, error) {
	chunk := s.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	h := sha256.New()
	buf := make([]byte, chunk)
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return Digest{}, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			// hash.Hash.Write never returns an error.
			_, _ = h.Write(buf[:n])
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Digest{}, fmt.Errorf("reading file: %w", err)
		}
	}

	return Digest{
		Hex:  hex.EncodeToString(h.Sum(nil)),
		Size: total,
	}, nil
}

// Ensure SHA256 implements Hasher.
var _ Hasher = (*SHA256)(nil)
