// Package manifest reads and writes the launcher manifest: a JSON array
// describing every file the launcher must have, with its content hash and
// size.
package manifest

// FileRecord describes one file in the manifest.
// Field order is part of the wire format consumed by the launcher.
type FileRecord struct {
	// File is the path relative to the scanned root, "/"-separated.
	File string `json:"file"`

	// Hash is the lowercase hex SHA-256 of the file content.
	Hash string `json:"hash"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// Summary contains totals over a set of records.
type Summary struct {
	Files int   `json:"files"`
	Bytes int64 `json:"bytes"`
}

// Summarize totals the records.
func Summarize(records []FileRecord) Summary {
	s := Summary{Files: len(records)}
	for _, r := range records {
		s.Bytes += r.Size
	}
	return s
}
