package manifest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultFilename is the manifest name the launcher expects.
const DefaultFilename = "api.json"

// Indent is the per-level indentation of the written JSON.
const Indent = "    "

// Encode writes records to w as an indented JSON array. HTML escaping is
// disabled so non-ASCII names and characters like '&' stay literal.
// A nil or empty slice encodes as [].
func Encode(w io.Writer, records []FileRecord) error {
	if records == nil {
		records = []FileRecord{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return nil
}

// Write serializes records to path, replacing any existing file.
func Write(path string, records []FileRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing manifest %s: %w", path, closeErr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, records); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Decode parses a manifest from r.
func Decode(r io.Reader) ([]FileRecord, error) {
	var records []FileRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if records == nil {
		return nil, errors.New("decoding manifest: expected a JSON array")
	}
	return records, nil
}

// Read loads the manifest at path.
func Read(path string) ([]FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
