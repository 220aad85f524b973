// Package snapshot reads and writes the committed contract snapshot: the
// canonicalized, pretty-printed JSON form of the last-accepted specification.
//
// Conventions:
//   - The snapshot path is an explicit configuration value; nothing here is
//     derived from the process working directory.
//   - Save is the only mutation path and is operator-invoked, never automatic.
//   - Writes are atomic: a temporary file in the target directory is renamed
//     over the destination so readers never observe a partial snapshot.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"openapi-sync/internal/canon"
)

// Load reads and parses the snapshot at path. A missing file returns
// (nil, nil) so callers can treat it as "no accepted snapshot yet" without
// branching on errors. The snapshot is always JSON (Save wrote it), so no
// YAML fallback applies here.
func Load(path string) (canon.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var doc canon.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return doc, nil
}

// Save canonicalizes doc, pretty-prints it with a single trailing newline and
// writes it atomically to path, replacing any existing snapshot.
func Save(path string, doc canon.Document) error {
	out, err := canon.MarshalIndent(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, f, err := createTempFile(dir, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := f.Write(out); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp) // best-effort cleanup
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// createTempFile creates a temporary file in the target directory with a name
// derived from base (".tmp-<base>-<rand>"), returning its path and an
// *os.File ready for writing. Caller is responsible for closing it.
func createTempFile(dir, base string) (string, *os.File, error) {
	prefix := ".tmp-" + base + "-"
	f, err := os.CreateTemp(dir, prefix)
	if err != nil {
		return "", nil, err
	}
	return f.Name(), f, nil
}
