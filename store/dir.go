package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a Store that keeps one file per key inside a directory.
type Dir struct {
	path string
}

// NewDir opens a directory store, creating the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory backing the store.
func (d *Dir) Path() string { return d.path }

// Keys become file names, so only a safe subset of characters is allowed
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

func (d *Dir) Load(key string) (string, bool, error) {
	if !validKey(key) {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	data, err := os.ReadFile(filepath.Join(d.path, key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Save writes the value to a temporary file and renames it over the old one,
// so a reader never sees a half written value.
func (d *Dir) Save(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	tmp, err := os.CreateTemp(d.path, "."+key+".*")
	if err != nil {
		return err
	}
	// Clean up the temporary file if anything below fails
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(d.path, key))
}
