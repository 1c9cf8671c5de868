package kvstore

import (
	"context"
	"encoding/base64"
	"io/fs"
	"os"
	"path/filepath"

	"artisan/internal/domain/repository"
	"artisan/internal/errors"
)

const (
	fileSuffix = ".json"
	dirMode    = 0o750
)

// fileStore keeps one file per key under dir.
type fileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (repository.KeyValueStore, error) {
	if dir == "" {
		return nil, errors.New("kv directory is required for the file kv driver")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, errors.Wrapf(err, "failed to create kv directory %s", dir)
	}

	return &fileStore{dir: dir}, nil
}

// path encodes the key so any key maps to a single safe file name.
func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+fileSuffix)
}

func (s *fileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}

		return "", false, errors.Wrapf(err, "failed to read %s", key)
	}

	return string(raw), true, nil
}

// Set writes a temp file in the same directory, syncs it and renames it over
// the target. Rename is atomic, so readers see either the old or the new value.
func (s *fileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", key)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()

		return errors.Wrapf(err, "failed to write %s", key)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()

		return errors.Wrapf(err, "failed to sync %s", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", key)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return errors.Wrapf(err, "failed to replace %s", key)
	}
	committed = true

	return nil
}

func (s *fileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "failed to remove %s", key)
	}

	return nil
}
