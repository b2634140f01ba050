package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

const filePermBits = 0o600

// FileConfig configures a FileStore
type FileConfig struct {
	// Path of the JSON document holding every key
	Path string
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// FileStore implements Store as one JSON object on disk. Every Set rewrites
// the file through a temporary file and a rename, so readers never observe a
// half written document.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFile creates a file-backed store. The file is created on first Set.
func NewFile(cfg *FileConfig) (*FileStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &FileStore{path: cfg.Path}, nil
}

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

// Get returns the value stored under key
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.InvalidArgument(errKeyEmpty)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key
func (s *FileStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return errors.InvalidArgument(errKeyEmpty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value

	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, errors.Wrapf(err, "failed to read store file %s", s.path)
	}
	if len(data) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeMalformedEncoding,
			"store file %s is not a JSON object of strings", s.path)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode store file")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Chmod(filePermBits); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to set permissions on %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrapf(err, "failed to replace store file %s", s.path)
	}
	return nil
}
