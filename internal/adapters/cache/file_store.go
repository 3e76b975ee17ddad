package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileStore is a KeyValueStore persisted as a single JSON document. Sessions are
// exclusive within the process and, through a lock file next to the document, across
// processes.
type FileStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileStore returns a store persisted at path. Nothing is created until the first
// session is opened.
func NewFileStore(path string) *FileStore {
	clean := filepath.Clean(path)
	return &FileStore{
		path: clean,
		lock: flock.New(clean+".lock", flock.SetPermissions(domain.FilePerm)),
	}
}

// Path returns the location of the JSON document.
func (s *FileStore) Path() string {
	return s.path
}

// Open locks the store and loads the document.
func (s *FileStore) Open() (ports.Session, error) {
	s.mu.Lock()

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		s.mu.Unlock()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", s.path)
	}

	if err := s.lock.Lock(); err != nil {
		s.mu.Unlock()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheLockFailed.Error()), "path", s.lock.Path())
	}

	entries, err := s.read()
	if err != nil {
		_ = s.lock.Unlock()
		s.mu.Unlock()
		return nil, err
	}

	return &fileSession{store: s, entries: entries}, nil
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", s.path)
	}

	entries := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "path", s.path)
	}
	return entries, nil
}

func (s *FileStore) write(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}
	if err := atomicWriteFile(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// Remove deletes the document and its lock file.
func (s *FileStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range []string{s.path, s.lock.Path()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheCleanFailed.Error()), "path", p)
		}
	}
	return nil
}

type fileSession struct {
	store   *FileStore
	entries map[string]json.RawMessage
	dirty   bool
	closed  bool
}

func (s *fileSession) Get(key string) ([]byte, bool, error) {
	if s.closed {
		return nil, false, domain.ErrCacheSessionClosed
	}
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *fileSession) Put(key string, value []byte) error {
	if s.closed {
		return domain.ErrCacheSessionClosed
	}
	if !json.Valid(value) {
		return zerr.With(domain.ErrCacheMarshalFailed, "key", key)
	}
	s.entries[key] = json.RawMessage(value)
	s.dirty = true
	return nil
}

func (s *fileSession) Delete(key string) error {
	if s.closed {
		return domain.ErrCacheSessionClosed
	}
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		s.dirty = true
	}
	return nil
}

// Close writes pending changes and releases both locks.
func (s *fileSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer s.store.mu.Unlock()

	var err error
	if s.dirty {
		err = s.store.write(s.entries)
	}
	if unlockErr := s.store.lock.Unlock(); unlockErr != nil && err == nil {
		err = zerr.Wrap(unlockErr, domain.ErrCacheLockFailed.Error())
	}
	return err
}

// atomicWriteFile writes data to a temp file in the target directory and renames it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "invalid-resolves-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
