package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore.
// Download records the request and reports a fixed size instead of
// touching the network, which is what tests want.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]domain.FileRecord // by URI

	// DownloadSize is the byte size reported for every download.
	DownloadSize int64

	// Downloads records (url, dest) pairs in call order.
	Downloads [][2]string
}

// NewFileStore creates a new in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		files:        make(map[string]domain.FileRecord),
		DownloadSize: 1024,
	}
}

// FindByURI retrieves file metadata by storage URI.
func (s *FileStore) FindByURI(_ context.Context, uri string) (*domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[uri]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

// Download pretends to fetch the URL into the destination URI.
func (s *FileStore) Download(_ context.Context, url, dest string) (string, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Downloads = append(s.Downloads, [2]string{url, dest})
	return dest, s.DownloadSize, nil
}

// Save stores or updates file metadata, assigning an ID on first save.
func (s *FileStore) Save(_ context.Context, f *domain.FileRecord) (*domain.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *f
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	s.files[saved.URI] = saved
	return &saved, nil
}

// Len returns the number of stored file records.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
