package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// fileStore implements driven.FileStore.
// Scheme URIs like "public://g1.jpg" map onto subdirectories of the
// store's files directory.
type fileStore struct {
	store *Store
}

var _ driven.FileStore = (*fileStore)(nil)

// FindByURI retrieves file metadata by storage URI.
func (s *fileStore) FindByURI(ctx context.Context, uri string) (*domain.FileRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, uri, filename, mime_type, size, guid, owner, status, pulled
		FROM files WHERE uri = ?
	`, uri)

	var (
		f      domain.FileRecord
		pulled int
	)
	err := row.Scan(&f.ID, &f.URI, &f.Filename, &f.MIMEType, &f.Size,
		&f.GUID, &f.Owner, &f.Status, &pulled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding file: %w", err)
	}
	f.Pulled = pulled != 0
	return &f, nil
}

// Download fetches the remote URL into the destination URI, replacing
// any file already there. Returns the destination URI and byte size.
func (s *fileStore) Download(ctx context.Context, url, dest string) (string, int64, error) {
	local, err := s.localPath(dest)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(local), 0700); err != nil {
		return "", 0, fmt.Errorf("creating files directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("building request: %w", err)
	}
	resp, err := s.store.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(local)
	if err != nil {
		return "", 0, fmt.Errorf("creating %s: %w", local, err)
	}
	defer out.Close()

	size, err := io.Copy(out, resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("writing %s: %w", local, err)
	}
	return dest, size, nil
}

// Save stores or updates file metadata, assigning an ID on first save.
func (s *fileStore) Save(ctx context.Context, f *domain.FileRecord) (*domain.FileRecord, error) {
	saved := *f
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	pulled := 0
	if saved.Pulled {
		pulled = 1
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO files (id, uri, filename, mime_type, size, guid, owner, status, pulled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET
			filename = excluded.filename,
			mime_type = excluded.mime_type,
			size = excluded.size,
			guid = excluded.guid,
			owner = excluded.owner,
			status = excluded.status,
			pulled = excluded.pulled
	`, saved.ID, saved.URI, saved.Filename, saved.MIMEType, saved.Size,
		saved.GUID, saved.Owner, saved.Status, pulled)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	// An update keeps the existing row's ID.
	existing, err := s.FindByURI(ctx, saved.URI)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// localPath resolves a scheme URI to a path under the files directory.
func (s *fileStore) localPath(uri string) (string, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" || rest == "" {
		return "", fmt.Errorf("destination %q: %w", uri, domain.ErrInvalidInput)
	}
	// Scheme subdirectories keep profiles apart on disk.
	return filepath.Join(s.store.filesDir, scheme, filepath.FromSlash(rest)), nil
}
