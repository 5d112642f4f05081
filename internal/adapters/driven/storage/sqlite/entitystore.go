package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// entityStore implements driven.EntityStore.
type entityStore struct {
	store *Store
}

var _ driven.EntityStore = (*entityStore)(nil)

// LookupIDByGUID resolves an existing record ID from a remote GUID.
func (s *entityStore) LookupIDByGUID(ctx context.Context, guid string) (string, bool, error) {
	var id string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id FROM records WHERE guid = ?", guid).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up guid: %w", err)
	}
	return id, true, nil
}

// Load retrieves a record by category and ID.
func (s *entityStore) Load(ctx context.Context, category domain.Category, id string) (*domain.Record, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, category, bundle, owner, created_at, timestamp,
		       valid_from, valid_to, status, fields,
		       file_uri, file_name, file_mime, file_size, guid, pulled
		FROM records WHERE id = ? AND category = ?
	`, id, string(category))

	var (
		rec                  domain.Record
		cat                  string
		createdAt, timestamp int64
		validFrom, validTo   sql.NullInt64
		fieldsJSON           string
		pulled               int
	)
	err := row.Scan(&rec.ID, &cat, &rec.Bundle, &rec.Owner, &createdAt, &timestamp,
		&validFrom, &validTo, &rec.Status, &fieldsJSON,
		&rec.File.URI, &rec.File.Filename, &rec.File.MIMEType, &rec.File.Size,
		&rec.GUID, &pulled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading record: %w", err)
	}

	rec.Category = domain.Category(cat)
	if createdAt != 0 {
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	}
	if timestamp != 0 {
		rec.Timestamp = time.Unix(timestamp, 0).UTC()
	}
	if validFrom.Valid {
		t := time.Unix(validFrom.Int64, 0).UTC()
		rec.ValidFrom = &t
	}
	if validTo.Valid {
		t := time.Unix(validTo.Int64, 0).UTC()
		rec.ValidTo = &t
	}
	rec.Pulled = pulled != 0

	rec.Fields, err = decodeFields(fieldsJSON)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save stores or updates a record, assigning an ID on first save.
// The caller-supplied context value is not persisted; it only lives for
// the duration of the pull.
func (s *entityStore) Save(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	saved := *rec
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	fieldsJSON, err := encodeFields(saved.Fields)
	if err != nil {
		return nil, err
	}

	var validFrom, validTo any
	if saved.ValidFrom != nil {
		validFrom = saved.ValidFrom.Unix()
	}
	if saved.ValidTo != nil {
		validTo = saved.ValidTo.Unix()
	}

	pulled := 0
	if saved.Pulled {
		pulled = 1
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO records (id, category, bundle, owner, created_at, timestamp,
		                     valid_from, valid_to, status, fields,
		                     file_uri, file_name, file_mime, file_size, guid, pulled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			bundle = excluded.bundle,
			owner = excluded.owner,
			created_at = excluded.created_at,
			timestamp = excluded.timestamp,
			valid_from = excluded.valid_from,
			valid_to = excluded.valid_to,
			status = excluded.status,
			fields = excluded.fields,
			file_uri = excluded.file_uri,
			file_name = excluded.file_name,
			file_mime = excluded.file_mime,
			file_size = excluded.file_size,
			guid = excluded.guid,
			pulled = excluded.pulled
	`, saved.ID, string(saved.Category), saved.Bundle, saved.Owner,
		zeroUnix(saved.CreatedAt), zeroUnix(saved.Timestamp),
		validFrom, validTo, saved.Status, fieldsJSON,
		saved.File.URI, saved.File.Filename, saved.File.MIMEType, saved.File.Size,
		saved.GUID, pulled)
	if err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}

	return &saved, nil
}

// zeroUnix maps the zero time to 0 instead of a negative epoch offset.
func zeroUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
