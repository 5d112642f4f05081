package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// mimeExtensions maps common enclosure media types to stable file
// extensions. The platform MIME database orders extensions arbitrarily,
// so the usual suspects are pinned.
var mimeExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"audio/mpeg":      "mp3",
	"audio/mp4":       "m4a",
	"audio/ogg":       "ogg",
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"video/quicktime": "mov",
}

// resolveEnclosure turns a document's attached media into a file
// record. Profiles configured for local materialisation get their
// enclosure downloaded into the profile's storage scheme under the
// name <guid>.<ext>; others keep the remote URL as the stored URI.
// A file record already existing for the computed URI is updated in
// place rather than duplicated.
func (s *Synchronizer) resolveEnclosure(ctx context.Context, enc domain.Enclosure, profile, guid string) (*domain.FileRecord, error) {
	f := &domain.FileRecord{
		GUID:   guid,
		Owner:  s.cfg.PullActor,
		Status: domain.StatusPublished,
		Pulled: true,
	}

	if s.cfg.MakeLocal(profile) {
		filename := guid + "." + extFromMIME(enc.MIMEType)
		dest := s.cfg.Scheme(profile) + "://" + filename

		uri, size, err := s.files.Download(ctx, enc.Href, dest)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", enc.Href, err)
		}

		f.URI = uri
		f.Filename = filename
		f.MIMEType = enc.MIMEType
		f.Size = size
	} else {
		f.URI = enc.Href
	}

	existing, err := s.files.FindByURI(ctx, f.URI)
	switch {
	case err == nil:
		f.ID = existing.ID
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find file by uri %s: %w", f.URI, err)
	}

	saved, err := s.files.Save(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("save file record: %w", err)
	}
	return saved, nil
}

// extFromMIME derives a file extension from a declared media type.
func extFromMIME(mimeType string) string {
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}
