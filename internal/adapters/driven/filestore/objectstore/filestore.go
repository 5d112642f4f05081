// Package objectstore provides a MinIO/S3-backed file store.
//
// Enclosures are streamed from their remote URL straight into a bucket
// object; file metadata rides along as object user-metadata, so the
// bucket itself is the source of truth and FindByURI is a stat call.
package objectstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// Config holds the object store endpoint and credentials.
type Config struct {
	// EndpointURL is the MinIO/S3 endpoint, e.g. "https://minio.local:9000".
	EndpointURL string

	// AccessKeyID and SecretAccessKey are the static credentials.
	AccessKeyID     string
	SecretAccessKey string

	// Bucket is the target bucket, created on first use if absent.
	Bucket string

	// Region is optional.
	Region string
}

// FileStore stores materialised enclosures in a MinIO/S3 bucket.
// Storage scheme URIs map onto object key prefixes: "public://g1.jpg"
// becomes the object "public/g1.jpg".
type FileStore struct {
	client *minio.Client
	http   *http.Client
	bucket string
	region string
}

// metadata keys on stored objects.
const (
	metaID     = "Mediapull-Id"
	metaGUID   = "Mediapull-Guid"
	metaOwner  = "Mediapull-Owner"
	metaStatus = "Mediapull-Status"
)

// New creates an object-store-backed file store.
func New(cfg Config) (*FileStore, error) {
	if cfg.EndpointURL == "" {
		return nil, fmt.Errorf("endpoint URL is required: %w", domain.ErrInvalidInput)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required: %w", domain.ErrInvalidInput)
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("credentials are required: %w", domain.ErrInvalidInput)
	}

	u, err := url.Parse(cfg.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}
	endpoint := u.Host
	if endpoint == "" {
		endpoint = cfg.EndpointURL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: u.Scheme == "https",
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store client: %w", err)
	}

	return &FileStore{
		client: client,
		http:   &http.Client{Timeout: 5 * time.Minute},
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// FindByURI retrieves file metadata by storage URI via an object stat.
func (s *FileStore) FindByURI(ctx context.Context, uri string) (*domain.FileRecord, error) {
	key, err := objectKey(uri)
	if err != nil {
		return nil, err
	}

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stat object %s: %w", key, err)
	}

	status := domain.StatusUnpublished
	if info.UserMetadata[metaStatus] == "1" {
		status = domain.StatusPublished
	}

	return &domain.FileRecord{
		ID:       info.UserMetadata[metaID],
		URI:      uri,
		Filename: key[strings.LastIndex(key, "/")+1:],
		MIMEType: info.ContentType,
		Size:     info.Size,
		GUID:     info.UserMetadata[metaGUID],
		Owner:    info.UserMetadata[metaOwner],
		Status:   status,
		Pulled:   true,
	}, nil
}

// Download streams the remote URL into the destination object,
// replacing any object already there.
func (s *FileStore) Download(ctx context.Context, srcURL, dest string) (string, int64, error) {
	key, err := objectKey(dest)
	if err != nil {
		return "", 0, err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("building request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetching %s: %w", srcURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("fetching %s: unexpected status %s", srcURL, resp.Status)
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, resp.Body, resp.ContentLength,
		minio.PutObjectOptions{ContentType: resp.Header.Get("Content-Type")})
	if err != nil {
		return "", 0, fmt.Errorf("storing object %s: %w", key, err)
	}
	return dest, info.Size, nil
}

// Save attaches file metadata to the stored object. A record for a URI
// whose object already carries an ID keeps that ID.
func (s *FileStore) Save(ctx context.Context, f *domain.FileRecord) (*domain.FileRecord, error) {
	key, err := objectKey(f.URI)
	if err != nil {
		return nil, err
	}

	saved := *f
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	src := minio.CopySrcOptions{Bucket: s.bucket, Object: key}
	dst := minio.CopyDestOptions{
		Bucket:          s.bucket,
		Object:          key,
		ReplaceMetadata: true,
		UserMetadata: map[string]string{
			metaID:     saved.ID,
			metaGUID:   saved.GUID,
			metaOwner:  saved.Owner,
			metaStatus: fmt.Sprintf("%d", saved.Status),
		},
	}
	if _, err := s.client.CopyObject(ctx, dst, src); err != nil {
		// Remote-referenced enclosures have no backing object; their
		// metadata is pass-through.
		if resp := minio.ToErrorResponse(err); resp.StatusCode == http.StatusNotFound {
			return &saved, nil
		}
		return nil, fmt.Errorf("saving metadata for %s: %w", key, err)
	}
	return &saved, nil
}

// ensureBucket creates the bucket if it does not exist yet.
func (s *FileStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("creating bucket: %w", err)
	}
	return nil
}

// objectKey maps a scheme URI onto a bucket object key.
func objectKey(uri string) (string, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" || rest == "" {
		return "", fmt.Errorf("uri %q: %w", uri, domain.ErrInvalidInput)
	}
	return scheme + "/" + rest, nil
}
