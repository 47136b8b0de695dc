package export

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"journal/config"
	"journal/internal/domain/service"
	"journal/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// BlobStorage writes exported documents to a gocloud.dev bucket. The bucket
// is opened on first use so commands that never export leave no trace.
type BlobStorage struct {
	location string

	mu     sync.Mutex
	bucket *blob.Bucket
}

// StorageParams defines the parameters required for the export storage.
type StorageParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// NewBlobStorage creates the storage for cfg.Export.BucketURL and closes the
// bucket when the application stops.
func NewBlobStorage(params StorageParams) service.ExportStorage {
	storage := NewBlobStorageAt(params.Config.Export.BucketURL)

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return storage.Close()
		},
	})

	return storage
}

// NewBlobStorageAt creates storage for location, which is either a bucket URL
// such as mem:// or file:///srv/exports, or a plain directory path.
func NewBlobStorageAt(location string) *BlobStorage {
	return &BlobStorage{location: strings.TrimSpace(location)}
}

func (s *BlobStorage) open(ctx context.Context) (*blob.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bucket != nil {
		return s.bucket, nil
	}

	var (
		bucket *blob.Bucket
		err    error
	)
	if strings.Contains(s.location, "://") {
		bucket, err = blob.OpenBucket(ctx, s.location)
	} else {
		var dir string
		dir, err = filepath.Abs(s.location)
		if err == nil {
			bucket, err = fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open export bucket %s", s.location)
	}

	s.bucket = bucket

	return bucket, nil
}

// Save writes data under key and returns "<location>/<key>".
func (s *BlobStorage) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	bucket, err := s.open(ctx)
	if err != nil {
		return "", err
	}

	if err := bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", errors.Wrapf(err, "write export %s", key)
	}

	return strings.TrimSuffix(s.location, "/") + "/" + key, nil
}

func (s *BlobStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	bucket, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open export %s", key)
	}

	return r, nil
}

// Close releases the bucket if it was opened.
func (s *BlobStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bucket == nil {
		return nil
	}

	err := s.bucket.Close()
	s.bucket = nil

	return err
}
