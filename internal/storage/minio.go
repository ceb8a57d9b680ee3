package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStoreConfig carries the settings for an S3-compatible backend.
type ObjectStoreConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
}

// Complete reports whether every setting required to reach the bucket is
// present.
func (c ObjectStoreConfig) Complete() bool {
	return c.Endpoint != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

// ObjectStore persists objects in an S3-compatible bucket via MinIO.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

var _ Backend = (*ObjectStore)(nil)

func NewObjectStore(cfg ObjectStoreConfig) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, classify(err)
	}
	return &ObjectStore{client: client, bucket: cfg.Bucket}, nil
}

// Probe checks that the configured bucket is reachable with the given
// credentials. It returns a classified error instead of panicking so the
// caller can fall back to another backend.
func (o *ObjectStore) Probe(ctx context.Context) error {
	ok, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return classify(err)
	}
	if !ok {
		return fmt.Errorf("%w: bucket %q does not exist", ErrUnreachable, o.bucket)
	}
	return nil
}

func (o *ObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	_, err = o.client.PutObject(ctx, o.bucket, clean, r, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", classify(err)
	}
	return fmt.Sprintf("s3://%s/%s", o.bucket, clean), nil
}

func (o *ObjectStore) Exists(ctx context.Context, location string) (bool, error) {
	key := strings.TrimPrefix(location, fmt.Sprintf("s3://%s/", o.bucket))
	_, err := o.client.StatObject(ctx, o.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, classify(err)
	}
	return true, nil
}

// classify folds an SDK-level failure into the storage error taxonomy.
// Credential and permission problems map to ErrUnauthorized, transport
// problems to ErrUnreachable, everything else to ErrWriteFailed.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	switch minio.ToErrorResponse(err).StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %v", ErrWriteFailed, err)
}
