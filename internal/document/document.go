// Package document reads and writes the HTML documents fixes are applied to.
// Documents live on the local filesystem or in S3-compatible object storage.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedScheme is returned by Open for URIs it cannot resolve.
var ErrUnsupportedScheme = errors.New("unsupported document scheme")

// Source is a readable and writable document location.
type Source interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
	Location() string
}

// SourceError reports a failed read or write.
type SourceError struct {
	Err       error
	Location  string
	Op        string
	Retryable bool
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if err is a SourceError worth retrying.
func IsRetryable(err error) bool {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Retryable
	}
	return false
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	s3Client S3API
	s3       S3Options
}

// WithS3Options sets how S3 clients are configured.
func WithS3Options(opts S3Options) Option {
	return func(o *openOptions) {
		o.s3 = opts
	}
}

// WithS3Client uses client for s3:// documents instead of building one.
func WithS3Client(client S3API) Option {
	return func(o *openOptions) {
		o.s3Client = client
	}
}

// Open resolves uri to a Source. Plain paths and file:// URIs are local files;
// s3://bucket/key is an object in S3.
func Open(ctx context.Context, uri string, opts ...Option) (Source, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	scheme, rest, found := strings.Cut(uri, "://")
	if !found {
		return NewFileSource(uri)
	}

	switch strings.ToLower(scheme) {
	case "file":
		return NewFileSource(rest)
	case "s3":
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return nil, fmt.Errorf("invalid S3 URI %q: expected s3://bucket/key", uri)
		}
		client := o.s3Client
		if client == nil {
			var err error
			client, err = NewS3Client(ctx, o.s3)
			if err != nil {
				return nil, err
			}
		}
		return NewS3Source(client, bucket, key), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}
