package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 client built by NewS3Client.
type S3Options struct {
	Region       string
	Profile      string
	Endpoint     string
	UsePathStyle bool
}

// NewS3Client builds an S3 client from the default AWS credential chain.
// A custom Endpoint targets S3-compatible stores such as LocalStack.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}

// S3Source is an HTML document stored as an S3 object.
type S3Source struct {
	client S3API
	bucket string
	key    string
}

// NewS3Source creates a source for bucket/key.
func NewS3Source(client S3API, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// Location returns the s3:// URI of the object.
func (s *S3Source) Location() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Read downloads the object body.
func (s *S3Source) Read(ctx context.Context) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return "", s.wrap("read", err)
	}
	defer out.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", s.wrap("read", err)
	}
	return string(data), nil
}

// Write uploads content, replacing the object.
func (s *S3Source) Write(ctx context.Context, content string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        strings.NewReader(content),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return s.wrap("write", err)
	}
	return nil
}

// retryables classifies errors the way the SDK retryer does: throttling
// codes, 5xx responses, timeouts and connection failures.
var retryables = retry.IsErrorRetryables(retry.DefaultRetryables)

func (s *S3Source) wrap(op string, err error) error {
	return &SourceError{
		Op:        op,
		Location:  s.Location(),
		Err:       err,
		Retryable: retryables.IsErrorRetryable(err) == aws.TrueTernary,
	}
}
