package export

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrInvalidKey is returned for keys that would leave the sink's root.
var ErrInvalidKey = stderrors.New("export: invalid key")

// Sink stores exported documents.
type Sink interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// DirSink writes documents below a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink rooted at dir. The directory is created on the
// first Put.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the root directory.
func (s *DirSink) Dir() string { return s.dir }

// Put writes body to dir/key, creating parent directories.
func (s *DirSink) Put(ctx context.Context, key string, body []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanKey(key)
	if err != nil {
		return err
	}
	dst := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, body, 0644)
}

// PutObjectAPI is the subset of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads documents to an S3 bucket.
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink creates a sink writing to bucket under prefix.
func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// NewS3SinkFromEnv builds the S3 client from the default AWS credential
// chain. An empty region keeps the environment's region.
func NewS3SinkFromEnv(ctx context.Context, bucket, prefix, region string) (*S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Key returns the object key used for key.
func (s *S3Sink) Key(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return clean, nil
	}
	return s.prefix + "/" + clean, nil
}

// Put uploads body as key.
func (s *S3Sink) Put(ctx context.Context, key string, body []byte, contentType string) error {
	objectKey, err := s.Key(key)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}

func cleanKey(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return clean, nil
}
