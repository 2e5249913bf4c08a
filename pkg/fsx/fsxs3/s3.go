package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/applymint/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// API is the subset of *s3.Client used here
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3FileSystem stores objects under prefix in a single bucket
type S3FileSystem struct {
	client  API
	bucket  string
	prefix  string
	baseURL string
}

type Option func(*S3FileSystem)

// WithBaseURL overrides the public URL objects are served from (CDN, minio)
func WithBaseURL(url string) Option {
	return func(fs *S3FileSystem) {
		fs.baseURL = strings.TrimRight(url, "/")
	}
}

func NewS3FileSystem(client API, bucket, prefix string, opts ...Option) *S3FileSystem {
	fs := &S3FileSystem{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: fmt.Sprintf("https://%s.s3.amazonaws.com", bucket),
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

var _ fsx.BlobStore = (*S3FileSystem)(nil)

func (fs *S3FileSystem) key(p string) string {
	if fs.prefix == "" {
		return strings.TrimPrefix(p, "/")
	}
	return path.Join(fs.prefix, p)
}

func (fs *S3FileSystem) Join(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

func (fs *S3FileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	_, err := fs.Upload(ctx, p, data, "application/octet-stream")
	return err
}

// Upload puts the object and returns its public URL
func (fs *S3FileSystem) Upload(ctx context.Context, p string, data []byte, contentType string) (string, error) {
	key := fs.key(p)
	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(fs.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return fs.baseURL + "/" + key, nil
}

func (fs *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	key := fs.key(p)
	out, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fsx.ErrNotExist
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (fs *S3FileSystem) DeleteFile(ctx context.Context, p string) error {
	key := fs.key(p)
	if _, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
