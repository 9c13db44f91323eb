// Package minioblob is a blob.Bucket stored in an S3 compatible bucket.
package minioblob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vitalvas/swaggen/blob"
)

// Config locates the bucket. Endpoint is a URL; its scheme selects TLS.
type Config struct {
	Endpoint  string `yaml:"endpoint" validate:"required,url"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket" validate:"required"`
	// Prefix is prepended to every key.
	Prefix string `yaml:"prefix"`
}

// Bucket stores objects through a minio client.
type Bucket struct {
	client *minio.Client
	bucket string
	prefix string
}

// New connects a bucket described by cfg.
func New(cfg Config) (*Bucket, error) {
	parsed, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("minioblob: endpoint: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("minioblob: endpoint %q has no host", cfg.Endpoint)
	}

	client, err := minio.New(parsed.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("minioblob: %w", err)
	}

	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *minio.Client, bucket, prefix string) *Bucket {
	return &Bucket{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (b *Bucket) object(key string) (string, error) {
	key, err := blob.CleanKey(key)
	if err != nil {
		return "", err
	}
	if b.prefix == "" {
		return key, nil
	}

	return path.Join(b.prefix, key), nil
}

func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	name, err := b.object(key)
	if err != nil {
		return nil, err
	}

	obj, err := b.client.GetObject(ctx, b.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, b.wrap(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, b.wrap(err)
	}

	return data, nil
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	name, err := b.object(key)
	if err != nil {
		return err
	}

	_, err = b.client.PutObject(ctx, b.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return b.wrap(err)
	}

	return nil
}

func (b *Bucket) List(ctx context.Context, prefix string) ([]string, error) {
	full := prefix
	if b.prefix != "" {
		full = b.prefix + "/" + prefix
	}

	var keys []string
	for info := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: full, Recursive: true}) {
		if info.Err != nil {
			return nil, b.wrap(info.Err)
		}
		key := info.Key
		if b.prefix != "" {
			key = strings.TrimPrefix(key, b.prefix+"/")
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys, nil
}

// wrap maps missing objects onto blob.ErrNotFound.
func (b *Bucket) wrap(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return blob.ErrNotFound
	}

	return fmt.Errorf("minioblob: %s: %w", b.bucket, err)
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
