package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/imagebatch/core/storage"
)

var _ storage.Storage = (*Storage)(nil)

// Client is the subset of *s3.Client used by Storage.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3aws.ListObjectsV2Input, optFns ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, params *s3aws.HeadBucketInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadBucketOutput, error)
}

// Config holds S3 settings. Credentials fall back to the default AWS chain.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	Prefix         string `env:"S3_PREFIX"`
}

// Storage stores objects in a bucket, optionally below a key prefix.
type Storage struct {
	client        Client
	bucket        string
	prefix        string
	uploadTimeout time.Duration
}

// Option configures Storage.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3aws.Options)
	uploadTimeout time.Duration
}

// WithClient injects a pre-built client, mostly for tests.
func WithClient(c Client) Option {
	return func(o *options) { o.client = c }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithConfigOption(opt func(*config.LoadOptions) error) Option {
	return func(o *options) { o.configOptions = append(o.configOptions, opt) }
}

func WithClientOption(opt func(*s3aws.Options)) Option {
	return func(o *options) { o.clientOptions = append(o.clientOptions, opt) }
}

// WithUploadTimeout bounds each Put independently of the caller's deadline.
func WithUploadTimeout(d time.Duration) Option {
	return func(o *options) { o.uploadTimeout = d }
}

// New builds a Storage from cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, storage.ErrInvalidConfig
	}
	prefix, err := storage.CleanPath(cfg.Prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: prefix: %v", storage.ErrInvalidConfig, err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}
		loadOpts = append(loadOpts, o.configOptions...)

		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client = s3aws.NewFromConfig(awsCfg, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, fn := range o.clientOptions {
				fn(so)
			}
		})
	}

	return &Storage{
		client:        client,
		bucket:        cfg.Bucket,
		prefix:        prefix,
		uploadTimeout: o.uploadTimeout,
	}, nil
}

func (s *Storage) key(p string) (string, error) {
	clean, err := storage.CleanPath(p)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return clean, nil
	}
	if clean == "" {
		return s.prefix, nil
	}
	return s.prefix + "/" + clean, nil
}

// MkdirAll validates dir; S3 has no directories to create.
func (s *Storage) MkdirAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.key(dir)
	return err
}

func (s *Storage) Put(ctx context.Context, p string, r io.Reader) (int64, error) {
	key, err := s.key(p)
	if err != nil {
		return 0, err
	}
	if clean, _ := storage.CleanPath(p); clean == "" {
		return 0, fmt.Errorf("%w: empty file path", storage.ErrInvalidPath)
	}

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	// The SDK needs a seekable body to sign and retry plain HTTP uploads.
	body, ok := r.(*bytes.Reader)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(data)
	}
	size := body.Size()

	ctype := mime.TypeByExtension(path.Ext(key))
	if ctype == "" {
		ctype = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ctype),
	})
	if err != nil {
		return 0, classifyS3Error(err, "put "+p)
	}
	return size, nil
}

func (s *Storage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := s.key(p)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "open "+p)
	}
	return out.Body, nil
}

// List walks every page of a delimiter listing below dir.
func (s *Storage) List(ctx context.Context, dir string) ([]storage.Entry, error) {
	key, err := s.key(dir)
	if err != nil {
		return nil, err
	}
	clean, _ := storage.CleanPath(dir)

	prefix := key
	if prefix != "" {
		prefix += "/"
	}

	var (
		entries []storage.Entry
		token   *string
	)
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3aws.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			Delimiter:         aws.String("/"),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, classifyS3Error(err, "list "+dir)
		}

		for _, cp := range out.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, storage.Entry{
				Name:  name,
				Path:  joinSlash(clean, name),
				IsDir: true,
			})
		}
		for _, obj := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			entries = append(entries, storage.Entry{
				Name:    name,
				Path:    joinSlash(clean, name),
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}

		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}

	if len(entries) == 0 && clean != "" {
		return nil, fmt.Errorf("%w: %s", storage.ErrDirectoryNotFound, dir)
	}
	return entries, nil
}

// Ping checks that the bucket exists and is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3aws.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return classifyS3Error(err, "head bucket")
}

func joinSlash(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
