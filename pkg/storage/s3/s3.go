package s3

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// defaultContentType is used when the source never recorded a MIME type
const defaultContentType = "application/octet-stream"

// Store is an S3-backed storage.ObjectStore scoped to a single bucket
type Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	kmsKeyID string
}

// New creates a new S3 store
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, storage.WrapError("", "init", storage.ErrInvalidConfig)
	}

	// Build AWS config
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Credentials != nil {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(cfg.Credentials))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, storage.WrapError(cfg.Bucket, "init", err)
	}

	// Create S3 client
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return NewFromClient(client, cfg.Bucket, cfg.KMSKeyID), nil
}

// NewFromClient wraps an existing S3 client, for callers that configure
// the client themselves.
func NewFromClient(client *s3.Client, bucket, kmsKeyID string) *Store {
	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		kmsKeyID: kmsKeyID,
	}
}

func (s *Store) Bucket() string { return s.bucket }

// Stat returns metadata about an object
func (s *Store) Stat(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	result, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, storage.WrapError(s.bucket, "stat", storage.ErrNotFound)
		}
		return nil, storage.WrapError(s.bucket, "stat", err)
	}

	return &storage.ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(result.ContentLength),
		LastModified: aws.ToTime(result.LastModified),
		ContentType:  aws.ToString(result.ContentType),
	}, nil
}

// Walk calls fn for every object under prefix, paging lazily
func (s *Store) Walk(ctx context.Context, prefix string, fn func(storage.ObjectInfo) error) error {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return storage.WrapError(s.bucket, "list", err)
		}

		for _, obj := range page.Contents {
			info := storage.ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			}
			if err := fn(info); err != nil {
				return err
			}
		}
	}

	return nil
}

// Get opens an object for reading. The caller must close the body.
func (s *Store) Get(ctx context.Context, key string) (*storage.Object, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, storage.WrapError(s.bucket, "get", storage.ErrNotFound)
		}
		return nil, storage.WrapError(s.bucket, "get", err)
	}

	return &storage.Object{
		Info: storage.ObjectInfo{
			Key:          key,
			Size:         aws.ToInt64(result.ContentLength),
			LastModified: aws.ToTime(result.LastModified),
			ContentType:  aws.ToString(result.ContentType),
		},
		Body: result.Body,
	}, nil
}

// Put uploads an object, re-encrypting under the store's KMS key
func (s *Store) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	if contentType == "" {
		contentType = defaultContentType
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if s.kmsKeyID != "" {
		input.ServerSideEncryption = types.ServerSideEncryptionAwsKms
		input.SSEKMSKeyId = aws.String(s.kmsKeyID)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return storage.WrapError(s.bucket, "put", err)
	}

	return nil
}

// Close is a no-op for S3
func (s *Store) Close() error {
	return nil
}

// isNotFound reports whether err is the service's 404 for a missing key.
// HeadObject surfaces types.NotFound, GetObject types.NoSuchKey; anything
// routed through a raw smithy error is matched by code.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}
