package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	studioconfig "github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/domain"
)

// ObjectAPI is the part of the S3 client the asset store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Service stores site images under a key prefix in one bucket.
type S3Service struct {
	BucketName string
	Prefix     string
	Region     string
	Client     ObjectAPI
}

// NewS3Service initializes the S3 service from the default AWS credential chain.
func NewS3Service(ctx context.Context, cfg studioconfig.StorageConfig) (*S3Service, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewS3ServiceWithClient(cfg, s3.NewFromConfig(awsCfg)), nil
}

func NewS3ServiceWithClient(cfg studioconfig.StorageConfig, client ObjectAPI) *S3Service {
	return &S3Service{
		BucketName: cfg.Bucket,
		Prefix:     strings.Trim(cfg.Prefix, "/"),
		Region:     cfg.Region,
		Client:     client,
	}
}

// Key maps a site path such as /images/event/event-01.jpg to an object key.
func (s *S3Service) Key(ref string) string {
	ref = strings.TrimPrefix(ref, "/")
	if s.Prefix == "" {
		return ref
	}
	return path.Join(s.Prefix, ref)
}

// Upload puts body under ref and returns the public URL.
func (s *S3Service) Upload(ctx context.Context, ref string, body io.Reader, contentType string) (string, error) {
	key := s.Key(ref)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return s.URL(ref), nil
}

// Open streams the object stored under ref. The caller closes the reader.
func (s *S3Service) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	key := s.Key(ref)
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("object %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch %s from S3: %w", key, err)
	}
	return out.Body, nil
}

func (s *S3Service) URL(ref string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, s.Key(ref))
}
