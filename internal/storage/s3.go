package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"server/config"
	"server/internal/logger"
)

// S3Store stores objects in a single bucket and hands back plain public
// URLs. Locators are treated as capability tokens: anyone holding one can
// fetch the object, so the bucket is expected to be read-public.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	log     logger.Logger
}

func NewS3Store(ctx context.Context, config config.Config) (*S3Store, error) {
	log := logger.New("storage").Function("NewS3Store")

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.StorageRegion))
	if err != nil {
		return nil, log.Err("failed to load aws config", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(config.StorageEndpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := config.StoragePublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com",
			config.StorageBucket, config.StorageRegion)
	}

	return &S3Store{
		client:  client,
		bucket:  config.StorageBucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logger.New("storage"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	log := s.log.Function("Put")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", log.Err("failed to put object", err, "key", key)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}
