package s3aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"transfer-storefront/internal/pkg/logger"
	"transfer-storefront/internal/pkg/redis"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const defaultPresignTTL = 24 * time.Hour

type S3Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// Endpoint points the client at an S3 compatible store such as MinIO.
	Endpoint   string
	PresignTTL time.Duration
}

type S3Client struct {
	Client     *s3.S3
	BucketName string
	presignTTL time.Duration
	redis      redis.IRedis
}

// Is3 is the object store used for receipts.
type Is3 interface {
	GetBucketName() string
	UploadFile(ctx context.Context, key string, body []byte, contentType string) error
	GetPresignedURL(key string) (string, error)
}

func newSession(cfg S3Config) (*session.Session, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	return session.NewSession(awsCfg)
}

// New builds a client without touching the network.
func New(cfg S3Config, bucketName string, rds redis.IRedis) (*S3Client, error) {
	if bucketName == "" {
		return nil, errors.New("s3 bucket name is required")
	}
	sess, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &S3Client{
		Client:     s3.New(sess),
		BucketName: bucketName,
		presignTTL: ttl,
		redis:      rds,
	}, nil
}

// NewS3Client builds a client and creates the bucket when it is missing.
func NewS3Client(ctx context.Context, cfg S3Config, bucketName string, rds redis.IRedis) (*S3Client, error) {
	client, err := New(cfg, bucketName, rds)
	if err != nil {
		return nil, err
	}

	exists, err := client.bucketExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Info.Println("creating s3 bucket:", bucketName)
		if _, err := client.Client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(bucketName),
		}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
	}
	return client, nil
}

func (s *S3Client) bucketExists(ctx context.Context) (bool, error) {
	_, err := s.Client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err == nil {
		return true, nil
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, "NotFound":
			return false, nil
		}
	}
	return false, err
}

func (s *S3Client) GetBucketName() string {
	return s.BucketName
}

func (s *S3Client) UploadFile(ctx context.Context, key string, body []byte, contentType string) error {
	if contentType == "" {
		contentType = contentTypeFromKey(key)
	}
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3: %w", key, err)
	}
	// A stale cached link would point at the previous object version.
	if s.redis != nil {
		_ = s.redis.Del(s.cacheKey(key))
	}
	return nil
}

func (s *S3Client) cacheKey(key string) string {
	return fmt.Sprintf("s3:%s:%s", s.BucketName, key)
}

// GetPresignedURL signs a GET for key. Signed links are cached in redis for
// slightly less than their lifetime.
func (s *S3Client) GetPresignedURL(key string) (string, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(s.cacheKey(key)); err == nil && strings.HasPrefix(cached, "http") {
			return cached, nil
		}
	}

	req, _ := s.Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket:                     aws.String(s.BucketName),
		Key:                        aws.String(key),
		ResponseContentType:        aws.String(contentTypeFromKey(key)),
		ResponseContentDisposition: aws.String("inline"),
	})
	urlStr, err := req.Presign(s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.Set(s.cacheKey(key), urlStr, s.presignTTL-time.Minute); err != nil {
			logger.Warning.Printf("failed to cache presigned URL for %s: %v\n", key, err)
		}
	}
	return urlStr, nil
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".csv":  "text/csv",
}

func contentTypeFromKey(key string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(key))]; ok {
		return ct
	}
	return "application/octet-stream"
}
