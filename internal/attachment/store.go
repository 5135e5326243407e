// Package attachment keeps expense receipts in an S3-compatible bucket.
package attachment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	URLExpiry time.Duration
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Store struct {
	objects objectAPI
	presign presigner
	bucket  string
	expiry  time.Duration
	now     func() time.Time
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newStore(client, s3.NewPresignClient(client), cfg), nil
}

func newStore(objects objectAPI, presign presigner, cfg Config) *Store {
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &Store{
		objects: objects,
		presign: presign,
		bucket:  cfg.Bucket,
		expiry:  expiry,
		now:     time.Now,
	}
}

// Key builds the object key for a receipt uploaded now, keeping the file extension.
func (s *Store) Key(ownerID uuid.UUID, name string) string {
	d := s.now()
	ext := strings.ToLower(path.Ext(name))

	return fmt.Sprintf("receipts/%s/%d/%02d/%s%s", ownerID, d.Year(), d.Month(), uuid.New(), ext)
}

func (s *Store) Upload(ctx context.Context, ownerID uuid.UUID, name, contentType string, body io.Reader) (string, error) {
	// The SDK needs a seekable body to sign plain-HTTP uploads.
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading receipt: %w", err)
	}

	key := s.Key(ownerID, name)

	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.objects.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("uploading receipt: %w", err)
	}

	return key, nil
}

// URL returns a presigned GET link valid for the configured expiry.
func (s *Store) URL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presigning receipt url: %w", err)
	}

	return req.URL, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	return nil
}
