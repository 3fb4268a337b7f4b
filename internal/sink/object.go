package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/joseyose/udimgen"
)

// S3Config configures the object storage connection.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Object uploads the script as a single object.
type Object struct {
	client *minio.Client
	bucket string
	key    string
}

// NewObject creates an object storage sink for bucket/key.
func NewObject(cfg S3Config, bucket, key string) (*Object, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &Object{client: client, bucket: bucket, key: key}, nil
}

// Write implements Sink.
func (s *Object) Write(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}

	_, err := s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/x-makefile",
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", udimgen.ErrSinkWrite, s, err)
	}

	return nil
}

func (s *Object) String() string { return ObjectScheme + s.bucket + "/" + s.key }
