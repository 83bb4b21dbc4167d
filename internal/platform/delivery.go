package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Delivery hands a generated file to the user and returns where it went.
type Delivery interface {
	Deliver(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// FileDelivery writes files into a local directory.
type FileDelivery struct {
	Dir string
}

// NewFileDelivery returns a delivery into dir. An empty dir means the working directory.
func NewFileDelivery(dir string) *FileDelivery {
	if dir == "" {
		dir = "."
	}
	return &FileDelivery{Dir: dir}
}

func (d *FileDelivery) Deliver(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriterDelivery streams files to a writer, such as stdout.
type WriterDelivery struct {
	W io.Writer
}

func (d WriterDelivery) Deliver(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := d.W.Write(data); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// S3Config holds the export bucket parameters.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional; set for MinIO or other S3-compatible stores
	Prefix    string
	PathStyle bool
}

type s3Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Delivery uploads files to an S3-compatible bucket.
type S3Delivery struct {
	client s3Putter
	bucket string
	prefix string
}

// NewS3Delivery builds a client from the default AWS credential chain.
func NewS3Delivery(ctx context.Context, cfg S3Config) (*S3Delivery, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Delivery{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (d *S3Delivery) Deliver(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := name
	if d.prefix != "" {
		key = strings.TrimSuffix(d.prefix, "/") + "/" + name
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := d.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", d.bucket, key), nil
}
