package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageAsset describes an uploaded object: the public URL, the storage
// handle needed to delete it later, and the stored file name.
type ImageAsset struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

// ImageStorageConfig carries the S3-compatible endpoint settings.
type ImageStorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // optional CDN/direct URL prefix for stored objects
}

// ImageStorage stores uploaded blog images in an S3-compatible bucket.
// Path-style addressing keeps it working against non-AWS providers.
type ImageStorage struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// NewImageStorage builds an S3 client from the config. Returns an error
// when the endpoint or credentials are missing so the caller can decide
// whether to run without object storage.
func NewImageStorage(cfg ImageStorageConfig) (*ImageStorage, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, errors.New("object storage is not configured")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})

	return &ImageStorage{
		s3:        client,
		bucket:    cfg.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores the bytes under the given logical folder and returns
// the resulting asset descriptor. The stored name keeps the original
// base name with a unique suffix so repeated uploads never collide.
func (s *ImageStorage) Upload(ctx context.Context, data []byte, filename, folder string) (ImageAsset, error) {
	name := storedName(filename)
	key := path.Join(folder, name)

	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return ImageAsset{}, fmt.Errorf("s3 upload %s/%s: %w", s.bucket, key, err)
	}

	return ImageAsset{
		URL:    s.fileURL(key),
		FileID: key,
		Name:   name,
	}, nil
}

// Delete removes a previously uploaded object by its storage handle.
func (s *ImageStorage) Delete(ctx context.Context, fileID string) error {
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", s.bucket, fileID, err)
	}
	return nil
}

// fileURL returns the public URL for a stored object. Uses the
// configured public URL if set, otherwise builds a path-style URL.
func (s *ImageStorage) fileURL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return s.endpoint + "/" + s.bucket + "/" + key
}

// storedName derives the object file name from the original upload name.
func storedName(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	if base == "" || base == "." {
		base = "image"
	}
	return fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext)
}
