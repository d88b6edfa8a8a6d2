// Copyright (c) 2026 BookWise. All rights reserved.

// Package storage provides S3-compatible object storage for book media.
//
// # Scope
//
// Covers, PDF summaries, audio, and video files are uploaded by admins
// through the catalog handlers and served to readers via their public URLs.
// The store itself only ever persists the resulting URL, never the bytes.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

// MediaService uploads and deletes book media objects.
type MediaService struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

// Options configures a [MediaService].
type Options struct {
	Bucket      string
	Region      string
	Endpoint    string
	AccessKeyID string
	SecretKey   string
}

// New constructs a MediaService against an S3-compatible endpoint.
//
// Static credentials are optional; when absent the default AWS chain is used.
func New(ctx context.Context, opts Options) (*MediaService, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage: S3_BUCKET is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Path-style addressing for non-AWS S3 implementations.
			o.UsePathStyle = true
		}
	})

	return &MediaService{client: client, bucket: opts.Bucket, endpoint: opts.Endpoint}, nil
}

// Upload stores the file under prefix (e.g. "covers/") and returns the public URL.
//
// The object key embeds a UUIDv7 so repeated uploads of the same filename
// never collide and sort by upload time.
func (s *MediaService) Upload(ctx context.Context, prefix, originalFilename string, body io.Reader, contentType string) (string, error) {
	ext := filepath.Ext(originalFilename)
	key := prefix + uuidv7.New() + ext

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload of %q failed: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// Delete removes the object identified by its public URL or bare key.
func (s *MediaService) Delete(ctx context.Context, urlOrKey string) error {
	key := strings.TrimPrefix(urlOrKey, s.PublicURL(""))

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete of %q failed: %w", key, err)
	}

	return nil
}

// PublicURL returns the browsable URL for an object key.
func (s *MediaService) PublicURL(key string) string {
	if s.endpoint != "" {
		return strings.TrimSuffix(s.endpoint, "/") + "/" + s.bucket + "/" + key
	}
	return "https://" + s.bucket + ".s3.amazonaws.com/" + key
}
