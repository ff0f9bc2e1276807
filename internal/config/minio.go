package config

import (
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Attachment objects are served straight from the bucket, so anonymous
// download is the only access the policy grants. Uploads always go through
// the API.
const attachmentBucketPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

// NewMinIOClient connects to the blob store holding grievance attachments
// and ensures the attachment bucket exists with download-only anonymous
// access, so the attachment URLs returned by the API open directly.
func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.Printf("Created attachment bucket %q", cfg.MinIOBucket)
	}

	policy := fmt.Sprintf(attachmentBucketPolicy, cfg.MinIOBucket)
	if err := client.SetBucketPolicy(ctx, cfg.MinIOBucket, policy); err != nil {
		log.Printf("Warning: could not set download policy on bucket %q: %v", cfg.MinIOBucket, err)
	}

	return client, nil
}
