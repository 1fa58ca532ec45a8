package filesystem

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StoreFile writes an object to the bucket. The key is chosen by the
// caller; evidence keys are opaque uuids so the bucket layout leaks
// nothing about tenants or shifts.
func StoreFile(ctx context.Context, bucket string, key string, contentType string, body io.Reader) error {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s into bucket %s: %w", key, bucket, err)
	}

	return nil
}

// ReadFile streams an object into outStream and returns its content type.
func ReadFile(ctx context.Context, bucket string, key string, outStream io.Writer) (string, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer resp.Body.Close()

	if _, err = io.Copy(outStream, resp.Body); err != nil {
		return "", fmt.Errorf("failed to copy object %s from bucket %s: %w", key, bucket, err)
	}

	contentType := ""
	if resp.ContentType != nil {
		contentType = *resp.ContentType
	}
	return contentType, nil
}
