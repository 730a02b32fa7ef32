package s3

import (
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"baka-api/config"
)

var ErrNoBucket = errors.New("s3: uploads bucket is not configured")

// Client derives public object URLs for stored files. It never talks to the
// object store itself.
type Client struct {
	logger *zap.Logger
	region string
	bucket string
}

func New(
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	if cfg.BucketUploads == "" {
		return nil, ErrNoBucket
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	logger.Info("object urls enabled", zap.String("bucket", cfg.BucketUploads), zap.String("region", region))

	return &Client{
		logger: logger,
		region: region,
		bucket: cfg.BucketUploads,
	}, nil
}

func (c *Client) GetPublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, url.PathEscape(key))
}

func (c *Client) GetBucket() string { return c.bucket }
