// internal/common/aws/s3.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "awards-portal/internal/common/config"
)

func LoadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

// NewS3Client builds the object store client. A custom endpoint targets an
// S3 compatible store such as MinIO or localstack.
func NewS3Client(ctx context.Context, cfg appconfig.StorageConfig) (*s3.Client, error) {
	awsCfg, err := LoadConfig(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = awssdk.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}
