package fixture

import (
	"context"
	"fmt"

	"lstack/internal/endpoint"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// The emulator accepts any credentials.
const (
	testAccessKeyID     = "test"
	testSecretAccessKey = "test"
)

// AWSConfig returns an AWS SDK configuration with static test credentials.
// Service clients still need their endpoint; see S3Client.
func (f *Fixture) AWSConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(f.region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(testAccessKeyID, testSecretAccessKey, ""),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// S3Client returns an S3 client pointed at the emulator. Buckets are
// addressed virtual-host style, which the S3 host name supports.
func (f *Fixture) S3Client(ctx context.Context) (*s3.Client, error) {
	url, err := f.Endpoint(endpoint.S3)
	if err != nil {
		return nil, err
	}
	cfg, err := f.AWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(url)
		o.UsePathStyle = f.resolver.Host(endpoint.S3) == f.resolver.Host("")
	}), nil
}
