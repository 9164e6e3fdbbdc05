package publishers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// loadAWSConfig resolves the AWS configuration for a publisher, preferring
// static credentials when both halves are configured.
func loadAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	loaders := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loaders = append(loaders, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	return awscfg.LoadDefaultConfig(ctx, loaders...)
}
