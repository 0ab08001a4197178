// Package awshelper builds AWS SDK configuration for the S3 and DynamoDB clients.
package awshelper

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/devopsgroupeu/StateCraft/internal/log"
)

// SessionConfig is the set of options the client factory needs to bind
// clients to one region and one credential source.
type SessionConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// HasStaticCredentials returns true if an explicit key pair was provided.
// A half-provided pair is treated as absent so that resolution falls back to
// the ambient credential chain, matching the SDK default behavior.
func (cfg *SessionConfig) HasStaticCredentials() bool {
	return cfg.AccessKeyID != "" && cfg.SecretAccessKey != ""
}

// CreateAwsConfig returns an aws.Config bound to the given region. When a
// full static key pair is provided it overrides the ambient credential chain
// (environment, shared config, instance role). Credential material is never
// logged.
func CreateAwsConfig(ctx context.Context, l log.Logger, sessionCfg *SessionConfig) (aws.Config, error) {
	if sessionCfg.Region == "" {
		return aws.Config{}, errors.New(MissingRegionError{})
	}

	configOptions := []func(*config.LoadOptions) error{
		config.WithRegion(sessionCfg.Region),
	}

	if sessionCfg.HasStaticCredentials() {
		l.Debugf("Using static AWS credentials from the request")

		provider := credentials.NewStaticCredentialsProvider(sessionCfg.AccessKeyID, sessionCfg.SecretAccessKey, "")
		configOptions = append(configOptions, config.WithCredentialsProvider(provider))
	} else {
		l.Debugf("Using ambient AWS credential chain")
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return aws.Config{}, errors.Errorf("error initializing AWS configuration for region %s: %w", sessionCfg.Region, err)
	}

	return cfg, nil
}

// MissingRegionError is returned when the client factory is called without a region.
type MissingRegionError struct{}

func (err MissingRegionError) Error() string {
	return "missing required AWS region"
}
