// Package s3 manages the AWS resources backing a Terraform remote state
// configuration: the versioned state bucket and the DynamoDB lock table.
package s3

import (
	"context"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/devopsgroupeu/StateCraft/internal/awshelper"
	"github.com/devopsgroupeu/StateCraft/internal/log"
)

// S3API is the subset of the S3 client the bucket manager uses. The concrete
// SDK client satisfies it; tests substitute fakes.
type S3API interface {
	CreateBucket(ctx context.Context, params *awss3.CreateBucketInput, optFns ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error)
	PutBucketVersioning(ctx context.Context, params *awss3.PutBucketVersioningInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketVersioningOutput, error)
	PutBucketEncryption(ctx context.Context, params *awss3.PutBucketEncryptionInput, optFns ...func(*awss3.Options)) (*awss3.PutBucketEncryptionOutput, error)
	PutPublicAccessBlock(ctx context.Context, params *awss3.PutPublicAccessBlockInput, optFns ...func(*awss3.Options)) (*awss3.PutPublicAccessBlockOutput, error)
	HeadBucket(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
	ListObjectVersions(ctx context.Context, params *awss3.ListObjectVersionsInput, optFns ...func(*awss3.Options)) (*awss3.ListObjectVersionsOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
	DeleteBucket(ctx context.Context, params *awss3.DeleteBucketInput, optFns ...func(*awss3.Options)) (*awss3.DeleteBucketOutput, error)
}

// DynamoDBAPI is the subset of the DynamoDB client the table manager uses.
type DynamoDBAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
}

// Client bundles the S3 and DynamoDB clients for one region and one
// credential source. A Client is built per invocation and never shared.
type Client struct {
	S3       S3API
	DynamoDB DynamoDBAPI

	// Region the bundle is bound to.
	Region string
}

// NewClient builds the client bundle from the given session configuration.
// No AWS calls are made beyond what the SDK does for credential resolution.
func NewClient(ctx context.Context, l log.Logger, sessionCfg *awshelper.SessionConfig) (*Client, error) {
	cfg, err := awshelper.CreateAwsConfig(ctx, l, sessionCfg)
	if err != nil {
		return nil, err
	}

	client := &Client{
		S3:       awss3.NewFromConfig(cfg),
		DynamoDB: dynamodb.NewFromConfig(cfg),
		Region:   sessionCfg.Region,
	}

	return client, nil
}
