package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/devopsgroupeu/StateCraft/internal/log"
)

// awsDefaultRegion is the region for which S3 rejects an explicit location
// constraint naming it; bucket creation there must omit the constraint.
const awsDefaultRegion = "us-east-1"

// CreateStateBucket creates the state bucket and applies the backend
// configuration in order: versioning, default server-side encryption, and
// public access blocking. The bucket counts as created only if creation and
// all three configuration steps succeed.
//
// A bucket that already exists and is owned by the caller is treated as
// success without reconfiguration; an existing bucket with drifted settings
// is not detected here.
func (client *Client) CreateStateBucket(ctx context.Context, l log.Logger, bucketName string) error {
	l.Infof("Attempting to create S3 bucket %s in region %s", bucketName, client.Region)

	input := &awss3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}
	if client.Region != awsDefaultRegion {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(client.Region),
		}
	}

	if _, err := client.S3.CreateBucket(ctx, input); err != nil {
		var alreadyOwned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			l.Warnf("Bucket %s already exists and is owned by you, skipping creation", bucketName)
			return nil
		}

		var alreadyExists *s3types.BucketAlreadyExists
		if errors.As(err, &alreadyExists) {
			return errors.New(BucketOwnedByOther(bucketName))
		}

		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "InvalidBucketName":
				return errors.New(InvalidBucketName(bucketName))
			case "IllegalLocationConstraintException":
				return errors.New(IllegalLocationConstraint{BucketName: bucketName, Region: client.Region})
			}
		}

		return errors.Errorf("error creating S3 bucket %s: %w", bucketName, err)
	}

	l.Infof("Bucket %s created, configuring backend settings", bucketName)

	if err := client.EnableVersioningForS3Bucket(ctx, l, bucketName); err != nil {
		return err
	}

	if err := client.EnableSSEForS3Bucket(ctx, l, bucketName); err != nil {
		return err
	}

	if err := client.EnablePublicAccessBlockingForS3Bucket(ctx, l, bucketName); err != nil {
		return err
	}

	l.Infof("S3 bucket %s created and configured successfully", bucketName)

	return nil
}

// EnableVersioningForS3Bucket enables versioning for the given S3 bucket.
func (client *Client) EnableVersioningForS3Bucket(ctx context.Context, l log.Logger, bucketName string) error {
	l.Debugf("Enabling versioning on S3 bucket %s", bucketName)

	input := &awss3.PutBucketVersioningInput{
		Bucket: aws.String(bucketName),
		VersioningConfiguration: &s3types.VersioningConfiguration{
			Status: s3types.BucketVersioningStatusEnabled,
		},
	}

	if _, err := client.S3.PutBucketVersioning(ctx, input); err != nil {
		return errors.Errorf("error enabling versioning on S3 bucket %s: %w", bucketName, err)
	}

	l.Infof("Versioning enabled for bucket %s", bucketName)

	return nil
}

// EnableSSEForS3Bucket enables bucket-wide default server-side encryption
// (AES256) for the given S3 bucket.
func (client *Client) EnableSSEForS3Bucket(ctx context.Context, l log.Logger, bucketName string) error {
	l.Debugf("Enabling bucket-wide SSE on S3 bucket %s", bucketName)

	rule := s3types.ServerSideEncryptionRule{
		ApplyServerSideEncryptionByDefault: &s3types.ServerSideEncryptionByDefault{
			SSEAlgorithm: s3types.ServerSideEncryptionAes256,
		},
	}
	input := &awss3.PutBucketEncryptionInput{
		Bucket: aws.String(bucketName),
		ServerSideEncryptionConfiguration: &s3types.ServerSideEncryptionConfiguration{
			Rules: []s3types.ServerSideEncryptionRule{rule},
		},
	}

	if _, err := client.S3.PutBucketEncryption(ctx, input); err != nil {
		return errors.Errorf("error enabling bucket-wide SSE on S3 bucket %s: %w", bucketName, err)
	}

	l.Infof("Server-side encryption (AES256) enabled for bucket %s", bucketName)

	return nil
}

// EnablePublicAccessBlockingForS3Bucket blocks all forms of public access to
// the given S3 bucket.
func (client *Client) EnablePublicAccessBlockingForS3Bucket(ctx context.Context, l log.Logger, bucketName string) error {
	l.Debugf("Blocking public access to S3 bucket %s", bucketName)

	input := &awss3.PutPublicAccessBlockInput{
		Bucket: aws.String(bucketName),
		PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(true),
			RestrictPublicBuckets: aws.Bool(true),
		},
	}

	if _, err := client.S3.PutPublicAccessBlock(ctx, input); err != nil {
		return errors.Errorf("error blocking public access to S3 bucket %s: %w", bucketName, err)
	}

	l.Infof("Public access blocked for bucket %s", bucketName)

	return nil
}

// DeleteStateBucket deletes the state bucket after purging every object
// version and delete marker it holds. A bucket that does not exist is
// treated as success. Partial emptying is not rolled back on failure.
func (client *Client) DeleteStateBucket(ctx context.Context, l log.Logger, bucketName string) error {
	l.Infof("Attempting to delete S3 bucket %s", bucketName)

	exists, err := client.DoesS3BucketExist(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		l.Warnf("Bucket %s does not exist, skipping deletion", bucketName)
		return nil
	}

	l.Infof("Emptying bucket %s (deleting all object versions)", bucketName)

	if err := client.DeleteS3BucketVersionObjects(ctx, l, bucketName); err != nil {
		return err
	}

	l.Infof("Bucket %s emptied, deleting the bucket itself", bucketName)

	if _, err := client.S3.DeleteBucket(ctx, &awss3.DeleteBucketInput{Bucket: aws.String(bucketName)}); err != nil {
		return errors.Errorf("error deleting S3 bucket %s: %w", bucketName, err)
	}

	l.Infof("S3 bucket %s deleted successfully", bucketName)

	return nil
}

// DoesS3BucketExist returns true if the given S3 bucket exists and is
// accessible to the caller.
func (client *Client) DoesS3BucketExist(ctx context.Context, bucketName string) (bool, error) {
	if _, err := client.S3.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(bucketName)}); err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}

		return false, errors.Errorf("error checking if S3 bucket %s exists: %w", bucketName, err)
	}

	return true, nil
}

// DeleteS3BucketVersionObjects deletes every object version and delete
// marker in the given bucket. A plain object listing is not enough for a
// versioned bucket; historical versions and delete markers must be purged or
// the final bucket deletion will fail.
func (client *Client) DeleteS3BucketVersionObjects(ctx context.Context, l log.Logger, bucketName string) error {
	var (
		input   = &awss3.ListObjectVersionsInput{Bucket: aws.String(bucketName)}
		deleted = 0
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, err := client.S3.ListObjectVersions(ctx, input)
		if err != nil {
			return errors.Errorf("failed to list object versions in bucket %s: %w", bucketName, err)
		}

		for _, item := range res.DeleteMarkers {
			if err := client.deleteObjectVersion(ctx, l, bucketName, aws.ToString(item.Key), item.VersionId); err != nil {
				return err
			}

			deleted++
		}

		for _, item := range res.Versions {
			if err := client.deleteObjectVersion(ctx, l, bucketName, aws.ToString(item.Key), item.VersionId); err != nil {
				return err
			}

			deleted++
		}

		if !aws.ToBool(res.IsTruncated) {
			break
		}

		input.KeyMarker = res.NextKeyMarker
		input.VersionIdMarker = res.NextVersionIdMarker
	}

	l.Infof("Deleted %d object versions from bucket %s", deleted, bucketName)

	return nil
}

func (client *Client) deleteObjectVersion(ctx context.Context, l log.Logger, bucketName, key string, versionID *string) error {
	l.Debugf("Deleting S3 bucket %s object %s version %s", bucketName, key, aws.ToString(versionID))

	input := &awss3.DeleteObjectInput{
		Bucket:    aws.String(bucketName),
		Key:       aws.String(key),
		VersionId: versionID,
	}

	if _, err := client.S3.DeleteObject(ctx, input); err != nil {
		return errors.Errorf("failed to delete object %s from bucket %s: %w", key, bucketName, err)
	}

	return nil
}
