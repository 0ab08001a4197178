package s3

import "fmt"

// BucketOwnedByOther means the bucket name is taken by another account, or
// by the caller in a different region setup.
type BucketOwnedByOther string

func (err BucketOwnedByOther) Error() string {
	return fmt.Sprintf("bucket name %s already exists but is owned by someone else or in a different region setup", string(err))
}

// InvalidBucketName means the bucket name violates the S3 naming rules.
type InvalidBucketName string

func (err InvalidBucketName) Error() string {
	return fmt.Sprintf("invalid bucket name %s, check the S3 naming rules", string(err))
}

// IllegalLocationConstraint means S3 rejected the location constraint passed
// for the configured region.
type IllegalLocationConstraint struct {
	BucketName string
	Region     string
}

func (err IllegalLocationConstraint) Error() string {
	return fmt.Sprintf("illegal location constraint creating bucket %s: do not specify a location constraint for region %s", err.BucketName, err.Region)
}

// TableActiveRetriesExceeded means the lock table did not reach the active
// state within the waiter bound.
type TableActiveRetriesExceeded struct {
	TableName string
	Retries   int
}

func (err TableActiveRetriesExceeded) Error() string {
	return fmt.Sprintf("table %s is still not in active state after %d retries", err.TableName, err.Retries)
}

// TableDeleteRetriesExceeded means the lock table still existed after the
// waiter bound following a delete call.
type TableDeleteRetriesExceeded struct {
	TableName string
	Retries   int
}

func (err TableDeleteRetriesExceeded) Error() string {
	return fmt.Sprintf("table %s still exists after %d retries waiting for deletion", err.TableName, err.Retries)
}
