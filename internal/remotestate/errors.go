package remotestate

import "fmt"

// UsageError is a caller input error detected before any client is built.
// Surface adapters map it to a CLI usage error or an HTTP 400.
type UsageError string

func (err UsageError) Error() string {
	return string(err)
}

// ClientInitError wraps a failure to build the AWS clients. No resource
// operation is attempted after it.
type ClientInitError struct {
	Underlying error
}

func (err ClientInitError) Error() string {
	return fmt.Sprintf("failed to initialize AWS clients: %v", err.Underlying)
}

func (err ClientInitError) Unwrap() error {
	return err.Underlying
}

// BucketDeleteSkipped records that bucket deletion was never attempted
// because the lock table could not be deleted first. The bucket is left in
// place so the state it holds is not orphaned while a lock may still exist.
type BucketDeleteSkipped struct {
	BucketName string
}

func (err BucketDeleteSkipped) Error() string {
	return fmt.Sprintf("skipped deletion of S3 bucket %s because the lock table could not be deleted", err.BucketName)
}
