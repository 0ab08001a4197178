// Package remotestate sequences the bucket and lock table operations that
// provision or tear down a Terraform remote state backend.
package remotestate

import (
	"github.com/devopsgroupeu/StateCraft/internal/awshelper"
	"github.com/devopsgroupeu/StateCraft/internal/errors"
)

// LockingMode selects the mutual-exclusion mechanism for the state backend.
type LockingMode string

const (
	// LockingModeDynamoDB provisions a DynamoDB lock table next to the
	// state bucket. Recommended for teams.
	LockingModeDynamoDB LockingMode = "dynamodb"

	// LockingModeS3 relies on bucket versioning alone; no lock table is managed.
	LockingModeS3 LockingMode = "s3"
)

// RequiresLockTable returns true if the mode manages a DynamoDB lock table.
func (mode LockingMode) RequiresLockTable() bool {
	return mode == LockingModeDynamoDB
}

// Request describes one provision or teardown invocation. Credential fields
// are optional; when either is empty the ambient AWS credential chain is used.
type Request struct {
	Region          string
	BucketName      string
	LockingMode     LockingMode
	TableName       string
	AccessKeyID     string
	SecretAccessKey string
}

// Validate checks the request before any AWS client is constructed.
// Violations are caller errors, not operational failures.
func (req *Request) Validate() error {
	if req.Region == "" {
		return errors.New(UsageError("region is required"))
	}

	if req.BucketName == "" {
		return errors.New(UsageError("bucket name is required"))
	}

	switch req.LockingMode {
	case LockingModeDynamoDB:
		if req.TableName == "" {
			return errors.New(UsageError("table name is required when the locking mechanism is 'dynamodb'"))
		}
	case LockingModeS3:
	default:
		return errors.New(UsageError("locking mechanism must be 'dynamodb' or 's3', got '" + string(req.LockingMode) + "'"))
	}

	return nil
}

// SessionConfig returns the client factory configuration for this request.
func (req *Request) SessionConfig() *awshelper.SessionConfig {
	return &awshelper.SessionConfig{
		Region:          req.Region,
		AccessKeyID:     req.AccessKeyID,
		SecretAccessKey: req.SecretAccessKey,
	}
}

// Outcome reports the result of one provision or teardown invocation.
// FailureReasons holds the reason for each failed sub-resource in operation
// order; it is empty on success.
type Outcome struct {
	Success        bool
	BucketResult   bool
	TableResult    bool
	FailureReasons []string
}
