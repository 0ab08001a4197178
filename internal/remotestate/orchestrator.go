package remotestate

import (
	"context"

	"github.com/devopsgroupeu/StateCraft/internal/awshelper"
	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/devopsgroupeu/StateCraft/internal/log"
	s3backend "github.com/devopsgroupeu/StateCraft/internal/remotestate/s3"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// StateClient is the contract the orchestrator needs from the AWS layer.
// *s3.Client implements it; tests substitute fakes.
type StateClient interface {
	CreateStateBucket(ctx context.Context, l log.Logger, bucketName string) error
	DeleteStateBucket(ctx context.Context, l log.Logger, bucketName string) error
	CreateLockTable(ctx context.Context, l log.Logger, tableName string) error
	DeleteLockTable(ctx context.Context, l log.Logger, tableName string) error
}

// ClientFactory builds the client bundle for one request.
type ClientFactory func(ctx context.Context, l log.Logger, cfg *awshelper.SessionConfig) (StateClient, error)

// Orchestrator runs the provision and teardown flows. It holds no state
// between invocations; every call validates its request, builds a fresh
// client bundle and executes the bucket and table operations sequentially.
type Orchestrator struct {
	logger    log.Logger
	newClient ClientFactory
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClientFactory overrides how the AWS client bundle is built.
func WithClientFactory(factory ClientFactory) Option {
	return func(orchestrator *Orchestrator) {
		orchestrator.newClient = factory
	}
}

// NewOrchestrator returns an Orchestrator logging through the given logger.
func NewOrchestrator(l log.Logger, opts ...Option) *Orchestrator {
	orchestrator := &Orchestrator{
		logger: l,
		newClient: func(ctx context.Context, l log.Logger, cfg *awshelper.SessionConfig) (StateClient, error) {
			return s3backend.NewClient(ctx, l, cfg)
		},
	}

	for _, opt := range opts {
		opt(orchestrator)
	}

	return orchestrator
}

// Provision creates the state bucket and, when the locking mode requires it,
// the lock table. The bucket is always attempted first; the table is
// attempted regardless of the bucket outcome. Overall success requires every
// managed resource to succeed.
//
// The returned error is non-nil only for a UsageError or a ClientInitError;
// operational failures are reported through the Outcome.
func (orchestrator *Orchestrator) Provision(ctx context.Context, req *Request) (*Outcome, error) {
	l, client, err := orchestrator.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		errs    *multierror.Error
		outcome = &Outcome{BucketResult: true, TableResult: true}
	)

	if err := client.CreateStateBucket(ctx, l, req.BucketName); err != nil {
		l.WithError(err).Errorf("S3 bucket operation failed")

		outcome.BucketResult = false
		errs = multierror.Append(errs, err)
	}

	if req.LockingMode.RequiresLockTable() {
		if err := client.CreateLockTable(ctx, l, req.TableName); err != nil {
			l.WithError(err).Errorf("DynamoDB table operation failed")

			outcome.TableResult = false
			errs = multierror.Append(errs, err)
		}
	}

	return orchestrator.complete(l, outcome, errs), nil
}

// Deprovision tears the backend down. When the locking mode manages a lock
// table, the table is deleted first; if that fails, bucket deletion is
// skipped entirely so the state data is never orphaned while a lock may
// still exist.
func (orchestrator *Orchestrator) Deprovision(ctx context.Context, req *Request) (*Outcome, error) {
	l, client, err := orchestrator.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		errs    *multierror.Error
		outcome = &Outcome{BucketResult: true, TableResult: true}
	)

	if req.LockingMode.RequiresLockTable() {
		if err := client.DeleteLockTable(ctx, l, req.TableName); err != nil {
			l.WithError(err).Errorf("DynamoDB table operation failed")
			l.Errorf("Skipping S3 bucket deletion because lock table deletion failed")

			outcome.TableResult = false
			outcome.BucketResult = false
			errs = multierror.Append(errs, err, errors.New(BucketDeleteSkipped{BucketName: req.BucketName}))
		}
	}

	if outcome.TableResult {
		if err := client.DeleteStateBucket(ctx, l, req.BucketName); err != nil {
			l.WithError(err).Errorf("S3 bucket operation failed")

			outcome.BucketResult = false
			errs = multierror.Append(errs, err)
		}
	}

	return orchestrator.complete(l, outcome, errs), nil
}

// prepare validates the request and builds the client bundle. Validation
// failures surface before any AWS client is constructed.
func (orchestrator *Orchestrator) prepare(ctx context.Context, req *Request) (log.Logger, StateClient, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	l := orchestrator.logger.WithFields(log.Fields{
		"op_id":  uuid.NewString(),
		"region": req.Region,
	})

	client, err := orchestrator.newClient(ctx, l, req.SessionConfig())
	if err != nil {
		l.WithError(err).Errorf("Error initializing AWS clients")

		return nil, nil, errors.New(ClientInitError{Underlying: err})
	}

	return l, client, nil
}

func (orchestrator *Orchestrator) complete(l log.Logger, outcome *Outcome, errs *multierror.Error) *Outcome {
	outcome.Success = outcome.BucketResult && outcome.TableResult

	for _, err := range errs.WrappedErrors() {
		outcome.FailureReasons = append(outcome.FailureReasons, err.Error())
	}

	if outcome.Success {
		l.Infof("Operation completed successfully")
	} else {
		l.Errorf("Operation encountered errors")
	}

	return outcome
}
