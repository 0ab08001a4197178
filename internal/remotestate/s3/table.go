package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/devopsgroupeu/StateCraft/internal/log"
)

const (
	// AttrLockID is the name of the primary key for the lock table.
	// OpenTofu/Terraform requires the DynamoDB table to have a primary key with this name.
	AttrLockID = "LockID"

	// SleepBetweenTableStatusChecks is the poll interval for both table state waiters.
	SleepBetweenTableStatusChecks = 5 * time.Second

	// MaxRetriesWaitingForTableState bounds both table state waiters.
	MaxRetriesWaitingForTableState = 20
)

// CreateLockTable creates the lock table in DynamoDB with a single string
// hash key and on-demand billing, then waits until it is in "active" state.
// If the table already exists, it merely waits for the active state; the
// existing table's schema is not verified.
func (client *Client) CreateLockTable(ctx context.Context, l log.Logger, tableName string) error {
	l.Infof("Attempting to create DynamoDB lock table %s", tableName)

	input := &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: dynamodbtypes.BillingModePayPerRequest,
		AttributeDefinitions: []dynamodbtypes.AttributeDefinition{
			{AttributeName: aws.String(AttrLockID), AttributeType: dynamodbtypes.ScalarAttributeTypeS},
		},
		KeySchema: []dynamodbtypes.KeySchemaElement{
			{AttributeName: aws.String(AttrLockID), KeyType: dynamodbtypes.KeyTypeHash},
		},
	}

	if _, err := client.DynamoDB.CreateTable(ctx, input); err != nil {
		var inUse *dynamodbtypes.ResourceInUseException
		if errors.As(err, &inUse) {
			l.Warnf("Lock table %s already exists, skipping creation", tableName)
		} else {
			return errors.Errorf("error creating lock table %s: %w", tableName, err)
		}
	}

	l.Infof("Waiting for table %s to become active", tableName)

	if err := client.WaitForTableToBeActive(ctx, l, tableName, MaxRetriesWaitingForTableState, SleepBetweenTableStatusChecks); err != nil {
		return err
	}

	l.Infof("DynamoDB lock table %s created successfully", tableName)

	return nil
}

// DeleteLockTable deletes the given lock table and waits until DynamoDB
// confirms it no longer exists. A table that does not exist is treated as
// success.
func (client *Client) DeleteLockTable(ctx context.Context, l log.Logger, tableName string) error {
	l.Infof("Attempting to delete DynamoDB lock table %s", tableName)

	if _, err := client.DynamoDB.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(tableName)}); err != nil {
		var notFound *dynamodbtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			l.Warnf("Lock table %s does not exist, skipping deletion", tableName)
			return nil
		}

		return errors.Errorf("error deleting lock table %s: %w", tableName, err)
	}

	l.Infof("Waiting for table %s to be deleted", tableName)

	if err := client.WaitForTableToBeDeleted(ctx, l, tableName, MaxRetriesWaitingForTableState, SleepBetweenTableStatusChecks); err != nil {
		return err
	}

	l.Infof("DynamoDB lock table %s deleted successfully", tableName)

	return nil
}

// DoesLockTableExistAndIsActive returns true if the lock table exists and is
// in "active" state.
func (client *Client) DoesLockTableExistAndIsActive(ctx context.Context, tableName string) (bool, error) {
	output, err := client.DynamoDB.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)})
	if err != nil {
		var notFound *dynamodbtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}

		return false, errors.Errorf("error describing lock table %s: %w", tableName, err)
	}

	return output.Table.TableStatus == dynamodbtypes.TableStatusActive, nil
}

// DoesLockTableExist returns true if the lock table exists in any state.
func (client *Client) DoesLockTableExist(ctx context.Context, tableName string) (bool, error) {
	if _, err := client.DynamoDB.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}); err != nil {
		var notFound *dynamodbtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}

		return false, errors.Errorf("error describing lock table %s: %w", tableName, err)
	}

	return true, nil
}

// WaitForTableToBeActive polls the table status until it is "active",
// sleeping sleepBetweenRetries between checks, up to maxRetries attempts.
func (client *Client) WaitForTableToBeActive(ctx context.Context, l log.Logger, tableName string, maxRetries int, sleepBetweenRetries time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		tableReady, err := client.DoesLockTableExistAndIsActive(ctx, tableName)
		if err != nil {
			return err
		}

		if tableReady {
			l.Debugf("Table %s is now in active state", tableName)
			return nil
		}

		l.Debugf("Table %s is not yet in active state. Will check again after %s.", tableName, sleepBetweenRetries)
		time.Sleep(sleepBetweenRetries)
	}

	return errors.New(TableActiveRetriesExceeded{TableName: tableName, Retries: maxRetries})
}

// WaitForTableToBeDeleted polls the table until DynamoDB reports it no
// longer exists, sleeping sleepBetweenRetries between checks, up to
// maxRetries attempts.
func (client *Client) WaitForTableToBeDeleted(ctx context.Context, l log.Logger, tableName string, maxRetries int, sleepBetweenRetries time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		exists, err := client.DoesLockTableExist(ctx, tableName)
		if err != nil {
			return err
		}

		if !exists {
			l.Debugf("Table %s is deleted", tableName)
			return nil
		}

		l.Debugf("Table %s still exists. Will check again after %s.", tableName, sleepBetweenRetries)
		time.Sleep(sleepBetweenRetries)
	}

	return errors.New(TableDeleteRetriesExceeded{TableName: tableName, Retries: maxRetries})
}
