package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devopsgroupeu/StateCraft/api"
	"github.com/devopsgroupeu/StateCraft/internal/log"
	"github.com/devopsgroupeu/StateCraft/internal/remotestate"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvisioner returns canned outcomes and records the requests it saw.
type fakeProvisioner struct {
	provisionOutcome   *remotestate.Outcome
	provisionErr       error
	deprovisionOutcome *remotestate.Outcome
	deprovisionErr     error

	requests []*remotestate.Request
}

func (f *fakeProvisioner) Provision(_ context.Context, req *remotestate.Request) (*remotestate.Outcome, error) {
	f.requests = append(f.requests, req)

	if f.provisionErr != nil {
		return nil, f.provisionErr
	}

	return f.provisionOutcome, nil
}

func (f *fakeProvisioner) Deprovision(_ context.Context, req *remotestate.Request) (*remotestate.Outcome, error) {
	f.requests = append(f.requests, req)

	if f.deprovisionErr != nil {
		return nil, f.deprovisionErr
	}

	return f.deprovisionOutcome, nil
}

func newTestServer(provisioner api.Provisioner) *api.Server {
	return api.NewServer(log.New(log.WithOutput(io.Discard)), provisioner, api.WithVersion("test"))
}

func doJSON(server *api.Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	return rec
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	server := newTestServer(&fakeProvisioner{})

	for _, path := range []string{"/", "/health"} {
		rec := doJSON(server, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "StateCraft API", body["service"])
	}
}

func TestCreateResourcesSuccess(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		provisionOutcome: &remotestate.Outcome{Success: true, BucketResult: true, TableResult: true},
	}
	server := newTestServer(fake)

	rec := doJSON(server, http.MethodPost, "/resources/create",
		`{"region":"eu-west-1","bucket_name":"my-state","locking_mechanism":"dynamodb","table_name":"my-locks"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "my-state", details["bucket_name"])
	assert.Equal(t, "my-locks", details["table_name"])

	require.Len(t, fake.requests, 1)
	assert.Equal(t, remotestate.LockingModeDynamoDB, fake.requests[0].LockingMode)
}

func TestCreateResourcesDefaultsToDynamoDBLocking(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		provisionOutcome: &remotestate.Outcome{Success: true, BucketResult: true, TableResult: true},
	}
	server := newTestServer(fake)

	doJSON(server, http.MethodPost, "/resources/create",
		`{"region":"eu-west-1","bucket_name":"my-state","table_name":"my-locks"}`)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, remotestate.LockingModeDynamoDB, fake.requests[0].LockingMode)
}

func TestCreateResourcesValidationFailureReturns400(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		provisionErr: remotestate.UsageError("table name is required when the locking mechanism is 'dynamodb'"),
	}
	server := newTestServer(fake)

	rec := doJSON(server, http.MethodPost, "/resources/create",
		`{"region":"eu-west-1","bucket_name":"my-state"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "table name is required")
}

func TestCreateResourcesOperationalFailureReturns500(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		provisionOutcome: &remotestate.Outcome{
			Success:        false,
			BucketResult:   false,
			TableResult:    true,
			FailureReasons: []string{"bucket name my-state already exists"},
		},
	}
	server := newTestServer(fake)

	rec := doJSON(server, http.MethodPost, "/resources/create",
		`{"region":"eu-west-1","bucket_name":"my-state","table_name":"my-locks"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "failed", details["s3_bucket"])
	assert.NotContains(t, details, "dynamodb_table")
}

func TestDeleteResourcesTableFailureReturns500(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		deprovisionOutcome: &remotestate.Outcome{
			Success:      false,
			BucketResult: false,
			TableResult:  false,
			FailureReasons: []string{
				"error deleting lock table my-locks",
				"skipped deletion of S3 bucket my-state because the lock table could not be deleted",
			},
		},
	}
	server := newTestServer(fake)

	rec := doJSON(server, http.MethodPost, "/resources/delete",
		`{"region":"eu-west-1","bucket_name":"my-state","table_name":"my-locks"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "failed", details["dynamodb_table"])
	assert.Equal(t, "failed", details["s3_bucket"])
}

func TestClientInitFailureReturns500(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		provisionErr: remotestate.ClientInitError{Underlying: context.DeadlineExceeded},
	}
	server := newTestServer(fake)

	rec := doJSON(server, http.MethodPost, "/resources/create",
		`{"region":"eu-west-1","bucket_name":"my-state","table_name":"my-locks"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to initialize AWS clients")
}

func TestCredentialsAreNeverEchoedBack(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		provisionOutcome: &remotestate.Outcome{Success: true, BucketResult: true, TableResult: true},
	}
	server := newTestServer(fake)

	rec := doJSON(server, http.MethodPost, "/resources/create",
		`{"region":"eu-west-1","bucket_name":"my-state","table_name":"my-locks","aws_access_key_id":"AKIAEXAMPLE","aws_secret_access_key":"supersecret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "AKIAEXAMPLE")
	assert.NotContains(t, rec.Body.String(), "supersecret")

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "AKIAEXAMPLE", fake.requests[0].AccessKeyID)
}

func TestInvalidJSONReturns400(t *testing.T) {
	t.Parallel()

	server := newTestServer(&fakeProvisioner{})

	rec := doJSON(server, http.MethodPost, "/resources/create", `{"region":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestS3ModeIgnoresTableName(t *testing.T) {
	t.Parallel()

	fake := &fakeProvisioner{
		provisionOutcome: &remotestate.Outcome{Success: true, BucketResult: true, TableResult: true},
	}
	server := newTestServer(fake)

	doJSON(server, http.MethodPost, "/resources/create",
		`{"region":"eu-west-1","bucket_name":"my-state","locking_mechanism":"s3","table_name":"ignored"}`)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, remotestate.LockingModeS3, fake.requests[0].LockingMode)
	assert.Empty(t, fake.requests[0].TableName)
}
