package api

import "github.com/devopsgroupeu/StateCraft/internal/remotestate"

// ResourceRequest is the JSON body of the create and delete endpoints.
// Credential fields are optional and fall back to the ambient AWS chain;
// they are never logged or echoed back.
type ResourceRequest struct {
	Region           string `json:"region"`
	BucketName       string `json:"bucket_name"`
	LockingMechanism string `json:"locking_mechanism"`
	TableName        string `json:"table_name"`
	AccessKeyID      string `json:"aws_access_key_id"`
	SecretAccessKey  string `json:"aws_secret_access_key"`
}

// ToRequest converts the HTTP payload into a core request. An empty locking
// mechanism defaults to DynamoDB, matching the CLI default.
func (req *ResourceRequest) ToRequest() *remotestate.Request {
	lockingMode := remotestate.LockingMode(req.LockingMechanism)
	if req.LockingMechanism == "" {
		lockingMode = remotestate.LockingModeDynamoDB
	}

	tableName := req.TableName
	if !lockingMode.RequiresLockTable() {
		tableName = ""
	}

	return &remotestate.Request{
		Region:          req.Region,
		BucketName:      req.BucketName,
		LockingMode:     lockingMode,
		TableName:       tableName,
		AccessKeyID:     req.AccessKeyID,
		SecretAccessKey: req.SecretAccessKey,
	}
}

// ResourceResponse is the JSON body returned on success.
type ResourceResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// FailureResponse is the JSON body returned on operational failure. Details
// names each failed sub-resource.
type FailureResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// HealthResponse is the JSON body of the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}
