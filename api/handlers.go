package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/devopsgroupeu/StateCraft/internal/remotestate"
	"github.com/labstack/echo/v4"
)

// operation is the orchestrator entry point a resource endpoint runs.
type operation func(ctx context.Context, req *remotestate.Request) (*remotestate.Outcome, error)

func (server *Server) healthAction(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Version: server.version,
	})
}

func (server *Server) createAction(ctx echo.Context) error {
	return server.resourceAction(ctx, "creation", server.provisioner.Provision)
}

func (server *Server) deleteAction(ctx echo.Context) error {
	return server.resourceAction(ctx, "deletion", server.provisioner.Deprovision)
}

func (server *Server) resourceAction(ctx echo.Context, action string, run operation) error {
	var body ResourceRequest
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := body.ToRequest()

	outcome, err := run(ctx.Request().Context(), req)
	if err != nil {
		var usageErr remotestate.UsageError
		if errors.As(err, &usageErr) {
			return echo.NewHTTPError(http.StatusBadRequest, usageErr.Error())
		}

		server.logger.WithError(err).Errorf("Failed to initialize AWS clients")

		return echo.NewHTTPError(http.StatusInternalServerError, "failed to initialize AWS clients, check AWS credentials configuration")
	}

	if !outcome.Success {
		details := map[string]string{}
		if !outcome.BucketResult {
			details["s3_bucket"] = "failed"
		}

		if req.LockingMode.RequiresLockTable() && !outcome.TableResult {
			details["dynamodb_table"] = "failed"
		}

		return ctx.JSON(http.StatusInternalServerError, FailureResponse{
			Message: fmt.Sprintf("resource %s failed", action),
			Details: details,
		})
	}

	responseDetails := map[string]any{
		"bucket_name":       req.BucketName,
		"locking_mechanism": string(req.LockingMode),
	}
	if req.LockingMode.RequiresLockTable() {
		responseDetails["table_name"] = req.TableName
	}

	return ctx.JSON(http.StatusOK, ResourceResponse{
		Success: true,
		Message: fmt.Sprintf("resource %s succeeded in %s", action, req.Region),
		Details: responseDetails,
	})
}
