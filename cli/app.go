// Package cli defines the command-line interface for statecraft.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/devopsgroupeu/StateCraft/api"
	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/devopsgroupeu/StateCraft/internal/log"
	"github.com/devopsgroupeu/StateCraft/internal/remotestate"
	"github.com/urfave/cli/v2"
)

const (
	appName = "statecraft"

	flagRegion           = "region"
	flagBucketName       = "bucket-name"
	flagLockingMechanism = "locking-mechanism"
	flagTableName        = "table-name"
	flagLogLevel         = "log-level"
	flagLogFile          = "log-file"
	flagAddr             = "addr"

	defaultServerAddr = ":8000"

	// exit codes per surface contract: 0 success, 1 operational failure, 2 usage error
	exitCodeFailure = 1
	exitCodeUsage   = 2
)

// App is the statecraft command-line application.
type App struct {
	*cli.App

	logger  log.Logger
	logFile *os.File
}

// NewApp returns the statecraft CLI application.
func NewApp(version string) *App {
	app := &App{}

	app.App = &cli.App{
		Name:    appName,
		Usage:   "Manage the AWS resources (S3 bucket and optional DynamoDB table) backing Terraform remote state",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "Minimum log level: debug, info, warn or error.",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "Also write log output to the given file.",
			},
		},
		Before: app.setup,
		After:  app.teardown,
		Commands: []*cli.Command{
			app.resourceCommand("create", "Create the S3 bucket and optional DynamoDB lock table."),
			app.resourceCommand("delete", "Delete the DynamoDB lock table and the S3 bucket, table first."),
			app.serverCommand(),
		},
	}

	return app
}

func (app *App) errWriter() io.Writer {
	if app.App.ErrWriter != nil {
		return app.App.ErrWriter
	}

	return os.Stderr
}

// setup builds the application logger. The CLI owns the optional file sink
// lifecycle; the core only ever sees the injected logger.
func (app *App) setup(ctx *cli.Context) error {
	writers := []io.Writer{app.errWriter()}

	if logFilePath := ctx.String(flagLogFile); logFilePath != "" {
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return cli.Exit(fmt.Sprintf("unable to open log file %s: %s", logFilePath, err), exitCodeUsage)
		}

		app.logFile = logFile
		writers = append(writers, logFile)
	}

	app.logger = log.New(
		log.WithOutput(io.MultiWriter(writers...)),
		log.WithLevel(ctx.String(flagLogLevel)),
	)

	return nil
}

func (app *App) teardown(_ *cli.Context) error {
	if app.logFile != nil {
		return app.logFile.Close()
	}

	return nil
}

func (app *App) resourceCommand(action, usage string) *cli.Command {
	return &cli.Command{
		Name:  action,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagRegion,
				Usage:    "AWS region for the resources (e.g. us-east-1).",
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagBucketName,
				Usage:    "Name for the S3 bucket (must be globally unique).",
				Required: true,
			},
			&cli.StringFlag{
				Name:  flagLockingMechanism,
				Usage: "Locking mechanism: 'dynamodb' (S3 bucket + DynamoDB table) or 's3' (bucket versioning only).",
				Value: string(remotestate.LockingModeDynamoDB),
			},
			&cli.StringFlag{
				Name:  flagTableName,
				Usage: "Name for the DynamoDB table (required when the locking mechanism is 'dynamodb').",
			},
		},
		Action: func(ctx *cli.Context) error {
			return app.runResourceAction(ctx, action)
		},
	}
}

func (app *App) runResourceAction(ctx *cli.Context, action string) error {
	printBanner(ctx.App.Writer)

	req := &remotestate.Request{
		Region:      ctx.String(flagRegion),
		BucketName:  ctx.String(flagBucketName),
		LockingMode: remotestate.LockingMode(ctx.String(flagLockingMechanism)),
		TableName:   ctx.String(flagTableName),
	}

	if !req.LockingMode.RequiresLockTable() && req.TableName != "" {
		app.logger.Warnf("--%s (%q) provided but ignored because --%s is '%s'", flagTableName, req.TableName, flagLockingMechanism, req.LockingMode)
		req.TableName = ""
	}

	fmt.Fprintf(ctx.App.Writer, "  Action: %s\n  Region: %s\n  S3 Bucket: %s\n  Locking Mechanism: %s\n", action, req.Region, req.BucketName, req.LockingMode)

	if req.LockingMode.RequiresLockTable() {
		fmt.Fprintf(ctx.App.Writer, "  DynamoDB Table: %s\n", req.TableName)
	}

	orchestrator := remotestate.NewOrchestrator(app.logger)

	var (
		outcome *remotestate.Outcome
		err     error
	)

	switch action {
	case "create":
		outcome, err = orchestrator.Provision(ctx.Context, req)
	case "delete":
		outcome, err = orchestrator.Deprovision(ctx.Context, req)
	}

	if err != nil {
		var usageErr remotestate.UsageError
		if errors.As(err, &usageErr) {
			return cli.Exit(fmt.Sprintf("%s: %s", appName, usageErr), exitCodeUsage)
		}

		return cli.Exit(err.Error(), exitCodeFailure)
	}

	if !outcome.Success {
		if !outcome.BucketResult {
			fmt.Fprintln(app.errWriter(), "-> S3 bucket operation failed.")
		}

		if req.LockingMode.RequiresLockTable() && !outcome.TableResult {
			fmt.Fprintln(app.errWriter(), "-> DynamoDB table operation failed.")
		}

		return cli.Exit(fmt.Sprintf("action '%s' encountered errors", action), exitCodeFailure)
	}

	app.logger.Infof("Action '%s' completed successfully", action)

	return nil
}

func (app *App) serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run the StateCraft REST API server.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagAddr,
				Usage: "Address for the API server to listen on.",
				Value: defaultServerAddr,
			},
		},
		Action: func(ctx *cli.Context) error {
			orchestrator := remotestate.NewOrchestrator(app.logger)
			server := api.NewServer(app.logger, orchestrator,
				api.WithAddr(ctx.String(flagAddr)),
				api.WithVersion(ctx.App.Version),
			)

			ln, err := server.Listen()
			if err != nil {
				return cli.Exit(err.Error(), exitCodeFailure)
			}

			if err := server.Run(ctx.Context, ln); err != nil {
				return cli.Exit(err.Error(), exitCodeFailure)
			}

			return nil
		},
	}
}
