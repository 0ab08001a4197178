// Package api exposes the provisioning core as a REST service.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/devopsgroupeu/StateCraft/internal/log"
	"github.com/devopsgroupeu/StateCraft/internal/remotestate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName = "StateCraft API"

	defaultAddr            = ":8000"
	defaultShutdownTimeout = 10 * time.Second
)

// Provisioner is the part of the orchestrator the HTTP handlers consume.
type Provisioner interface {
	Provision(ctx context.Context, req *remotestate.Request) (*remotestate.Outcome, error)
	Deprovision(ctx context.Context, req *remotestate.Request) (*remotestate.Outcome, error)
}

// Server is the StateCraft REST API server.
type Server struct {
	*echo.Echo

	logger          log.Logger
	provisioner     Provisioner
	addr            string
	version         string
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(server *Server) {
		server.addr = addr
	}
}

// WithVersion sets the version reported by the health endpoints.
func WithVersion(version string) Option {
	return func(server *Server) {
		server.version = version
	}
}

// NewServer returns a Server routing requests to the given provisioner.
func NewServer(l log.Logger, provisioner Provisioner, opts ...Option) *Server {
	server := &Server{
		Echo:            echo.New(),
		logger:          l,
		provisioner:     provisioner,
		addr:            defaultAddr,
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(server)
	}

	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(server.requestLogger())

	server.GET("/", server.healthAction)
	server.GET("/health", server.healthAction)
	server.POST("/resources/create", server.createAction)
	server.POST("/resources/delete", server.deleteAction)

	return server
}

// Listen opens the listening socket on the configured address.
func (server *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", server.addr)
	if err != nil {
		return nil, errors.Errorf("error listening on %s: %w", server.addr, err)
	}

	server.Echo.Server.Addr = ln.Addr().String()
	server.logger.Infof("%s is listening on %s", serviceName, ln.Addr())

	return ln, nil
}

// Run serves requests until the context is canceled, then shuts down
// gracefully within the shutdown timeout.
func (server *Server) Run(ctx context.Context, ln net.Listener) error {
	errGroup, ctx := errgroup.WithContext(ctx)

	errGroup.Go(func() error {
		<-ctx.Done()
		server.logger.Infof("Shutting down %s...", serviceName)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.New(err)
		}

		return nil
	})

	if err := server.Echo.Server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return errors.Errorf("error running %s: %w", serviceName, err)
	}

	defer server.logger.Infof("%s stopped", serviceName)

	return errGroup.Wait()
}

func (server *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			server.logger.WithFields(log.Fields{
				"method":   ctx.Request().Method,
				"uri":      ctx.Request().RequestURI,
				"status":   ctx.Response().Status,
				"duration": time.Since(start).String(),
			}).Infof("Handled request")

			return err
		}
	}
}
