// Package server wires configuration, storage, services and transports
// together and runs the HTTP and gRPC endpoints until a shutdown signal.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/hotelbook/internal/cryptox"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/auth"
	"github.com/dmitrijs2005/hotelbook/internal/server/config"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"

	gs "github.com/dmitrijs2005/hotelbook/internal/server/grpc"
	hs "github.com/dmitrijs2005/hotelbook/internal/server/http"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
}

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.New

// notifyContext is a seam for tests.
var notifyContext = signal.NotifyContext

// NewApp validates c, opens storage, runs migrations and builds the services.
// It refuses to start without a signing secret.
func NewApp(ctx context.Context, c *config.Config, logOutput io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(c.LogBackend, logOutput)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewPasswordHasher(c.PasswordHashAlgorithm, c.PasswordHashCost)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager([]byte(c.SecretKey), c.TokenValidityDuration)
	if err != nil {
		return nil, err
	}

	rm, err := newRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, using in-memory credential store")
	}

	us := services.NewUserService(rm.Users(), hasher, tokens, logger.With("module", "user_service"))

	return &App{config: c, logger: logger, repos: rm, userService: us}, nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	handler := hs.NewRouter(app.userService, app.logger.With("module", "http_server"), app.config.CORSAllowedOrigins)
	s := hs.NewHTTPServer(app.config.EndpointAddrHTTP, handler, app.logger, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a shutdown signal arrives. A failing
// endpoint stops the other one; the first failure is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := notifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(start func(context.Context, context.CancelFunc) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := start(ctx, cancelFunc); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run(app.startHTTPServer)
	if app.config.EndpointAddrGRPC != "" {
		run(app.startGRPCServer)
	}

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
