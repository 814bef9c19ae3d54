// Package server wires the application together: configuration, storage,
// the auth facade, and both transports, with graceful shutdown on signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/smelnikov/authsvc/internal/logging"
	"github.com/smelnikov/authsvc/internal/server/auth"
	"github.com/smelnikov/authsvc/internal/server/bus"
	"github.com/smelnikov/authsvc/internal/server/config"
	"github.com/smelnikov/authsvc/internal/server/db"
	"github.com/smelnikov/authsvc/internal/server/repositories/users"
	"github.com/smelnikov/authsvc/internal/server/services"

	gs "github.com/smelnikov/authsvc/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService *services.AuthService
	closeDB     func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conn, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := db.RunMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	repo := users.NewPostgresRepository(conn)
	issuer := auth.NewTokenIssuer(cfg.SigningSecret, cfg.TokenTTL)
	svc := services.NewAuthService(repo, issuer, logger)

	return &App{config: cfg, logger: logger, authService: svc, closeDB: conn.Close}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.Addr(), app.logger, app.authService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBusResponder(ctx context.Context, cancelFunc context.CancelFunc) {

	r := bus.NewResponder(app.config.MessageBusEndpoints, app.logger, app.authService)

	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run starts both transports and blocks until a signal arrives or one of
// them fails, then waits for the other to shut down.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startBusResponder(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.closeDB(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}

	app.logger.Info(ctx, "App stopped")
}
