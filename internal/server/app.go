// Package server initializes and runs the admin service: it opens the
// database, applies migrations, builds the service layer, and starts the
// HTTP API with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avolkov/tourneyadmin/internal/logging"
	"github.com/avolkov/tourneyadmin/internal/server/config"
	"github.com/avolkov/tourneyadmin/internal/server/httpapi"
	"github.com/avolkov/tourneyadmin/internal/server/repositories/repomanager"
	"github.com/avolkov/tourneyadmin/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	authSvc := services.NewAuthService(m.Users(db), cfg)
	usersSvc := services.NewUsersService(db, m)
	playersSvc := services.NewPlayersService(m.Players(db))

	httpServer := httpapi.NewServer(cfg, logger, authSvc, usersSvc, playersSvc)

	return &App{config: cfg, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
