// Package server wires the doctrack server together: configuration,
// logging, the PostgreSQL store, object storage and the gRPC transport.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/doctrack/internal/logging"
	"github.com/dmitrijs2005/doctrack/internal/server/auth"
	"github.com/dmitrijs2005/doctrack/internal/server/config"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/doctrack/internal/server/services"
	"github.com/dmitrijs2005/doctrack/internal/server/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/doctrack/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	authService     *services.AuthService
	userService     *services.UserService
	documentService *services.DocumentService
	signer          *auth.JWTSigner
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := storage.NewS3Storage(ctx, storage.S3Config{
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(c.PasswordHashCost)
	signer := auth.NewJWTSigner([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	authService, err := services.NewAuthService(db, rm, hasher, signer, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("auth service init error: %w", err)
	}

	app := &App{
		config:          c,
		logger:          logger,
		db:              db,
		authService:     authService,
		userService:     services.NewUserService(db, rm, hasher, logger),
		documentService: services.NewDocumentService(db, rm, store, c.StrictTransitions, logger),
		signer:          signer,
	}

	if c.AdminEmail != "" {
		if _, err := app.userService.EnsureAdmin(ctx, c.AdminEmail, c.AdminPassword); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("admin bootstrap error: %w", err)
		}
	}

	return app, nil
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

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "strict_transitions", app.config.StrictTransitions)

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
			app.authService, app.userService, app.documentService, app.signer)
		if err := s.Run(gctx); err != nil {
			app.logger.Error(gctx, "grpc server failed", "error", err)
			return err
		}
		return nil
	})

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close failed", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
