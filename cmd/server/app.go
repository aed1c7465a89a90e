package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-tracker/internal/api"
	"github.com/phrazzld/task-tracker/internal/config"
	"github.com/phrazzld/task-tracker/internal/platform/postgres"
	"github.com/phrazzld/task-tracker/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	services api.Services
}

// newApplication wires stores and services over an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	users := postgres.NewPostgresUserStore(db, logger)
	statuses := postgres.NewPostgresTaskStatusStore(db, logger)
	labels := postgres.NewPostgresLabelStore(db, logger)
	tasks := postgres.NewPostgresTaskStore(db, logger)

	var err error
	app.services.Users, err = service.NewUserService(db, users, service.NewBcryptHasher(bcrypt.DefaultCost), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.services.TaskStatuses, err = service.NewTaskStatusService(db, statuses, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task status service: %w", err)
	}

	app.services.Labels, err = service.NewLabelService(db, labels, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create label service: %w", err)
	}

	app.services.Tasks, err = service.NewTaskService(db, tasks, statuses, users, labels, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupRouter builds the HTTP handler tree.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(app.services, app.db, app.logger)
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
