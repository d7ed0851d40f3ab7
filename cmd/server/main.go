// @title         taskverse API
// @version       1.0
// @description   Multi-tenant task tracker: users, tasks with owners and assignees, admin analytics.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/taskverse/docs"

	// internal imports
	apihttp "github.com/artem13815/taskverse/api/http"
	"github.com/artem13815/taskverse/api/http/handlers"
	"github.com/artem13815/taskverse/pkg/analytics"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/config"
	"github.com/artem13815/taskverse/pkg/health"
	healthpg "github.com/artem13815/taskverse/pkg/health/checkers"
	"github.com/artem13815/taskverse/pkg/logger"
	"github.com/artem13815/taskverse/pkg/repository/memory"
	pgrepo "github.com/artem13815/taskverse/pkg/repository/postgres"
	"github.com/artem13815/taskverse/pkg/security/jwt"
	"github.com/artem13815/taskverse/pkg/security/password"
	"github.com/artem13815/taskverse/pkg/storage/postgres"
	"github.com/artem13815/taskverse/pkg/task"
	"github.com/artem13815/taskverse/pkg/users"
)

const shutdownTimeout = 10 * time.Second

// repositories is the storage backend selected by STORAGE.
type repositories struct {
	users     auth.UserRepository
	tasks     task.Repository
	analytics analytics.Repository
	checkers  []health.Checker
	close     func()
}

func openStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (repositories, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:     store.Users(),
			tasks:     store.Tasks(),
			analytics: store.Analytics(),
			checkers:  []health.Checker{store},
			close:     func() {},
		}, nil
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return repositories{}, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return repositories{}, err
	}
	log.Info("postgres ready, migrations applied")
	return repositories{
		users:     pgrepo.NewUserRepository(pool),
		tasks:     pgrepo.NewTaskRepository(pool),
		analytics: pgrepo.NewAnalyticsRepository(pool),
		checkers:  []health.Checker{healthpg.NewPostgresChecker(pool)},
		close:     pool.Close,
	}, nil
}

func main() {
	// Load configuration from env/.env
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	log.Info("starting taskverse", "env", cfg.Env, "storage", cfg.Storage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}
	defer repos.close()

	// Wire dependencies (Clean Architecture)
	hasher := password.NewHasher(cfg.BcryptCost)
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	resolver := auth.NewResolver(repos.users, tokens)

	if _, err := auth.SeedAdmin(ctx, repos.users, hasher, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password, log); err != nil {
		log.Error("seed admin", "error", err)
		os.Exit(1)
	}

	authHandler := handlers.NewAuthHandler(auth.NewAuthService(repos.users, hasher, tokens))
	healthHandler := handlers.NewHealthHandler(health.NewService(repos.checkers...))
	taskHandler := handlers.NewTaskHandler(task.NewService(repos.tasks, resolver))
	analyticsHandler := handlers.NewAnalyticsHandler(analytics.NewService(repos.analytics))
	usersHandler := handlers.NewUsersHandler(users.NewService(repos.users))

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(resolver, log)

	app := apihttp.NewApp(log, cfg.CORSOrigins, cfg.Env != config.EnvProd)
	apihttp.Register(app, authHandler, healthHandler, taskHandler, analyticsHandler, usersHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	// Start server
	log.Info("HTTP server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
