// rentx is the rental marketplace HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"rentx/internal/rentx/adapters/cache"
	httpServer "rentx/internal/rentx/adapters/http"
	pgadapters "rentx/internal/rentx/adapters/postgres"
	"rentx/internal/rentx/adapters/services"
	"rentx/internal/rentx/adapters/storage"
	"rentx/internal/rentx/app"
	"rentx/internal/rentx/config"
	portstorage "rentx/internal/rentx/ports/storage"
	"rentx/pkg/db/postgres"
	"rentx/pkg/logger"
	"rentx/pkg/shutdown"
)

// Environment variable names read before configuration is loaded.
const (
	EnvLoggerMode  = "RENTX_LOGGER_MODE"
	EnvLoggerLevel = "RENTX_LOGGER_LEVEL"
)

// Error messages.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrRunMigrations        = "failed to run database migrations"
	ErrConnectDatabase      = "failed to connect to database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrCreateImageStorage   = "failed to create image storage"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrExternalSync         = "external wishlist sync stopped with error"
)

// Ignorable sync errors on standard streams.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Service log messages.
const (
	LogServiceStarted      = "rentx service started"
	LogServiceShutdownDone = "rentx service shutdown complete"
	LogRunningMigrations   = "running database migrations"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogInitImageStorage    = "initializing image storage"
	LogImageStorageOff     = "image storage not configured, presigned uploads disabled"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogRunningMigrations)
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrRunMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitDatabase)
		database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		var imageStorage *storage.S3ImageStorage
		if cfg.S3.AccessKey != "" {
			log.Info(ctx, LogInitImageStorage)
			imageStorage, err = storage.NewS3ImageStorage(ctx, &cfg.S3)
			if err != nil {
				log.Error(ctx, ErrCreateImageStorage, zap.Error(err))
				exitCode = 1
				return
			}
		} else {
			log.Info(ctx, LogImageStorageOff)
		}

		log.Info(ctx, LogInitUseCases)
		userRepo := pgadapters.NewUserRepository(database.Pool())
		productRepo := pgadapters.NewProductRepository(database.Pool())
		wishlistRepo := pgadapters.NewWishlistRepository(database.Pool())
		tokenRepo := pgadapters.NewTokenRepository(database.Pool())

		passwordService := services.NewBcrypt(cfg.JWT.BCryptCost)
		tokenService := services.NewJWT(cfg.JWT.SecretKey, cfg.JWT.GetAccessTokenTTL(), cfg.JWT.GetRefreshTokenTTL())

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordService, tokenService)
		catalogUseCase := app.NewCatalogUseCase(productRepo, userRepo, redisCache, nil)
		profileUseCase := app.NewProfileUseCase(userRepo)
		wishlistUseCase := app.NewWishlistUseCase(wishlistRepo, userRepo, productRepo, redisCache)

		syncCtx, stopSync := context.WithCancel(ctx)
		go func() {
			if err := wishlistUseCase.RunExternalSync(syncCtx); err != nil {
				log.Error(ctx, ErrExternalSync, zap.Error(err))
			}
		}()

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		var images portstorage.ImageStorage
		if imageStorage != nil {
			images = imageStorage
		}
		httpServer.SetupRouter(fiberApp, authUseCase, catalogUseCase, profileUseCase, wishlistUseCase, tokenService, images)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				stopSync()
				return fiberApp.Shutdown()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisCache.Close()
			},
			func(shutdownCtx context.Context) error {
				log.Info(shutdownCtx, LogClosingDatabase)
				database.Close(shutdownCtx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
