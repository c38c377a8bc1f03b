package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/jeremyjsx/dashboard/internal/cache"
	"github.com/jeremyjsx/dashboard/internal/config"
	"github.com/jeremyjsx/dashboard/internal/database"
	"github.com/jeremyjsx/dashboard/internal/events"
	"github.com/jeremyjsx/dashboard/internal/handlers"
	"github.com/jeremyjsx/dashboard/internal/invoices"
	"github.com/jeremyjsx/dashboard/internal/logging"
	"github.com/jeremyjsx/dashboard/internal/posts"
	"github.com/jeremyjsx/dashboard/internal/storage"
	"github.com/jeremyjsx/dashboard/internal/users"
)

func main() {
	if err := run(); err != nil {
		slog.Error("dashboard stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	files, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rmq.Close()
		publisher = rmq
	} else {
		logger.Info("RABBITMQ_URL not set, post events are not published")
	}

	registry := cache.NewRegistry(logger)
	store := posts.NewSQLStore(db)
	userRepo := users.NewRepository(db)

	postSvc := posts.NewService(store, registry, publisher, logger, cfg.CacheTTL)
	workflow := posts.NewWorkflow(store, userRepo, files, registry, publisher, logger)
	invoiceSvc := invoices.NewService(invoices.NewRepository(db), registry, logger, cfg.CacheTTL)

	router := handlers.NewRouter(handlers.RouterDeps{
		Health:   &handlers.HealthDeps{DB: db, Storage: files, RabbitMQURL: cfg.RabbitMQURL},
		Posts:    handlers.NewPostsHandler(postSvc, workflow, files, cfg.MaxUploadBytes, logger),
		Invoices: handlers.NewInvoicesHandler(invoiceSvc, logger),
		Users:    userRepo,
		APIKey:   cfg.APIKey,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("dashboard: server started", "port", cfg.Port, "driver", cfg.DatabaseDriver, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "fs" {
		return storage.NewFSStorage(cfg.RootDir)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return storage.NewS3Storage(client, cfg.S3Bucket), nil
}
