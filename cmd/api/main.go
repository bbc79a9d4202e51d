package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"devevents/config"
	_ "devevents/docs"
	"devevents/internal/adapters/calendar"
	"devevents/internal/adapters/email"
	"devevents/internal/adapters/ticket"
	"devevents/internal/adapters/upload"
	httpdelivery "devevents/internal/delivery/http"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/domain"
	"devevents/internal/intake"
	mongorepo "devevents/internal/repository/mongo"
	"devevents/internal/repository/postgres"
	"devevents/internal/services"
	"devevents/internal/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// @title DevEvents API
// @version 1.0
// @description Developer event listings, event intake and bookings.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// storeHandle is the lifecycle surface shared by the connection pools.
type storeHandle interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type repositories struct {
	events   domain.EventRepository
	bookings domain.BookingRepository
	store    storeHandle
}

func openRepositories(cfg *config.Config, logger *slog.Logger) repositories {
	if cfg.DBDriver == config.DriverPostgres {
		pool := store.NewPool("postgres", func(ctx context.Context) (*sql.DB, error) {
			return postgres.Connect(ctx, cfg.DatabaseURL)
		}, postgres.Close, logger)
		return repositories{
			events:   postgres.NewEventRepository(pool),
			bookings: postgres.NewBookingRepository(pool),
			store:    pool,
		}
	}
	pool := store.NewPool("mongo", func(ctx context.Context) (*mongo.Database, error) {
		return mongorepo.Connect(ctx, cfg.MongoURI)
	}, mongorepo.Disconnect, logger)
	return repositories{
		events:   mongorepo.NewEventRepository(pool),
		bookings: mongorepo.NewBookingRepository(pool),
		store:    pool,
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos := openRepositories(cfg, logger)

	// Connect eagerly so a bad connection string shows up in the logs at boot; requests
	// still retry through the pool if this fails.
	go func() {
		ctx, cancel := context.WithTimeout(rootCtx, 15*time.Second)
		defer cancel()
		if err := repos.store.Ping(ctx); err != nil {
			logger.Warn("store not reachable yet", "driver", cfg.DBDriver, "err", err)
		}
	}()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	uploader := upload.New(cfg.PublicDir, upload.Options{
		Directory: cfg.UploadDirectory,
		MaxSizeMB: cfg.UploadMaxSizeMB,
	})

	eventService := services.NewEventService(repos.events, logger, cfg.ServiceTimeout)
	bookingService := services.NewBookingService(
		repos.events,
		repos.bookings,
		ticket.NewJWTIssuer(cfg.TicketSecret, cfg.TicketTTL),
		emailService,
		logger,
		cfg.PublicBaseURL,
		cfg.ServiceTimeout,
	)

	router := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService, intake.NewParser(uploader), calendar.NewExporter(cfg.PublicBaseURL), cfg.MaxFormBytes),
		controllers.NewBookingController(logger, bookingService),
		controllers.NewHealthController(logger, repos.store),
		filepath.Join(cfg.PublicDir, "images"),
	)
	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.RequestID(
			middleware.LoggingMiddleware(logger, router),
		),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	if err := repos.store.Close(shutdownCtx); err != nil {
		logger.Error("close store", "err", err)
	}
	logger.Info("bye")
	return nil
}
