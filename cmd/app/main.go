package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/jobs"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger := newLogger(configs.LogLevel)
	slog.SetDefault(appLogger)

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobManager, publisher := startRelay(app, configs, appLogger)
	startWebServer(ctx, app, configs.HTTPPort, appLogger)

	if jobManager != nil {
		jobManager.StopAll()
	}
	if publisher != nil {
		if err = publisher.Close(); err != nil {
			appLogger.Warn("Closing AMQP publisher failed", "error", err)
		}
	}
}

// startRelay connects to the broker and schedules the outbox relay. Without a broker the API
// still runs and events wait in the outbox.
func startRelay(app cmd.CompositionRoot, configs cmd.Config, appLogger *slog.Logger) (*jobs.JobManager, *rabbitmq.Publisher) {
	publisher, err := rabbitmq.Dial(configs.AMQPURL, configs.AMQPExchange)
	if err != nil {
		appLogger.Error("AMQP broker unavailable, outbox relay disabled", "error", err)
		return nil, nil
	}

	jobManager, err := app.CreateJobManager(publisher)
	if err != nil {
		log.Fatalf("create job manager: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	appLogger.Info("Outbox relay started", "schedule", configs.OutboxRelaySchedule)
	return jobManager, publisher
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, appLogger *slog.Logger) {
	e, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("create http server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
