package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/presale/internal/dal/postgres"
	"github.com/corray333/backend-labs/presale/internal/dal/rabbitmq"
	auditpg "github.com/corray333/backend-labs/presale/internal/dal/repositories/audit/postgres"
	auditmq "github.com/corray333/backend-labs/presale/internal/dal/repositories/audit/rabbitmq"
	settingspg "github.com/corray333/backend-labs/presale/internal/dal/repositories/settings/postgres"
	"github.com/corray333/backend-labs/presale/internal/dal/shopify"
	"github.com/corray333/backend-labs/presale/internal/otel"
	"github.com/corray333/backend-labs/presale/internal/service/services/presalesvc"
	httptransport "github.com/corray333/backend-labs/presale/internal/transport/http"
)

// App represents the application.
type App struct {
	presaleSvc     *presalesvc.PresaleService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()
	platformClient := shopify.MustNewClient()

	presaleSvc := presalesvc.MustNewPresaleService(
		presalesvc.WithPlatformGateway(platformClient),
		presalesvc.WithSettingsRepository(settingspg.NewSettingsRepository(postgresClient)),
		presalesvc.WithAuditRepository(auditpg.NewAuditRepository(postgresClient)),
		presalesvc.WithAuditPublisher(auditmq.NewAuditRabbitMQRepository(rabbitClient)),
	)

	transport := httptransport.NewHTTPTransport(presaleSvc)
	transport.RegisterRoutes()

	return &App{
		presaleSvc:     presaleSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
