package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/storefront-admin/internal/app/api"
	delhiveryclient "github.com/Apurer/storefront-admin/internal/clients/http/delhivery"
	ordersapp "github.com/Apurer/storefront-admin/internal/domains/orders/application"
	shipmentsdelhivery "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/external/delhivery"
	shipmentsobs "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/observability"
	shipmentsapp "github.com/Apurer/storefront-admin/internal/domains/shipments/application"
	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-admin/internal/platform/postgres"
	shipmentactivities "github.com/Apurer/storefront-admin/internal/platform/temporal/activities/shipments"
	shipmentworkflows "github.com/Apurer/storefront-admin/internal/platform/temporal/workflows/shipments"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-admin-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry.Settings(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db == nil {
		logger.Warn("worker running with in-memory repositories; shipments will not be visible to the API")
	}
	repos := api.BuildRepositories(db)

	carrierClient, err := delhiveryclient.NewClient(cfg.Delhivery.BaseURL, cfg.Delhivery.Token, cfg.Delhivery.Timeout)
	if err != nil {
		logger.Error("failed to configure Delhivery client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	orderService := ordersapp.NewService(repos.Orders, ordersapp.WithLogger(logger))
	shipmentService := shipmentsobs.New(
		shipmentsapp.NewService(
			repos.Shipments,
			orderService,
			shipmentsdelhivery.NewCarrier(carrierClient),
			shipmentsapp.WithIdempotencyStore(repos.Idempotency),
			shipmentsapp.WithPickupLocation(cfg.Delhivery.PickupLocation),
			shipmentsapp.WithSellerName(cfg.StoreName),
			shipmentsapp.WithLogger(logger),
		),
		shipmentsobs.WithLogger(logger),
		shipmentsobs.WithTracer(instruments.Tracer("internal.shipments.application")),
		shipmentsobs.WithMeter(instruments.Meter("internal.shipments.application")),
	)
	activities := shipmentactivities.NewActivities(shipmentService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, shipmentworkflows.BulkShipmentTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(shipmentworkflows.BulkShipmentWorkflow, workflow.RegisterOptions{Name: shipmentworkflows.BulkShipmentWorkflowName})
	w.RegisterActivityWithOptions(activities.CreateShipment, activity.RegisterOptions{Name: shipmentactivities.CreateShipmentActivityName})

	logger.Info("worker listening", slog.String("taskQueue", shipmentworkflows.BulkShipmentTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
