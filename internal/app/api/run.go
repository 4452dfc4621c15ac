package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	adminserver "github.com/Apurer/storefront-admin/go"

	delhiveryclient "github.com/Apurer/storefront-admin/internal/clients/http/delhivery"
	catalogmemory "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/storefront-admin/internal/domains/catalog/application"
	catalogports "github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
	contentmemory "github.com/Apurer/storefront-admin/internal/domains/content/adapters/memory"
	contentpostgres "github.com/Apurer/storefront-admin/internal/domains/content/adapters/persistence/postgres"
	contentapp "github.com/Apurer/storefront-admin/internal/domains/content/application"
	contentports "github.com/Apurer/storefront-admin/internal/domains/content/ports"
	ordersevents "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/events"
	ordersmemory "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/notify"
	ordersobs "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/storefront-admin/internal/domains/orders/application"
	ordersports "github.com/Apurer/storefront-admin/internal/domains/orders/ports"
	shipmentsdelhivery "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/external/delhivery"
	shipmentsmemory "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/memory"
	shipmentsobs "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/observability"
	shipmentspostgres "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/persistence/postgres"
	shipmentsworkflows "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/workflows"
	shipmentsapp "github.com/Apurer/storefront-admin/internal/domains/shipments/application"
	shipmentsports "github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
	warehousesdelhivery "github.com/Apurer/storefront-admin/internal/domains/warehouses/adapters/external/delhivery"
	warehousesmemory "github.com/Apurer/storefront-admin/internal/domains/warehouses/adapters/memory"
	warehousespostgres "github.com/Apurer/storefront-admin/internal/domains/warehouses/adapters/persistence/postgres"
	warehousesapp "github.com/Apurer/storefront-admin/internal/domains/warehouses/application"
	warehousesports "github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
	"github.com/Apurer/storefront-admin/internal/platform/migrations"
	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-admin/internal/platform/postgres"
	"github.com/Apurer/storefront-admin/internal/platform/storage"
)

const serviceName = "storefront-admin-api"

// Run boots the admin HTTP API with observability, repositories, carrier and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry.Settings(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
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
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	repos := BuildRepositories(db)

	publisher, closePublisher := buildPublisher(cfg.Kafka, logger)
	defer closePublisher()

	coreOrders := ordersapp.NewService(
		repos.Orders,
		ordersapp.WithNotifier(buildNotifier(cfg, logger)),
		ordersapp.WithPublisher(publisher),
		ordersapp.WithComposer(ordersapp.NewComposer(cfg.StoreName)),
		ordersapp.WithLogger(logger),
	)
	orderService := ordersobs.New(
		coreOrders,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var (
		shipmentService   shipmentsports.Service
		shipmentWorkflows shipmentsports.WorkflowOrchestrator
		warehouseOpts     []warehousesapp.Option
	)
	carrierClient, err := delhiveryclient.NewClient(cfg.Delhivery.BaseURL, cfg.Delhivery.Token, cfg.Delhivery.Timeout)
	if err != nil {
		logger.Warn("Delhivery carrier unavailable, shipment endpoints disabled", slog.String("error", err.Error()))
	} else {
		coreShipments := shipmentsapp.NewService(
			repos.Shipments,
			orderService,
			shipmentsdelhivery.NewCarrier(carrierClient),
			shipmentsapp.WithIdempotencyStore(repos.Idempotency),
			shipmentsapp.WithPickupLocation(cfg.Delhivery.PickupLocation),
			shipmentsapp.WithSellerName(cfg.StoreName),
			shipmentsapp.WithLogger(logger),
		)
		shipmentService = shipmentsobs.New(
			coreShipments,
			shipmentsobs.WithLogger(logger),
			shipmentsobs.WithTracer(instruments.Tracer("internal.shipments.application")),
			shipmentsobs.WithMeter(instruments.Meter("internal.shipments.application")),
		)
		shipmentWorkflows = shipmentsworkflows.NewInlineShipmentWorkflows(shipmentService)
		if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
			logger.Warn("Temporal workflows unavailable, running bulk shipments inline", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			shipmentWorkflows = shipmentsworkflows.NewTemporalShipmentWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
		warehouseOpts = append(warehouseOpts, warehousesapp.WithRegistrar(warehousesdelhivery.NewRegistrar(carrierClient)))
	}

	uploadAPI := buildUploadAPI(cfg.Upload, logger)

	handlers := adminserver.ApiHandleFunctions{
		OrdersAPI:     adminserver.NewOrdersAPI(orderService),
		ShipmentsAPI:  adminserver.NewShipmentsAPI(shipmentService, shipmentWorkflows),
		CatalogAPI:    adminserver.NewCatalogAPI(catalogapp.NewService(repos.Catalog)),
		WarehousesAPI: adminserver.NewWarehousesAPI(warehousesapp.NewService(repos.Warehouses, warehouseOpts...)),
		ContentAPI:    adminserver.NewContentAPI(contentapp.NewService(repos.Content)),
		UploadAPI:     uploadAPI,
	}

	router := adminserver.NewTracedRouter(serviceName, handlers, otelgin.WithTracerProvider(instruments.TracerProvider))
	server := &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Storefront admin API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Storefront admin API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Storefront admin API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// Repositories bundles the persistence adapters of every bounded context.
type Repositories struct {
	Catalog     catalogports.Repository
	Orders      ordersports.Repository
	Shipments   shipmentsports.Repository
	Idempotency shipmentsports.IdempotencyStore
	Warehouses  warehousesports.Repository
	Content     contentports.Repository
}

// BuildRepositories selects postgres adapters when a connection exists and in-memory ones otherwise.
func BuildRepositories(db *gorm.DB) Repositories {
	if db == nil {
		catalog := catalogmemory.NewRepository()
		return Repositories{
			Catalog:     catalog,
			Orders:      ordersmemory.NewRepository(catalog),
			Shipments:   shipmentsmemory.NewRepository(),
			Idempotency: shipmentsmemory.NewIdempotencyStore(),
			Warehouses:  warehousesmemory.NewRepository(),
			Content:     contentmemory.NewRepository(),
		}
	}
	stock := func(tx *gorm.DB) orderspostgres.StockWriter { return catalogpostgres.NewRepository(tx) }
	return Repositories{
		Catalog:     catalogpostgres.NewRepository(db),
		Orders:      orderspostgres.NewRepository(db, stock),
		Shipments:   shipmentspostgres.NewRepository(db),
		Idempotency: shipmentspostgres.NewIdempotencyStore(db),
		Warehouses:  warehousespostgres.NewRepository(db),
		Content:     contentpostgres.NewRepository(db),
	}
}

func buildPublisher(cfg KafkaConfig, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	if len(cfg.Brokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, order events are logged only")
		return ordersevents.NewLogPublisher(logger), func() {}
	}
	kafkaClient, err := ordersevents.NewKafkaClient(cfg.Brokers, cfg.Topic, serviceName)
	if err != nil {
		logger.Warn("failed to create Kafka client, order events are logged only", slog.String("error", err.Error()))
		return ordersevents.NewLogPublisher(logger), func() {}
	}
	logger.Info("order events published to Kafka", slog.String("topic", cfg.Topic))
	return ordersevents.NewKafkaPublisher(kafkaClient, cfg.Topic), kafkaClient.Close
}

func buildNotifier(cfg Config, logger *slog.Logger) ordersports.Notifier {
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP_HOST not set, customer emails are logged only")
		return ordersnotify.NewLogNotifier(logger)
	}
	return ordersnotify.NewSMTPNotifier(ordersnotify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.StoreName,
	})
}

func buildUploadAPI(cfg UploadConfig, logger *slog.Logger) adminserver.UploadAPI {
	opts := []storage.Option{storage.WithLogger(logger)}
	if cfg.PlaceholderURL != "" {
		opts = append(opts, storage.WithPlaceholderURL(cfg.PlaceholderURL))
	}
	if cfg.RemoteURL != "" {
		logger.Info("uploads stored remotely", slog.String("endpoint", cfg.RemoteURL))
		uploader := storage.NewUploader(storage.NewRemoteBackend(cfg.RemoteURL, cfg.RemoteToken), opts...)
		return adminserver.NewUploadAPI(uploader, "", "")
	}
	uploader := storage.NewUploader(storage.NewLocalBackend(cfg.Dir, cfg.PublicBaseURL), opts...)
	return adminserver.NewUploadAPI(uploader, cfg.Dir, cfg.PublicBaseURL)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
