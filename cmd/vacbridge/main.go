// vacbridge - Robot Vacuum MQTT Bridge
//
// This is the main entry point for the vacbridge service. It bridges a
// vendor's cloud-connected robot vacuums into a cluster/attribute model
// published over MQTT, so a smart-home framework can treat them like any
// other local device:
//   - Polls the vendor cloud API for device status
//   - Publishes cluster attributes (retained) and events (not retained)
//   - Forwards framework commands to the cloud with acknowledgements
//   - Records run history and telemetry
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/vacbridge/migrations"

	"github.com/nerrad567/vacbridge/internal/api"
	"github.com/nerrad567/vacbridge/internal/bridge"
	"github.com/nerrad567/vacbridge/internal/cloud"
	"github.com/nerrad567/vacbridge/internal/device"
	"github.com/nerrad567/vacbridge/internal/infrastructure/config"
	"github.com/nerrad567/vacbridge/internal/infrastructure/database"
	"github.com/nerrad567/vacbridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/vacbridge/internal/infrastructure/logging"
	"github.com/nerrad567/vacbridge/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting vacbridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise vacuum registry and run history
	vacuumRepo := device.NewSQLiteRepository(db.DB)
	vacuumRegistry := device.NewRegistry(vacuumRepo)
	vacuumRegistry.SetLogger(log)

	if refreshErr := vacuumRegistry.RefreshCache(ctx); refreshErr != nil {
		return fmt.Errorf("loading vacuum registry: %w", refreshErr)
	}
	log.Info("vacuum registry initialised", "vacuums", vacuumRegistry.Count())

	runRepo := device.NewSQLiteRunHistoryRepository(db.DB)

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Set up MQTT logging callbacks
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		// Set up InfluxDB error callback
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start the vacuum bridge
	vacBridge, err := startBridge(ctx, cfg, vacuumRegistry, runRepo, influxClient, mqttClient, log)
	if err != nil {
		return fmt.Errorf("starting bridge: %w", err)
	}
	defer func() {
		log.Info("stopping bridge")
		vacBridge.Stop()
	}()

	// Start the API server
	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Registry: vacuumRegistry,
		Runs:     runRepo,
		MQTT:     mqttClient,
		DB:       db,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. Bridge
	// 3. InfluxDB (if enabled)
	// 4. MQTT
	// 5. Database

	log.Info("vacbridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses VACBRIDGE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("VACBRIDGE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	// Bridge health is verified during Start() - it discovers devices and
	// sets up MQTT subscriptions before returning successfully.

	return nil
}

// startBridge initialises and starts the vacuum bridge.
//
// Parameters:
//   - ctx: Context for discovery/cancellation
//   - cfg: Application configuration
//   - registry: Vacuum registry for persistence
//   - runs: Run history repository
//   - influxClient: Telemetry writer (may be nil if disabled)
//   - mqttClient: MQTT client for publishing/subscribing
//   - log: Logger instance
//
// Returns:
//   - *bridge.Bridge: Running bridge
//   - error: If the bridge fails to start
func startBridge(
	ctx context.Context,
	cfg *config.Config,
	registry *device.Registry,
	runs device.RunHistoryRepository,
	influxClient *influxdb.Client,
	mqttClient *mqtt.Client,
	log *logging.Logger,
) (*bridge.Bridge, error) {
	cloudClient := cloud.New(cfg.Cloud)

	opts := bridge.Options{
		BridgeID:     cfg.Bridge.ID,
		Version:      version,
		MQTT:         &mqttBridgeAdapter{client: mqttClient},
		Cloud:        cloudClient,
		Registry:     registry,
		Runs:         runs,
		PollInterval: time.Duration(cfg.Cloud.PollInterval) * time.Second,
		QoS:          byte(cfg.MQTT.QoS), //nolint:gosec // QoS validated to 0..2 by config
		Logger:       log,
	}

	// Leave Metrics nil when InfluxDB is disabled; assigning a nil *Client
	// to the interface would make it non-nil and panic on first write.
	if influxClient != nil {
		opts.Metrics = influxClient
	}

	b, err := bridge.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating bridge: %w", err)
	}

	if err := b.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting bridge: %w", err)
	}
	log.Info("bridge started", "bridge_id", cfg.Bridge.ID)

	return b, nil
}

// mqttBridgeAdapter adapts the infrastructure MQTT client to the bridge's
// MQTTClient interface. The infrastructure Subscribe takes the named
// mqtt.MessageHandler type, which Go does not treat as identical to the
// structurally equal handler type in the bridge interface.
type mqttBridgeAdapter struct {
	client *mqtt.Client
}

// Publish implements bridge.MQTTClient.
func (a *mqttBridgeAdapter) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return a.client.Publish(topic, payload, qos, retained)
}

// Subscribe implements bridge.MQTTClient.
func (a *mqttBridgeAdapter) Subscribe(topic string, qos byte, handler func(topic string, payload []byte) error) error {
	return a.client.Subscribe(topic, qos, mqtt.MessageHandler(handler))
}

// IsConnected implements bridge.MQTTClient.
func (a *mqttBridgeAdapter) IsConnected() bool {
	return a.client.IsConnected()
}
