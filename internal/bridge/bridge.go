package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/vacbridge/internal/cloud"
	"github.com/nerrad567/vacbridge/internal/device"
	"github.com/nerrad567/vacbridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/vacbridge/internal/statesync"
)

// Bridge operation constants.
const (
	// commandTimeout is the timeout for forwarding commands to the cloud.
	commandTimeout = 10 * time.Second

	// registryOpTimeout bounds registry writes triggered by status updates.
	registryOpTimeout = 5 * time.Second
)

// CloudAPI is the subset of the cloud client the bridge needs.
// Satisfied by *cloud.Client.
type CloudAPI interface {
	// Devices lists the robots registered to the account.
	Devices(ctx context.Context) ([]cloud.Device, error)

	// Status fetches the current status document for one device.
	Status(ctx context.Context, deviceID string) (cloud.Status, error)

	// Send submits a command to one device.
	Send(ctx context.Context, deviceID string, cmd cloud.Command) error
}

// VacuumRegistry persists bridged vacuums and their last known state.
// Satisfied by *device.Registry.
type VacuumRegistry interface {
	// Seed creates or refreshes a vacuum record from discovery data.
	Seed(ctx context.Context, vacuum *device.Vacuum) (bool, error)

	// SetState replaces the stored state snapshot of a vacuum.
	SetState(ctx context.Context, id string, state device.State) error

	// SetHealth updates the health status of a vacuum.
	SetHealth(ctx context.Context, id string, status device.HealthStatus) error

	// Count returns the number of registered vacuums.
	Count() int
}

// RunRecorder persists completed cleaning runs.
// Satisfied by *device.SQLiteRunHistoryRepository.
type RunRecorder interface {
	RecordRun(ctx context.Context, record device.RunRecord) error
}

// MetricsWriter records telemetry to the time-series store.
// Satisfied by *influxdb.Client. Optional: a nil writer disables metrics.
type MetricsWriter interface {
	WriteBatteryMetric(deviceID string, level float64, charging bool)
	WriteRunMetric(deviceID string, durationSeconds float64, errorCode uint8)
	WriteErrorEvent(deviceID string, errorCode uint8, errorLabel string)
}

// Logger is the structured logging interface the bridge consumes.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger discards all log output. Used when no logger is configured.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options holds configuration for creating a Bridge.
type Options struct {
	// BridgeID identifies this bridge instance in health messages.
	BridgeID string

	// Version is the bridge software version.
	Version string

	// MQTT is the broker client. Required.
	MQTT MQTTClient

	// Cloud is the vendor API client. Required.
	Cloud CloudAPI

	// Registry persists vacuums and state. Required.
	Registry VacuumRegistry

	// Runs records completed cleaning runs. Optional.
	Runs RunRecorder

	// Metrics records telemetry. Optional.
	Metrics MetricsWriter

	// PollInterval is how often each device's status is fetched.
	PollInterval time.Duration

	// HealthInterval is how often bridge health is published.
	// Zero uses the reporter default.
	HealthInterval time.Duration

	// QoS is the MQTT quality of service for all publications.
	QoS byte

	// Logger is optional structured logging.
	Logger Logger
}

// Bridge orchestrates the vacuum cloud <-> MQTT translation.
// It handles:
//   - Device discovery and registry seeding at startup
//   - Per-device status polling and session routing
//   - Command handling with acknowledgements
//   - Health reporting and graceful shutdown
//
// Thread Safety: All methods are safe for concurrent use.
type Bridge struct {
	opts   Options
	pub    *FrameworkPublisher
	poller *cloud.Poller
	health *HealthReporter

	sessions  map[string]*Session
	sessionMu sync.RWMutex

	// Shutdown coordination.
	stopOnce  sync.Once
	ctx       context.Context
	ctxCancel context.CancelFunc

	logger Logger
}

// New creates a bridge. Call Start to begin operation.
func New(opts Options) (*Bridge, error) {
	if opts.MQTT == nil {
		return nil, fmt.Errorf("bridge: MQTT client is required")
	}
	if opts.Cloud == nil {
		return nil, fmt.Errorf("bridge: cloud client is required")
	}
	if opts.Registry == nil {
		return nil, fmt.Errorf("bridge: registry is required")
	}
	if opts.PollInterval <= 0 {
		return nil, fmt.Errorf("bridge: poll interval must be positive")
	}

	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	b := &Bridge{
		opts:      opts,
		pub:       NewFrameworkPublisher(opts.MQTT, opts.QoS),
		sessions:  make(map[string]*Session),
		ctx:       ctx,
		ctxCancel: cancel,
		logger:    logger,
	}

	b.health = NewHealthReporter(HealthReporterConfig{
		BridgeID:    opts.BridgeID,
		Version:     opts.Version,
		Interval:    opts.HealthInterval,
		Publisher:   opts.MQTT,
		DeviceCount: b.sessionCount,
	})
	b.health.SetLogger(logger)

	return b, nil
}

// Start discovers devices, subscribes to command topics, and begins
// polling and health reporting.
func (b *Bridge) Start(ctx context.Context) error {
	devices, err := b.discoverDevices(ctx)
	if err != nil {
		return err
	}

	if err := b.health.PublishStarting(); err != nil {
		b.logger.Error("failed to publish starting status", "error", err)
	}

	commandTopic := mqtt.Topics{}.AllDeviceCommands()
	if err := b.opts.MQTT.Subscribe(commandTopic, b.opts.QoS, b.handleCommandMessage); err != nil {
		return fmt.Errorf("subscribe to commands: %w", err)
	}
	b.logger.Info("subscribed to commands", "topic", commandTopic)

	b.poller = cloud.NewPoller(b.opts.Cloud, b, b.opts.PollInterval, b.logger)
	b.poller.Start(ctx, devices)

	b.health.Start(ctx)
	if err := b.health.PublishNow(); err != nil {
		b.logger.Error("failed to publish health status", "error", err)
	}

	b.logger.Info("bridge started",
		"bridge_id", b.opts.BridgeID,
		"devices", len(devices),
		"poll_interval", b.opts.PollInterval,
	)

	return nil
}

// Stop gracefully shuts down the bridge.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		// Abort in-flight command forwarding first
		b.ctxCancel()

		if b.poller != nil {
			b.poller.Stop()
		}

		// Publishes a final "stopping" status
		b.health.Stop()

		b.logger.Info("bridge stopped")
	})
}

// discoverDevices lists the account's robots and seeds the registry so
// every bridged vacuum has a persistent record. Seeding is idempotent:
// the vendor device ID is the primary key.
func (b *Bridge) discoverDevices(ctx context.Context) ([]cloud.Device, error) {
	devices, err := b.opts.Cloud.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("device discovery: %w", err)
	}

	for _, d := range devices {
		created, err := b.opts.Registry.Seed(ctx, &device.Vacuum{
			ID:       d.ID,
			Name:     d.Name,
			Model:    d.Model,
			Firmware: d.Firmware,
		})
		if err != nil {
			b.logger.Error("failed to seed vacuum",
				"device_id", d.ID,
				"error", err,
			)
			continue
		}
		if created {
			b.logger.Info("discovered new vacuum",
				"device_id", d.ID,
				"name", d.Name,
				"model", d.Model,
			)
		}

		b.ensureSession(d.ID)
	}

	return devices, nil
}

// ensureSession returns the session for a device, creating it on first
// use. A freshly created session publishes the device as online.
func (b *Bridge) ensureSession(deviceID string) *Session {
	b.sessionMu.RLock()
	s, ok := b.sessions[deviceID]
	b.sessionMu.RUnlock()
	if ok {
		return s
	}

	b.sessionMu.Lock()
	defer b.sessionMu.Unlock()

	if s, ok = b.sessions[deviceID]; ok {
		return s
	}

	s = NewSession(deviceID, b.pub, b.logger)
	b.sessions[deviceID] = s

	if err := b.pub.PublishDeviceHealth(deviceID, "online"); err != nil {
		b.logger.Warn("failed to publish device health",
			"device_id", deviceID,
			"error", err,
		)
	}

	return s
}

// sessionCount reports the number of active device sessions.
func (b *Bridge) sessionCount() int {
	b.sessionMu.RLock()
	defer b.sessionMu.RUnlock()
	return len(b.sessions)
}

// HandleStatus implements cloud.StatusHandler. The poller guarantees
// serial delivery per device, so each session sees its documents in
// order with no overlap.
func (b *Bridge) HandleStatus(ctx context.Context, dev cloud.Device, status cloud.Status) {
	session := b.ensureSession(dev.ID)

	events := session.HandleStatus(ctx, status)

	b.persistState(dev.ID, status)
	b.recordMetrics(dev.ID, status, events)
}

// persistState mirrors the latest status document into the registry so
// the HTTP API can serve it without touching the cloud.
func (b *Bridge) persistState(deviceID string, status cloud.Status) {
	ctx, cancel := context.WithTimeout(b.ctx, registryOpTimeout)
	defer cancel()

	state := device.State{
		"state":          status.State,
		"battery_level":  status.Battery.Level,
		"charging":       status.Battery.Charging,
		"clean_mode":     status.CleanMode,
		"fan_power":      status.FanPower,
		"selected_rooms": status.SelectedRooms,
		"current_room":   status.CurrentRoom,
		"error_code":     status.Error.Code,
	}

	if err := b.opts.Registry.SetState(ctx, deviceID, state); err != nil {
		b.logger.Warn("failed to persist state",
			"device_id", deviceID,
			"error", err,
		)
	}

	if err := b.opts.Registry.SetHealth(ctx, deviceID, device.HealthStatusOnline); err != nil {
		b.logger.Warn("failed to persist health",
			"device_id", deviceID,
			"error", err,
		)
	}
}

// recordMetrics writes telemetry and run history derived from one
// status document and the edges it produced.
func (b *Bridge) recordMetrics(deviceID string, status cloud.Status, events []statesync.Event) {
	if b.opts.Metrics != nil {
		b.opts.Metrics.WriteBatteryMetric(deviceID, float64(status.Battery.Level), status.Battery.Charging)
	}

	for _, ev := range events {
		switch payload := ev.Payload.(type) {
		case statesync.CompletionPayload:
			b.recordRun(deviceID, payload)
		case statesync.ErrorPayload:
			if b.opts.Metrics != nil {
				b.opts.Metrics.WriteErrorEvent(deviceID, payload.ErrorState.ID, payload.ErrorState.Label)
			}
		}
	}
}

// recordRun persists one completed cleaning run to the run history and
// the time-series store.
func (b *Bridge) recordRun(deviceID string, payload statesync.CompletionPayload) {
	if b.opts.Metrics != nil {
		b.opts.Metrics.WriteRunMetric(deviceID, float64(payload.TotalOperationalTime), payload.CompletionErrorCode)
	}

	if b.opts.Runs == nil {
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, registryOpTimeout)
	defer cancel()

	record := device.RunRecord{
		DeviceID:        deviceID,
		DurationSeconds: payload.TotalOperationalTime,
		ErrorCode:       payload.CompletionErrorCode,
		ErrorLabel:      ErrorLabel(payload.CompletionErrorCode),
		EndedAt:         time.Now().UTC(),
	}

	if err := b.opts.Runs.RecordRun(ctx, record); err != nil {
		b.logger.Error("failed to record run",
			"device_id", deviceID,
			"duration_seconds", record.DurationSeconds,
			"error", err,
		)
	}
}
