package cloud

import (
	"context"
	"sync"
	"time"
)

// StatusClient is the subset of the API client the poller needs.
type StatusClient interface {
	Status(ctx context.Context, deviceID string) (Status, error)
}

// StatusHandler receives each successfully polled status document.
//
// Calls are serial per device: the poller waits for HandleStatus to return
// before fetching that device's next status. Handlers for different devices
// run concurrently.
type StatusHandler interface {
	HandleStatus(ctx context.Context, device Device, status Status)
}

// Logger interface for poll loop logging.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Poller runs one polling loop per device against the vendor API.
type Poller struct {
	client   StatusClient
	handler  StatusHandler
	interval time.Duration
	logger   Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPoller creates a poller. interval must be positive.
func NewPoller(client StatusClient, handler StatusHandler, interval time.Duration, logger Logger) *Poller {
	return &Poller{
		client:   client,
		handler:  handler,
		interval: interval,
		logger:   logger,
	}
}

// Start launches one polling goroutine per device. Each device is polled
// immediately and then on every interval tick until the context is
// cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context, devices []Device) {
	p.mu.Lock()
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	for _, d := range devices {
		p.wg.Add(1)
		go p.pollDevice(ctx, d)
	}
}

// Stop cancels all polling loops and waits for in-flight handler calls to
// finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// pollDevice is the per-device loop. Poll failures are logged and the loop
// carries on; the next tick is a fresh attempt.
func (p *Poller) pollDevice(ctx context.Context, device Device) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, device)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, device)
		}
	}
}

func (p *Poller) poll(ctx context.Context, device Device) {
	status, err := p.client.Status(ctx, device.ID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if p.logger != nil {
			p.logger.Warn("status poll failed",
				"device_id", device.ID,
				"error", err,
			)
		}
		return
	}

	if p.logger != nil {
		p.logger.Debug("status polled",
			"device_id", device.ID,
			"state", status.State,
			"battery", status.Battery.Level,
		)
	}

	p.handler.HandleStatus(ctx, device, status)
}
