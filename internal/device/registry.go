package device

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry provides vacuum management with caching and thread safety.
// It wraps a Repository and adds an in-memory cache for fast lookups.
//
// The cache is populated on startup via RefreshCache() and kept in sync
// by cache-invalidating CRUD operations.
//
// All public methods are thread-safe.
type Registry struct {
	repo    Repository
	cache   map[string]*Vacuum // Cached vacuums by ID
	cacheMu sync.RWMutex       // Protects cache
	logger  Logger
}

// NewRegistry creates a new vacuum registry.
// The repository is used for persistence; the registry adds caching.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[string]*Vacuum),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// RefreshCache reloads all vacuums from the repository into the cache.
// This should be called on application startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	vacuums, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading vacuums: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	// Clear and rebuild cache with deep copies
	r.cache = make(map[string]*Vacuum, len(vacuums))
	for i := range vacuums {
		v := vacuums[i]
		r.cache[v.ID] = v.DeepCopy()
	}

	r.logger.Info("vacuum cache refreshed", "count", len(vacuums))
	return nil
}

// Get retrieves a vacuum by ID.
// Returns ErrVacuumNotFound if the vacuum does not exist.
// The returned vacuum is a deep copy; callers can safely modify it.
func (r *Registry) Get(ctx context.Context, id string) (*Vacuum, error) {
	// Try cache first
	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()

	if ok {
		// Return a deep copy to prevent external mutation of cache
		return cached.DeepCopy(), nil
	}

	// Fall back to repository (might be a new vacuum not yet cached)
	vacuum, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cache for future lookups (store a deep copy)
	r.cacheMu.Lock()
	r.cache[id] = vacuum.DeepCopy()
	r.cacheMu.Unlock()

	return vacuum, nil
}

// GetBySlug retrieves a vacuum by its URL-safe slug.
// The returned vacuum is a deep copy; callers can safely modify it.
func (r *Registry) GetBySlug(_ context.Context, slug string) (*Vacuum, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	for _, v := range r.cache {
		if v.Slug == slug {
			return v.DeepCopy(), nil
		}
	}
	return nil, ErrVacuumNotFound
}

// List retrieves all vacuums.
// The returned vacuums are deep copies; callers can safely modify them.
func (r *Registry) List(ctx context.Context) ([]Vacuum, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	// Return from cache if populated
	if len(r.cache) > 0 {
		vacuums := make([]Vacuum, 0, len(r.cache))
		for _, v := range r.cache {
			// Deep copy to prevent external mutation of cache
			vacuums = append(vacuums, *v.DeepCopy())
		}
		return vacuums, nil
	}

	// Fall back to repository
	return r.repo.List(ctx)
}

// Create creates a new vacuum.
// It validates the record, generates a slug if needed, and persists it.
func (r *Registry) Create(ctx context.Context, vacuum *Vacuum) error {
	// Generate slug if not provided
	if vacuum.Slug == "" {
		vacuum.Slug = GenerateSlug(vacuum.Name)
	}

	// Validate
	if err := ValidateVacuum(vacuum); err != nil {
		return err
	}

	// Persist
	if err := r.repo.Create(ctx, vacuum); err != nil {
		return err
	}

	// Update cache (store a deep copy to prevent external modification)
	r.cacheMu.Lock()
	r.cache[vacuum.ID] = vacuum.DeepCopy()
	r.cacheMu.Unlock()

	r.logger.Info("vacuum created", "id", vacuum.ID, "name", vacuum.Name)
	return nil
}

// Update updates an existing vacuum.
// It validates the record and persists the changes.
func (r *Registry) Update(ctx context.Context, vacuum *Vacuum) error {
	// Regenerate slug if name changed and slug wasn't explicitly set
	existing, err := r.Get(ctx, vacuum.ID)
	if err != nil {
		return err
	}
	if vacuum.Name != existing.Name && vacuum.Slug == existing.Slug {
		vacuum.Slug = GenerateSlug(vacuum.Name)
	}

	// Validate
	if err := ValidateVacuum(vacuum); err != nil {
		return err
	}

	// Persist
	if err := r.repo.Update(ctx, vacuum); err != nil {
		return err
	}

	// Update cache (store a deep copy to prevent external modification)
	r.cacheMu.Lock()
	r.cache[vacuum.ID] = vacuum.DeepCopy()
	r.cacheMu.Unlock()

	r.logger.Info("vacuum updated", "id", vacuum.ID, "name", vacuum.Name)
	return nil
}

// Delete removes a vacuum.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Update cache
	r.cacheMu.Lock()
	delete(r.cache, id)
	r.cacheMu.Unlock()

	r.logger.Info("vacuum deleted", "id", id)
	return nil
}

// Seed registers a discovered vacuum if it is not already known.
// Existing records keep their name and state; only vendor metadata is
// refreshed. Returns true when a new record was created.
func (r *Registry) Seed(ctx context.Context, vacuum *Vacuum) (bool, error) {
	existing, err := r.Get(ctx, vacuum.ID)
	if err == nil {
		// Known device: refresh model/firmware if the vendor changed them.
		if existing.Model == vacuum.Model && existing.Firmware == vacuum.Firmware {
			return false, nil
		}
		existing.Model = vacuum.Model
		existing.Firmware = vacuum.Firmware
		if err := r.Update(ctx, existing); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, ErrVacuumNotFound) {
		return false, err
	}

	if err := r.Create(ctx, vacuum); err != nil {
		return false, err
	}
	return true, nil
}

// SetState updates the state of a vacuum.
// This is optimised for frequent updates from the poller.
func (r *Registry) SetState(ctx context.Context, id string, state State) error {
	if err := r.repo.UpdateState(ctx, id, state); err != nil {
		return err
	}

	// Update cache using deep copy to prevent race conditions
	r.cacheMu.Lock()
	if cached, ok := r.cache[id]; ok {
		// Create a deep copy with updated state (atomic replacement)
		updated := cached.DeepCopy()
		updated.State = deepCopyMap(state) // Deep copy the new state too
		now := time.Now().UTC()
		updated.StateUpdatedAt = &now
		r.cache[id] = updated
	}
	r.cacheMu.Unlock()

	r.logger.Debug("vacuum state updated", "id", id)
	return nil
}

// SetHealth updates the health status of a vacuum.
func (r *Registry) SetHealth(ctx context.Context, id string, status HealthStatus) error {
	now := time.Now().UTC()
	if err := r.repo.UpdateHealth(ctx, id, status, now); err != nil {
		return err
	}

	// Update cache using deep copy to prevent race conditions
	r.cacheMu.Lock()
	if cached, ok := r.cache[id]; ok {
		// Create a deep copy with updated health (atomic replacement)
		updated := cached.DeepCopy()
		updated.HealthStatus = status
		updated.HealthLastSeen = &now
		r.cache[id] = updated
	}
	r.cacheMu.Unlock()

	r.logger.Debug("vacuum health updated", "id", id, "status", status)
	return nil
}

// Count returns the number of cached vacuums.
func (r *Registry) Count() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}

// Stats returns registry statistics for monitoring.
type Stats struct {
	TotalVacuums   int
	ByHealthStatus map[HealthStatus]int
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	stats := Stats{
		TotalVacuums:   len(r.cache),
		ByHealthStatus: make(map[HealthStatus]int),
	}

	for _, v := range r.cache {
		stats.ByHealthStatus[v.HealthStatus]++
	}

	return stats
}
