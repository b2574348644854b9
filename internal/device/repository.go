package device

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for vacuum persistence operations.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// GetByID retrieves a vacuum by its unique identifier.
	// Returns ErrVacuumNotFound if the vacuum does not exist.
	GetByID(ctx context.Context, id string) (*Vacuum, error)

	// List retrieves all vacuums.
	List(ctx context.Context) ([]Vacuum, error)

	// Create inserts a new vacuum.
	// Returns ErrVacuumExists if a vacuum with the same ID already exists.
	Create(ctx context.Context, vacuum *Vacuum) error

	// Update modifies an existing vacuum.
	// Returns ErrVacuumNotFound if the vacuum does not exist.
	Update(ctx context.Context, vacuum *Vacuum) error

	// Delete removes a vacuum by ID.
	// Returns ErrVacuumNotFound if the vacuum does not exist.
	Delete(ctx context.Context, id string) error

	// UpdateState updates only the state fields of a vacuum.
	// This is optimised for frequent state changes from the poller.
	UpdateState(ctx context.Context, id string, state State) error

	// UpdateHealth updates the health status and last seen timestamp.
	UpdateHealth(ctx context.Context, id string, status HealthStatus, lastSeen time.Time) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const vacuumColumns = `id, name, slug, model, firmware, state, state_updated_at,
		health_status, health_last_seen, created_at, updated_at`

// GetByID retrieves a vacuum by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Vacuum, error) {
	query := `SELECT ` + vacuumColumns + ` FROM devices WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	vacuum, err := scanVacuum(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVacuumNotFound
		}
		return nil, fmt.Errorf("querying vacuum by id: %w", err)
	}
	return vacuum, nil
}

// List retrieves all vacuums ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Vacuum, error) {
	query := `SELECT ` + vacuumColumns + ` FROM devices ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying vacuums: %w", err)
	}
	defer rows.Close()

	var vacuums []Vacuum
	for rows.Next() {
		v, err := scanVacuum(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vacuum: %w", err)
		}
		vacuums = append(vacuums, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vacuums: %w", err)
	}

	return vacuums, nil
}

// Create inserts a new vacuum.
func (r *SQLiteRepository) Create(ctx context.Context, vacuum *Vacuum) error {
	stateJSON, err := marshalState(vacuum.State)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if vacuum.CreatedAt.IsZero() {
		vacuum.CreatedAt = now
	}
	vacuum.UpdatedAt = now
	if vacuum.HealthStatus == "" {
		vacuum.HealthStatus = HealthStatusUnknown
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO devices (id, name, slug, model, firmware, state,
			health_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vacuum.ID, vacuum.Name, vacuum.Slug, vacuum.Model, vacuum.Firmware,
		stateJSON, string(vacuum.HealthStatus),
		vacuum.CreatedAt.Format(time.RFC3339), vacuum.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrVacuumExists
		}
		return fmt.Errorf("inserting vacuum: %w", err)
	}

	return nil
}

// Update modifies an existing vacuum.
func (r *SQLiteRepository) Update(ctx context.Context, vacuum *Vacuum) error {
	stateJSON, err := marshalState(vacuum.State)
	if err != nil {
		return err
	}

	vacuum.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE devices
		SET name = ?, slug = ?, model = ?, firmware = ?, state = ?,
			health_status = ?, updated_at = ?
		WHERE id = ?`,
		vacuum.Name, vacuum.Slug, vacuum.Model, vacuum.Firmware, stateJSON,
		string(vacuum.HealthStatus), vacuum.UpdatedAt.Format(time.RFC3339),
		vacuum.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vacuum: %w", err)
	}

	return requireRowAffected(result)
}

// Delete removes a vacuum by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM devices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting vacuum: %w", err)
	}
	return requireRowAffected(result)
}

// UpdateState updates only the state fields of a vacuum.
func (r *SQLiteRepository) UpdateState(ctx context.Context, id string, state State) error {
	stateJSON, err := marshalState(state)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx, `
		UPDATE devices
		SET state = ?, state_updated_at = ?, updated_at = ?
		WHERE id = ?`,
		stateJSON, now, now, id,
	)
	if err != nil {
		return fmt.Errorf("updating vacuum state: %w", err)
	}
	return requireRowAffected(result)
}

// UpdateHealth updates the health status and last seen timestamp.
func (r *SQLiteRepository) UpdateHealth(ctx context.Context, id string, status HealthStatus, lastSeen time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE devices
		SET health_status = ?, health_last_seen = ?, updated_at = ?
		WHERE id = ?`,
		string(status),
		lastSeen.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating vacuum health: %w", err)
	}
	return requireRowAffected(result)
}

// scanner abstracts *sql.Row and *sql.Rows for scanVacuum.
type scanner interface {
	Scan(dest ...any) error
}

// scanVacuum reads one vacuum row. Nullable columns arrive as sql.Null*.
func scanVacuum(row scanner) (*Vacuum, error) {
	var (
		v              Vacuum
		stateJSON      sql.NullString
		stateUpdatedAt sql.NullString
		healthLastSeen sql.NullString
		createdAt      string
		updatedAt      string
	)

	err := row.Scan(
		&v.ID, &v.Name, &v.Slug, &v.Model, &v.Firmware,
		&stateJSON, &stateUpdatedAt,
		&v.HealthStatus, &healthLastSeen,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if stateJSON.Valid && stateJSON.String != "" {
		if err := json.Unmarshal([]byte(stateJSON.String), &v.State); err != nil {
			return nil, fmt.Errorf("unmarshalling state: %w", err)
		}
	}

	if t, ok := parseNullTime(stateUpdatedAt); ok {
		v.StateUpdatedAt = &t
	}
	if t, ok := parseNullTime(healthLastSeen); ok {
		v.HealthLastSeen = &t
	}

	if v.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if v.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &v, nil
}

func marshalState(state State) (string, error) {
	if state == nil {
		state = State{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshalling state: %w", err)
	}
	return string(data), nil
}

func parseNullTime(ns sql.NullString) (time.Time, bool) {
	if !ns.Valid || ns.String == "" {
		return time.Time{}, false
	}
	t, err := parseTimestamp(ns.String)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseTimestamp parses a timestamp stored in SQLite.
func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}

	fallback, fallbackErr := time.Parse("2006-01-02 15:04:05", value)
	if fallbackErr == nil {
		return fallback, nil
	}

	return time.Time{}, err
}

// requireRowAffected converts a zero-row update into ErrVacuumNotFound.
func requireRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrVacuumNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
