package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"forma-backend/internal/models"
)

type DeviceEventRepo struct {
	pool *pgxpool.Pool
}

func NewDeviceEventRepo(pool *pgxpool.Pool) *DeviceEventRepo {
	return &DeviceEventRepo{pool: pool}
}

func (r *DeviceEventRepo) Create(ctx context.Context, e *models.DeviceEvent) error {
	e.ID = uuid.New()
	if len(e.Metadata) == 0 {
		e.Metadata = json.RawMessage("{}")
	}

	query := `
		INSERT INTO device_events (id, child_id, activity, detected_by, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING recorded_at`

	return r.pool.QueryRow(ctx, query,
		e.ID, e.ChildID, e.Activity, e.DetectedBy, e.Metadata,
	).Scan(&e.RecordedAt)
}

func (r *DeviceEventRepo) ListByChild(ctx context.Context, childID uuid.UUID) ([]*models.DeviceEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, child_id, recorded_at, activity, detected_by, metadata
		FROM device_events
		WHERE child_id = $1
		ORDER BY recorded_at DESC`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.DeviceEvent
	for rows.Next() {
		e := &models.DeviceEvent{}
		if err := rows.Scan(&e.ID, &e.ChildID, &e.RecordedAt, &e.Activity, &e.DetectedBy, &e.Metadata); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
