package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"forma-backend/internal/models"
)

type DiaperRepo struct {
	pool *pgxpool.Pool
}

func NewDiaperRepo(pool *pgxpool.Pool) *DiaperRepo {
	return &DiaperRepo{pool: pool}
}

const diaperSelect = `
	SELECT d.id, d.child_id, c.name, d.caretaker_id, u.name,
		d.status, d.time_checked, d.time_changed, d.notes, d.alert_sent, d.created_at
	FROM diaper_logs d
	JOIN children c ON c.id = d.child_id
	JOIN users u ON u.id = d.caretaker_id`

func scanDiaperLog(row interface{ Scan(...interface{}) error }) (*models.DiaperLog, error) {
	d := &models.DiaperLog{}
	err := row.Scan(
		&d.ID, &d.ChildID, &d.ChildName, &d.CaretakerID, &d.CaretakerName,
		&d.Status, &d.TimeChecked, &d.TimeChanged, &d.Notes, &d.AlertSent, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DiaperRepo) Create(ctx context.Context, d *models.DiaperLog) error {
	d.ID = uuid.New()
	query := `
		INSERT INTO diaper_logs (id, child_id, caretaker_id, status, time_checked, time_changed, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		d.ID, d.ChildID, d.CaretakerID, d.Status, d.TimeChecked, d.TimeChanged, d.Notes,
	).Scan(&d.CreatedAt)
}

func (r *DiaperRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.DiaperLog, error) {
	return scanDiaperLog(r.pool.QueryRow(ctx, diaperSelect+` WHERE d.id = $1`, id))
}

func (r *DiaperRepo) listQuery(ctx context.Context, where string, args ...interface{}) ([]*models.DiaperLog, error) {
	rows, err := r.pool.Query(ctx, diaperSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.DiaperLog
	for rows.Next() {
		d, err := scanDiaperLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, d)
	}
	return logs, rows.Err()
}

// ListByChild returns a child's diaper logs, optionally filtered by an
// inclusive date range, newest first.
func (r *DiaperRepo) ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.DiaperLog, error) {
	where := ` WHERE d.child_id = $1`
	args := []interface{}{childID}
	if from != nil {
		args = append(args, *from)
		where += ` AND d.time_changed >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			where += ` AND d.time_changed <= $3`
		} else {
			where += ` AND d.time_changed <= $2`
		}
	}
	return r.listQuery(ctx, where+` ORDER BY d.time_changed DESC`, args...)
}

// ListRange returns diaper logs with time_changed in [from, to), newest first.
func (r *DiaperRepo) ListRange(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*models.DiaperLog, error) {
	return r.listQuery(ctx,
		` WHERE d.child_id = $1 AND d.time_changed >= $2 AND d.time_changed < $3 ORDER BY d.time_changed DESC`,
		childID, from, to)
}

// ListAll is the admin feed, capped at the most recent 100 entries.
func (r *DiaperRepo) ListAll(ctx context.Context) ([]*models.DiaperLog, error) {
	return r.listQuery(ctx, ` ORDER BY d.time_changed DESC LIMIT 100`)
}

// ListAllForAudit returns every diaper log, newest first, for the
// compliance rollup. Uncapped; per-deployment volumes are small.
func (r *DiaperRepo) ListAllForAudit(ctx context.Context) ([]*models.DiaperLog, error) {
	return r.listQuery(ctx, ` ORDER BY d.time_changed DESC`)
}

// LatestForChild returns the most recent diaper log ever recorded for the
// child, regardless of day.
func (r *DiaperRepo) LatestForChild(ctx context.Context, childID uuid.UUID) (*models.DiaperLog, error) {
	return scanDiaperLog(r.pool.QueryRow(ctx,
		diaperSelect+` WHERE d.child_id = $1 ORDER BY d.time_changed DESC LIMIT 1`, childID))
}

func (r *DiaperRepo) MarkAlertSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE diaper_logs SET alert_sent = TRUE WHERE id = $1", id)
	return err
}

func (r *DiaperRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM diaper_logs WHERE id = $1", id)
	return err
}
