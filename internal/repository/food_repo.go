package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"forma-backend/internal/models"
)

type FoodRepo struct {
	pool *pgxpool.Pool
}

func NewFoodRepo(pool *pgxpool.Pool) *FoodRepo {
	return &FoodRepo{pool: pool}
}

const foodSelect = `
	SELECT f.id, f.child_id, c.name, f.caretaker_id, u.name,
		f.food_type, f.quantity, f.unit, f.time_given, f.notes, f.created_at
	FROM food_logs f
	JOIN children c ON c.id = f.child_id
	JOIN users u ON u.id = f.caretaker_id`

func scanFoodLog(row interface{ Scan(...interface{}) error }) (*models.FoodLog, error) {
	f := &models.FoodLog{}
	err := row.Scan(
		&f.ID, &f.ChildID, &f.ChildName, &f.CaretakerID, &f.CaretakerName,
		&f.FoodType, &f.Quantity, &f.Unit, &f.TimeGiven, &f.Notes, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FoodRepo) Create(ctx context.Context, f *models.FoodLog) error {
	f.ID = uuid.New()
	query := `
		INSERT INTO food_logs (id, child_id, caretaker_id, food_type, quantity, unit, time_given, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		f.ID, f.ChildID, f.CaretakerID, f.FoodType, f.Quantity, f.Unit, f.TimeGiven, f.Notes,
	).Scan(&f.CreatedAt)
}

func (r *FoodRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FoodLog, error) {
	return scanFoodLog(r.pool.QueryRow(ctx, foodSelect+` WHERE f.id = $1`, id))
}

func (r *FoodRepo) listQuery(ctx context.Context, where string, args ...interface{}) ([]*models.FoodLog, error) {
	rows, err := r.pool.Query(ctx, foodSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.FoodLog
	for rows.Next() {
		f, err := scanFoodLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, f)
	}
	return logs, rows.Err()
}

// ListByChild returns a child's food logs, optionally filtered by an
// inclusive date range, newest first.
func (r *FoodRepo) ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.FoodLog, error) {
	where := ` WHERE f.child_id = $1`
	args := []interface{}{childID}
	if from != nil {
		args = append(args, *from)
		where += ` AND f.time_given >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			where += ` AND f.time_given <= $3`
		} else {
			where += ` AND f.time_given <= $2`
		}
	}
	return r.listQuery(ctx, where+` ORDER BY f.time_given DESC`, args...)
}

// ListRange returns food logs with time_given in [from, to), newest first.
func (r *FoodRepo) ListRange(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*models.FoodLog, error) {
	return r.listQuery(ctx,
		` WHERE f.child_id = $1 AND f.time_given >= $2 AND f.time_given < $3 ORDER BY f.time_given DESC`,
		childID, from, to)
}

// ListAll is the admin feed, capped at the most recent 100 entries.
func (r *FoodRepo) ListAll(ctx context.Context) ([]*models.FoodLog, error) {
	return r.listQuery(ctx, ` ORDER BY f.time_given DESC LIMIT 100`)
}

func (r *FoodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM food_logs WHERE id = $1", id)
	return err
}
