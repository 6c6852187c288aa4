package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"forma-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

const sessionSelect = `
	SELECT s.id, s.child_id, c.name, s.caretaker_id, u.name, s.kind,
		s.start_time, s.end_time, s.duration_minutes, s.is_active,
		s.quality, s.intensity, s.reason, s.play_type, s.activity_level,
		s.notes, s.device_data, s.created_at
	FROM activity_sessions s
	JOIN children c ON c.id = s.child_id
	JOIN users u ON u.id = s.caretaker_id`

func scanSession(row interface{ Scan(...interface{}) error }) (*models.Session, error) {
	s := &models.Session{}
	err := row.Scan(
		&s.ID, &s.ChildID, &s.ChildName, &s.CaretakerID, &s.CaretakerName, &s.Kind,
		&s.StartTime, &s.EndTime, &s.DurationMinutes, &s.IsActive,
		&s.Quality, &s.Intensity, &s.Reason, &s.PlayType, &s.ActivityLevel,
		&s.Notes, &s.DeviceData, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) Create(ctx context.Context, s *models.Session) error {
	s.ID = uuid.New()

	query := `
		INSERT INTO activity_sessions (id, child_id, caretaker_id, kind, start_time, is_active,
			play_type, activity_level, notes, device_data)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8, $9)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.ChildID, s.CaretakerID, s.Kind, s.StartTime,
		s.PlayType, s.ActivityLevel, s.Notes, s.DeviceData,
	).Scan(&s.CreatedAt)
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID, kind models.SessionKind) (*models.Session, error) {
	return scanSession(r.pool.QueryRow(ctx, sessionSelect+` WHERE s.id = $1 AND s.kind = $2`, id, kind))
}

// FindActive returns the in-progress session for (child, kind), if any.
func (r *SessionRepo) FindActive(ctx context.Context, childID uuid.UUID, kind models.SessionKind) (*models.Session, error) {
	return scanSession(r.pool.QueryRow(ctx,
		sessionSelect+` WHERE s.child_id = $1 AND s.kind = $2 AND s.is_active`, childID, kind))
}

// Finish writes the terminal fields computed by the service.
func (r *SessionRepo) Finish(ctx context.Context, s *models.Session) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE activity_sessions
		SET end_time = $1, duration_minutes = $2, is_active = FALSE,
			quality = $3, intensity = $4, reason = $5, notes = $6
		WHERE id = $7`,
		s.EndTime, s.DurationMinutes, s.Quality, s.Intensity, s.Reason, s.Notes, s.ID,
	)
	return err
}

func (r *SessionRepo) listQuery(ctx context.Context, where string, args ...interface{}) ([]*models.Session, error) {
	rows, err := r.pool.Query(ctx, sessionSelect+where+` ORDER BY s.start_time DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListSince returns sessions started at or after the cutoff, newest first.
func (r *SessionRepo) ListSince(ctx context.Context, childID uuid.UUID, kind models.SessionKind, since time.Time) ([]*models.Session, error) {
	return r.listQuery(ctx, ` WHERE s.child_id = $1 AND s.kind = $2 AND s.start_time >= $3`, childID, kind, since)
}

// ListRange returns sessions with start_time in [from, to), newest first.
func (r *SessionRepo) ListRange(ctx context.Context, childID uuid.UUID, kind models.SessionKind, from, to time.Time) ([]*models.Session, error) {
	return r.listQuery(ctx, ` WHERE s.child_id = $1 AND s.kind = $2 AND s.start_time >= $3 AND s.start_time < $4`,
		childID, kind, from, to)
}

// ListByChild returns sessions for the list endpoint; from/to are an
// inclusive filter, either may be nil.
func (r *SessionRepo) ListByChild(ctx context.Context, childID uuid.UUID, kind models.SessionKind, from, to *time.Time) ([]*models.Session, error) {
	where := ` WHERE s.child_id = $1 AND s.kind = $2`
	args := []interface{}{childID, kind}
	if from != nil {
		args = append(args, *from)
		where += ` AND s.start_time >= $3`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			where += ` AND s.start_time <= $4`
		} else {
			where += ` AND s.start_time <= $3`
		}
	}
	return r.listQuery(ctx, where, args...)
}

func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM activity_sessions WHERE id = $1", id)
	return err
}
