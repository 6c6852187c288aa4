package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"forma-backend/internal/models"
)

// SessionService owns the start/end lifecycle for sleep, play and cry
// sessions and the per-day summaries.
type SessionService struct {
	sessions SessionStore
	children ChildStore
	now      func() time.Time
}

func NewSessionService(sessions SessionStore, children ChildStore) *SessionService {
	return &SessionService{
		sessions: sessions,
		children: children,
		now:      time.Now,
	}
}

// Start opens a new active session. A child can have at most one active
// session per kind: the find-active check gives a clean conflict message,
// and the partial unique index on (child_id, kind) catches the racing
// insert that slips past it.
func (s *SessionService) Start(ctx context.Context, caretakerID uuid.UUID, kind models.SessionKind, req models.StartSessionRequest) (*models.Session, error) {
	if req.ChildID == uuid.Nil {
		return nil, &ValidationError{Fields: map[string]string{"child_id": "Child ID is required"}}
	}

	sess := &models.Session{
		ChildID:     req.ChildID,
		CaretakerID: caretakerID,
		Kind:        kind,
		Notes:       req.Notes,
		DeviceData:  req.DeviceData,
		IsActive:    true,
	}

	if kind == models.KindPlay {
		playType := req.PlayType
		if playType == "" {
			playType = "Indoor"
		}
		activityLevel := req.ActivityLevel
		if activityLevel == "" {
			activityLevel = "Medium"
		}
		fieldErrors := make(map[string]string)
		if !models.ValidPlayType(playType) {
			fieldErrors["play_type"] = "Invalid play type"
		}
		if !models.ValidActivityLevel(activityLevel) {
			fieldErrors["activity_level"] = "Invalid activity level"
		}
		if len(fieldErrors) > 0 {
			return nil, &ValidationError{Fields: fieldErrors}
		}
		sess.PlayType = &playType
		sess.ActivityLevel = &activityLevel
	}

	child, err := s.children.GetByID(ctx, req.ChildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Child not found"}
		}
		return nil, err
	}

	_, err = s.sessions.FindActive(ctx, req.ChildID, kind)
	if err == nil {
		return nil, &ConflictError{Message: fmt.Sprintf("%s already has an active %s session", child.Name, kind)}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if req.StartTime != nil {
		sess.StartTime = *req.StartTime
	} else {
		sess.StartTime = s.now()
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, &ConflictError{Message: fmt.Sprintf("%s already has an active %s session", child.Name, kind)}
		}
		return nil, err
	}

	sess.ChildName = child.Name
	return sess, nil
}

// End closes a session and computes its duration in whole minutes from
// the original start time. Re-ending an already ended session is allowed:
// the duration is recomputed from the same start time and the terminal
// fields are overwritten.
func (s *SessionService) End(ctx context.Context, sessionID uuid.UUID, kind models.SessionKind, req models.EndSessionRequest) (*models.Session, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID, kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: fmt.Sprintf("%s log not found", kindLabel(kind))}
		}
		return nil, err
	}

	fieldErrors := make(map[string]string)
	if kind == models.KindSleep && req.Quality != "" && !models.ValidSleepQuality(req.Quality) {
		fieldErrors["quality"] = "Invalid sleep quality"
	}
	if kind == models.KindCry {
		if req.Intensity != "" && !models.ValidCryIntensity(req.Intensity) {
			fieldErrors["intensity"] = "Invalid cry intensity"
		}
		if req.Reason != "" && !models.ValidCryReason(req.Reason) {
			fieldErrors["reason"] = "Invalid cry reason"
		}
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	endTime := s.now()
	if req.EndTime != nil {
		endTime = *req.EndTime
	}

	sess.EndTime = &endTime
	sess.DurationMinutes = minutesBetween(sess.StartTime, endTime)
	sess.IsActive = false
	if kind == models.KindSleep && req.Quality != "" {
		sess.Quality = &req.Quality
	}
	if kind == models.KindCry {
		if req.Intensity != "" {
			sess.Intensity = &req.Intensity
		}
		if req.Reason != "" {
			sess.Reason = &req.Reason
		}
	}
	if req.Notes != "" {
		sess.Notes = req.Notes
	}

	if err := s.sessions.Finish(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSummary rolls up today's sessions for one (child, kind) pair.
func (s *SessionService) GetSummary(ctx context.Context, childID uuid.UUID, kind models.SessionKind) (*models.SessionSummary, error) {
	sessions, err := s.sessions.ListSince(ctx, childID, kind, startOfDay(s.now()))
	if err != nil {
		return nil, err
	}

	summary := &models.SessionSummary{TotalSessions: len(sessions)}

	completed := 0
	for _, sess := range sessions {
		summary.TotalMinutes += sess.DurationMinutes
		if sess.IsActive {
			summary.ActiveSession = sess
		} else {
			completed++
		}
	}

	if summary.ActiveSession != nil {
		summary.IsOngoing = true
		summary.CurrentDuration = minutesBetween(summary.ActiveSession.StartTime, s.now())
	}
	if completed > 0 {
		summary.AverageDuration = summary.TotalMinutes / completed
	}
	if len(sessions) > 0 {
		summary.LastSession = sessions[0]
	}

	return summary, nil
}

// List returns a child's sessions of one kind, optionally date-filtered.
func (s *SessionService) List(ctx context.Context, childID uuid.UUID, kind models.SessionKind, from, to *time.Time) ([]*models.Session, error) {
	return s.sessions.ListByChild(ctx, childID, kind, from, to)
}

// Delete removes a session. Only the caretaker who recorded it or an
// admin may delete.
func (s *SessionService) Delete(ctx context.Context, sessionID uuid.UUID, kind models.SessionKind, requesterID uuid.UUID, requesterRole string) error {
	sess, err := s.sessions.GetByID(ctx, sessionID, kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: fmt.Sprintf("%s log not found", kindLabel(kind))}
		}
		return err
	}

	if sess.CaretakerID != requesterID && requesterRole != models.RoleAdmin {
		return &ForbiddenError{Message: "Not authorized to delete this log"}
	}

	return s.sessions.Delete(ctx, sessionID)
}

func kindLabel(kind models.SessionKind) string {
	switch kind {
	case models.KindSleep:
		return "Sleep"
	case models.KindPlay:
		return "Play"
	case models.KindCry:
		return "Cry"
	}
	return string(kind)
}
