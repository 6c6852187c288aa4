package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"forma-backend/internal/models"
)

func newSessionTestService(children *fakeChildStore, sessions *fakeSessionStore, now time.Time) *SessionService {
	svc := NewSessionService(sessions, children)
	svc.now = func() time.Time { return now }
	return svc
}

func TestStartSessionRejectsSecondActive(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Aruzhan", IsActive: true}
	children := newFakeChildStore(child)
	sessions := &fakeSessionStore{sessions: []*models.Session{
		{ID: uuid.New(), ChildID: child.ID, Kind: models.KindSleep, StartTime: now.Add(-time.Hour), IsActive: true},
	}}
	svc := newSessionTestService(children, sessions, now)

	_, err := svc.Start(context.Background(), uuid.New(), models.KindSleep, models.StartSessionRequest{ChildID: child.ID})

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	// A cry session for the same child is a different kind and must start fine.
	if _, err := svc.Start(context.Background(), uuid.New(), models.KindCry, models.StartSessionRequest{ChildID: child.ID}); err != nil {
		t.Fatalf("expected cry session to start, got %v", err)
	}
}

func TestStartAfterEndSucceeds(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Aruzhan", IsActive: true}
	children := newFakeChildStore(child)
	sessions := &fakeSessionStore{}
	svc := newSessionTestService(children, sessions, now)

	first, err := svc.Start(context.Background(), uuid.New(), models.KindSleep, models.StartSessionRequest{ChildID: child.ID})
	if err != nil {
		t.Fatalf("unexpected error starting first session: %v", err)
	}
	if _, err := svc.End(context.Background(), first.ID, models.KindSleep, models.EndSessionRequest{}); err != nil {
		t.Fatalf("unexpected error ending session: %v", err)
	}

	if _, err := svc.Start(context.Background(), uuid.New(), models.KindSleep, models.StartSessionRequest{ChildID: child.ID}); err != nil {
		t.Fatalf("expected new session after previous ended, got %v", err)
	}
}

func TestStartSessionMapsUniqueViolationToConflict(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Aruzhan", IsActive: true}
	children := newFakeChildStore(child)
	sessions := &fakeSessionStore{createErr: &pgconn.PgError{Code: "23505"}}
	svc := newSessionTestService(children, sessions, now)

	_, err := svc.Start(context.Background(), uuid.New(), models.KindSleep, models.StartSessionRequest{ChildID: child.ID})

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError for racing insert, got %v", err)
	}
}

func TestStartSessionUnknownChild(t *testing.T) {
	svc := newSessionTestService(newFakeChildStore(), &fakeSessionStore{}, time.Now())

	_, err := svc.Start(context.Background(), uuid.New(), models.KindSleep, models.StartSessionRequest{ChildID: uuid.New()})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStartPlaySessionDefaults(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Dias", IsActive: true}
	svc := newSessionTestService(newFakeChildStore(child), &fakeSessionStore{}, now)

	sess, err := svc.Start(context.Background(), uuid.New(), models.KindPlay, models.StartSessionRequest{ChildID: child.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.PlayType == nil || *sess.PlayType != "Indoor" {
		t.Errorf("expected default play type Indoor, got %v", sess.PlayType)
	}
	if sess.ActivityLevel == nil || *sess.ActivityLevel != "Medium" {
		t.Errorf("expected default activity level Medium, got %v", sess.ActivityLevel)
	}
	if !sess.StartTime.Equal(now) {
		t.Errorf("expected start time defaulted to now, got %v", sess.StartTime)
	}
}

func TestEndSessionTruncatesDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Dias", IsActive: true}
	children := newFakeChildStore(child)
	active := &models.Session{ID: uuid.New(), ChildID: child.ID, Kind: models.KindSleep, StartTime: start, IsActive: true}
	sessions := &fakeSessionStore{sessions: []*models.Session{active}}
	svc := newSessionTestService(children, sessions, start)

	// 30m59s on the clock is still 30 whole minutes.
	end := start.Add(30*time.Minute + 59*time.Second)
	sess, err := svc.End(context.Background(), active.ID, models.KindSleep, models.EndSessionRequest{EndTime: &end, Quality: "Deep"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.DurationMinutes != 30 {
		t.Errorf("expected 30 minutes, got %d", sess.DurationMinutes)
	}
	if sess.IsActive {
		t.Error("expected session inactive after end")
	}
	if sess.Quality == nil || *sess.Quality != "Deep" {
		t.Errorf("expected quality Deep, got %v", sess.Quality)
	}
}

func TestReEndSessionRecomputesFromOriginalStart(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Dias", IsActive: true}
	firstEnd := start.Add(20 * time.Minute)
	sess := &models.Session{ID: uuid.New(), ChildID: child.ID, Kind: models.KindCry, StartTime: start, EndTime: &firstEnd, DurationMinutes: 20}
	sessions := &fakeSessionStore{sessions: []*models.Session{sess}}
	svc := newSessionTestService(newFakeChildStore(child), sessions, start)

	laterEnd := start.Add(45 * time.Minute)
	updated, err := svc.End(context.Background(), sess.ID, models.KindCry, models.EndSessionRequest{EndTime: &laterEnd, Intensity: "Severe", Reason: "Hungry"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.DurationMinutes != 45 {
		t.Errorf("expected duration recomputed to 45, got %d", updated.DurationMinutes)
	}
	if updated.Intensity == nil || *updated.Intensity != "Severe" {
		t.Errorf("expected intensity overwritten, got %v", updated.Intensity)
	}
}

func TestEndSessionValidatesTerminalFields(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Dias", IsActive: true}
	sess := &models.Session{ID: uuid.New(), ChildID: child.ID, Kind: models.KindSleep, StartTime: start, IsActive: true}
	svc := newSessionTestService(newFakeChildStore(child), &fakeSessionStore{sessions: []*models.Session{sess}}, start)

	_, err := svc.End(context.Background(), sess.ID, models.KindSleep, models.EndSessionRequest{Quality: "Amazing"})

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for bad quality, got %v", err)
	}
}

func TestSessionSummaryToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	childID := uuid.New()
	yesterday := now.Add(-24 * time.Hour)

	mk := func(start time.Time, mins int, active bool) *models.Session {
		sess := &models.Session{ID: uuid.New(), ChildID: childID, Kind: models.KindSleep, StartTime: start, DurationMinutes: mins, IsActive: active}
		if !active {
			end := start.Add(time.Duration(mins) * time.Minute)
			sess.EndTime = &end
		}
		return sess
	}

	sessions := &fakeSessionStore{sessions: []*models.Session{
		mk(now.Add(-6*time.Hour), 30, false),
		mk(now.Add(-3*time.Hour), 45, false),
		mk(now.Add(-10*time.Minute), 0, true),
		mk(yesterday, 90, false), // outside today's window
	}}
	svc := newSessionTestService(newFakeChildStore(), sessions, now)

	summary, err := svc.GetSummary(context.Background(), childID, models.KindSleep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalSessions != 3 {
		t.Errorf("expected 3 sessions today, got %d", summary.TotalSessions)
	}
	if summary.TotalMinutes != 75 {
		t.Errorf("expected 75 total minutes, got %d", summary.TotalMinutes)
	}
	if summary.AverageDuration != 37 {
		t.Errorf("expected average 37 over completed sessions, got %d", summary.AverageDuration)
	}
	if !summary.IsOngoing {
		t.Error("expected ongoing session flagged")
	}
	if summary.CurrentDuration != 10 {
		t.Errorf("expected current duration 10, got %d", summary.CurrentDuration)
	}
	if summary.LastSession == nil || !summary.LastSession.IsActive {
		t.Error("expected most recent session to be the active one")
	}
}

func TestDeleteSessionAuthorization(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	sess := &models.Session{ID: uuid.New(), ChildID: uuid.New(), CaretakerID: owner, Kind: models.KindPlay}
	sessions := &fakeSessionStore{sessions: []*models.Session{sess}}
	svc := newSessionTestService(newFakeChildStore(), sessions, time.Now())

	err := svc.Delete(context.Background(), sess.ID, models.KindPlay, other, models.RoleCaretaker)
	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError for non-owner, got %v", err)
	}

	if err := svc.Delete(context.Background(), sess.ID, models.KindPlay, other, models.RoleAdmin); err != nil {
		t.Fatalf("expected admin delete to succeed, got %v", err)
	}
}
