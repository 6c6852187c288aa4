package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"forma-backend/internal/models"
)

// In-memory store fakes. They mirror the repository ordering contracts:
// list results come back newest first, and ranges are half-open [from, to).

type fakeChildStore struct {
	children map[uuid.UUID]*models.Child
}

func newFakeChildStore(children ...*models.Child) *fakeChildStore {
	s := &fakeChildStore{children: make(map[uuid.UUID]*models.Child)}
	for _, c := range children {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		s.children[c.ID] = c
	}
	return s
}

func (s *fakeChildStore) Create(ctx context.Context, c *models.Child) error {
	c.ID = uuid.New()
	s.children[c.ID] = c
	return nil
}

func (s *fakeChildStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Child, error) {
	c, ok := s.children[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (s *fakeChildStore) ListAll(ctx context.Context) ([]*models.Child, error) {
	var out []*models.Child
	for _, c := range s.children {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeChildStore) ListByMother(ctx context.Context, motherID uuid.UUID) ([]*models.Child, error) {
	var out []*models.Child
	for _, c := range s.children {
		if c.MotherID == motherID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeChildStore) ListByCaretaker(ctx context.Context, caretakerID uuid.UUID) ([]*models.Child, error) {
	var out []*models.Child
	for _, c := range s.children {
		if c.CaretakerID != nil && *c.CaretakerID == caretakerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeChildStore) ListActive(ctx context.Context) ([]*models.Child, error) {
	var out []*models.Child
	for _, c := range s.children {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeChildStore) Update(ctx context.Context, c *models.Child) error {
	if _, ok := s.children[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.children[c.ID] = c
	return nil
}

func (s *fakeChildStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.children, id)
	return nil
}

type fakeSessionStore struct {
	sessions  []*models.Session
	createErr error
}

func (s *fakeSessionStore) Create(ctx context.Context, sess *models.Session) error {
	if s.createErr != nil {
		return s.createErr
	}
	sess.ID = uuid.New()
	s.sessions = append(s.sessions, sess)
	return nil
}

func (s *fakeSessionStore) GetByID(ctx context.Context, id uuid.UUID, kind models.SessionKind) (*models.Session, error) {
	for _, sess := range s.sessions {
		if sess.ID == id && sess.Kind == kind {
			return sess, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeSessionStore) FindActive(ctx context.Context, childID uuid.UUID, kind models.SessionKind) (*models.Session, error) {
	for _, sess := range s.sessions {
		if sess.ChildID == childID && sess.Kind == kind && sess.IsActive {
			return sess, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeSessionStore) Finish(ctx context.Context, sess *models.Session) error {
	for i, existing := range s.sessions {
		if existing.ID == sess.ID {
			s.sessions[i] = sess
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *fakeSessionStore) ListSince(ctx context.Context, childID uuid.UUID, kind models.SessionKind, since time.Time) ([]*models.Session, error) {
	var out []*models.Session
	for _, sess := range s.sessions {
		if sess.ChildID == childID && sess.Kind == kind && !sess.StartTime.Before(since) {
			out = append(out, sess)
		}
	}
	sortSessionsDesc(out)
	return out, nil
}

func (s *fakeSessionStore) ListRange(ctx context.Context, childID uuid.UUID, kind models.SessionKind, from, to time.Time) ([]*models.Session, error) {
	var out []*models.Session
	for _, sess := range s.sessions {
		if sess.ChildID == childID && sess.Kind == kind && !sess.StartTime.Before(from) && sess.StartTime.Before(to) {
			out = append(out, sess)
		}
	}
	sortSessionsDesc(out)
	return out, nil
}

func (s *fakeSessionStore) ListByChild(ctx context.Context, childID uuid.UUID, kind models.SessionKind, from, to *time.Time) ([]*models.Session, error) {
	var out []*models.Session
	for _, sess := range s.sessions {
		if sess.ChildID != childID || sess.Kind != kind {
			continue
		}
		if from != nil && sess.StartTime.Before(*from) {
			continue
		}
		if to != nil && sess.StartTime.After(*to) {
			continue
		}
		out = append(out, sess)
	}
	sortSessionsDesc(out)
	return out, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func sortSessionsDesc(sessions []*models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
}

type fakeFoodStore struct {
	logs []*models.FoodLog
}

func (s *fakeFoodStore) Create(ctx context.Context, f *models.FoodLog) error {
	f.ID = uuid.New()
	s.logs = append(s.logs, f)
	return nil
}

func (s *fakeFoodStore) GetByID(ctx context.Context, id uuid.UUID) (*models.FoodLog, error) {
	for _, log := range s.logs {
		if log.ID == id {
			return log, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeFoodStore) ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.FoodLog, error) {
	var out []*models.FoodLog
	for _, log := range s.logs {
		if log.ChildID != childID {
			continue
		}
		if from != nil && log.TimeGiven.Before(*from) {
			continue
		}
		if to != nil && log.TimeGiven.After(*to) {
			continue
		}
		out = append(out, log)
	}
	sortFoodDesc(out)
	return out, nil
}

func (s *fakeFoodStore) ListRange(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*models.FoodLog, error) {
	var out []*models.FoodLog
	for _, log := range s.logs {
		if log.ChildID == childID && !log.TimeGiven.Before(from) && log.TimeGiven.Before(to) {
			out = append(out, log)
		}
	}
	sortFoodDesc(out)
	return out, nil
}

func (s *fakeFoodStore) ListAll(ctx context.Context) ([]*models.FoodLog, error) {
	out := append([]*models.FoodLog(nil), s.logs...)
	sortFoodDesc(out)
	return out, nil
}

func (s *fakeFoodStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, log := range s.logs {
		if log.ID == id {
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func sortFoodDesc(logs []*models.FoodLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].TimeGiven.After(logs[j].TimeGiven)
	})
}

type fakeDiaperStore struct {
	logs []*models.DiaperLog
}

func (s *fakeDiaperStore) Create(ctx context.Context, d *models.DiaperLog) error {
	d.ID = uuid.New()
	s.logs = append(s.logs, d)
	return nil
}

func (s *fakeDiaperStore) GetByID(ctx context.Context, id uuid.UUID) (*models.DiaperLog, error) {
	for _, log := range s.logs {
		if log.ID == id {
			return log, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeDiaperStore) ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.DiaperLog, error) {
	var out []*models.DiaperLog
	for _, log := range s.logs {
		if log.ChildID != childID {
			continue
		}
		if from != nil && log.TimeChanged.Before(*from) {
			continue
		}
		if to != nil && log.TimeChanged.After(*to) {
			continue
		}
		out = append(out, log)
	}
	sortDiaperDesc(out)
	return out, nil
}

func (s *fakeDiaperStore) ListRange(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*models.DiaperLog, error) {
	var out []*models.DiaperLog
	for _, log := range s.logs {
		if log.ChildID == childID && !log.TimeChanged.Before(from) && log.TimeChanged.Before(to) {
			out = append(out, log)
		}
	}
	sortDiaperDesc(out)
	return out, nil
}

func (s *fakeDiaperStore) ListAll(ctx context.Context) ([]*models.DiaperLog, error) {
	out := append([]*models.DiaperLog(nil), s.logs...)
	sortDiaperDesc(out)
	return out, nil
}

func (s *fakeDiaperStore) ListAllForAudit(ctx context.Context) ([]*models.DiaperLog, error) {
	return s.ListAll(ctx)
}

func (s *fakeDiaperStore) LatestForChild(ctx context.Context, childID uuid.UUID) (*models.DiaperLog, error) {
	var latest *models.DiaperLog
	for _, log := range s.logs {
		if log.ChildID != childID {
			continue
		}
		if latest == nil || log.TimeChanged.After(latest.TimeChanged) {
			latest = log
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	return latest, nil
}

func (s *fakeDiaperStore) MarkAlertSent(ctx context.Context, id uuid.UUID) error {
	for _, log := range s.logs {
		if log.ID == id {
			log.AlertSent = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *fakeDiaperStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, log := range s.logs {
		if log.ID == id {
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func sortDiaperDesc(logs []*models.DiaperLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].TimeChanged.After(logs[j].TimeChanged)
	})
}
