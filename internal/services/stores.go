package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"forma-backend/internal/models"
)

// Storage interfaces implemented by the repository package. Services
// depend on these so the domain logic can be tested against in-memory
// fakes. Not-found conditions surface as pgx.ErrNoRows.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, role string) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type ChildStore interface {
	Create(ctx context.Context, c *models.Child) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Child, error)
	ListAll(ctx context.Context) ([]*models.Child, error)
	ListByMother(ctx context.Context, motherID uuid.UUID) ([]*models.Child, error)
	ListByCaretaker(ctx context.Context, caretakerID uuid.UUID) ([]*models.Child, error)
	ListActive(ctx context.Context) ([]*models.Child, error)
	Update(ctx context.Context, c *models.Child) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	GetByID(ctx context.Context, id uuid.UUID, kind models.SessionKind) (*models.Session, error)
	FindActive(ctx context.Context, childID uuid.UUID, kind models.SessionKind) (*models.Session, error)
	Finish(ctx context.Context, s *models.Session) error
	ListSince(ctx context.Context, childID uuid.UUID, kind models.SessionKind, since time.Time) ([]*models.Session, error)
	ListRange(ctx context.Context, childID uuid.UUID, kind models.SessionKind, from, to time.Time) ([]*models.Session, error)
	ListByChild(ctx context.Context, childID uuid.UUID, kind models.SessionKind, from, to *time.Time) ([]*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FoodStore interface {
	Create(ctx context.Context, f *models.FoodLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FoodLog, error)
	ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.FoodLog, error)
	ListRange(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*models.FoodLog, error)
	ListAll(ctx context.Context) ([]*models.FoodLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DiaperStore interface {
	Create(ctx context.Context, d *models.DiaperLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DiaperLog, error)
	ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.DiaperLog, error)
	ListRange(ctx context.Context, childID uuid.UUID, from, to time.Time) ([]*models.DiaperLog, error)
	ListAll(ctx context.Context) ([]*models.DiaperLog, error)
	ListAllForAudit(ctx context.Context) ([]*models.DiaperLog, error)
	LatestForChild(ctx context.Context, childID uuid.UUID) (*models.DiaperLog, error)
	MarkAlertSent(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DeviceEventStore interface {
	Create(ctx context.Context, e *models.DeviceEvent) error
	ListByChild(ctx context.Context, childID uuid.UUID) ([]*models.DeviceEvent, error)
}
