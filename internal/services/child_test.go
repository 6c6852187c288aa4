package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"forma-backend/internal/models"
)

type fakeDeviceEventStore struct {
	events []*models.DeviceEvent
}

func (s *fakeDeviceEventStore) Create(ctx context.Context, e *models.DeviceEvent) error {
	e.ID = uuid.New()
	s.events = append(s.events, e)
	return nil
}

func (s *fakeDeviceEventStore) ListByChild(ctx context.Context, childID uuid.UUID) ([]*models.DeviceEvent, error) {
	var out []*models.DeviceEvent
	for _, e := range s.events {
		if e.ChildID == childID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestChildVisibilityByRole(t *testing.T) {
	mother := uuid.New()
	caretaker := uuid.New()
	ownChild := &models.Child{Name: "Aruzhan", MotherID: mother, CaretakerID: &caretaker, IsActive: true}
	otherChild := &models.Child{Name: "Dias", MotherID: uuid.New(), IsActive: true}
	children := newFakeChildStore(ownChild, otherChild)
	svc := NewChildService(children, &fakeDeviceEventStore{})

	if _, err := svc.Get(context.Background(), ownChild.ID, mother, models.RoleMother); err != nil {
		t.Fatalf("expected mother to see her child, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ownChild.ID, caretaker, models.RoleCaretaker); err != nil {
		t.Fatalf("expected assigned caretaker to see the child, got %v", err)
	}

	var forbidden *ForbiddenError
	if _, err := svc.Get(context.Background(), otherChild.ID, mother, models.RoleMother); !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError for foreign child, got %v", err)
	}
	if _, err := svc.Get(context.Background(), otherChild.ID, caretaker, models.RoleCaretaker); !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError for unassigned caretaker, got %v", err)
	}
	if _, err := svc.Get(context.Background(), otherChild.ID, uuid.New(), models.RoleAdmin); err != nil {
		t.Fatalf("expected admin to see any child, got %v", err)
	}
}

func TestCreateChildMotherScope(t *testing.T) {
	mother := uuid.New()
	children := newFakeChildStore()
	svc := NewChildService(children, &fakeDeviceEventStore{})

	// A mother's own ID wins even if the request names someone else.
	someoneElse := uuid.New()
	child, err := svc.Create(context.Background(), mother, models.RoleMother, models.CreateChildRequest{
		ChildCode: "CH-010",
		Name:      "Aruzhan",
		MotherID:  &someoneElse,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.MotherID != mother {
		t.Errorf("expected mother forced to requester, got %s", child.MotherID)
	}
	if !child.IsActive {
		t.Error("expected new child active")
	}

	// An admin must name the mother explicitly.
	_, err = svc.Create(context.Background(), uuid.New(), models.RoleAdmin, models.CreateChildRequest{
		ChildCode: "CH-011",
		Name:      "Dias",
	})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for admin without mother_id, got %v", err)
	}
}

func TestAddDeviceEventDefaults(t *testing.T) {
	child := &models.Child{Name: "Aruzhan", MotherID: uuid.New(), IsActive: true}
	children := newFakeChildStore(child)
	events := &fakeDeviceEventStore{}
	svc := NewChildService(children, events)

	event := &models.DeviceEvent{Activity: "tossing in crib"}
	if err := svc.AddDeviceEvent(context.Background(), child.ID, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if event.DetectedBy != "manual" {
		t.Errorf("expected detection source defaulted to manual, got %s", event.DetectedBy)
	}
	if len(events.events) != 1 {
		t.Fatalf("expected event stored, got %d", len(events.events))
	}

	if err := svc.AddDeviceEvent(context.Background(), child.ID, &models.DeviceEvent{}); err == nil {
		t.Fatal("expected error for missing activity")
	}
}
