package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"forma-backend/internal/models"
)

// ChildService manages child profiles with role-scoped visibility. A
// mother sees her own children, a caretaker sees assigned ones, an
// admin sees everything.
type ChildService struct {
	children ChildStore
	events   DeviceEventStore
}

func NewChildService(children ChildStore, events DeviceEventStore) *ChildService {
	return &ChildService{children: children, events: events}
}

func (s *ChildService) List(ctx context.Context, requesterID uuid.UUID, requesterRole string) ([]*models.Child, error) {
	switch requesterRole {
	case models.RoleMother:
		return s.children.ListByMother(ctx, requesterID)
	case models.RoleCaretaker:
		return s.children.ListByCaretaker(ctx, requesterID)
	default:
		return s.children.ListAll(ctx)
	}
}

func (s *ChildService) Get(ctx context.Context, id, requesterID uuid.UUID, requesterRole string) (*models.Child, error) {
	child, err := s.children.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Child not found"}
		}
		return nil, err
	}
	if err := s.authorize(child, requesterID, requesterRole); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) Create(ctx context.Context, requesterID uuid.UUID, requesterRole string, req models.CreateChildRequest) (*models.Child, error) {
	fieldErrors := make(map[string]string)
	if req.ChildCode == "" {
		fieldErrors["child_code"] = "Child code is required"
	}
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}

	// A mother always registers her own child. Admins register on
	// behalf of a mother and must say which.
	motherID := requesterID
	if requesterRole == models.RoleAdmin {
		if req.MotherID == nil {
			fieldErrors["mother_id"] = "Mother ID is required"
		} else {
			motherID = *req.MotherID
		}
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	child := &models.Child{
		ChildCode:         req.ChildCode,
		Name:              req.Name,
		Age:               req.Age,
		DateOfBirth:       req.DateOfBirth,
		Photo:             req.Photo,
		MotherID:          motherID,
		CaretakerID:       req.CaretakerID,
		AssignedRoom:      req.AssignedRoom,
		AssignedCamera:    req.AssignedCamera,
		AssignedMic:       req.AssignedMic,
		Allergies:         req.Allergies,
		MedicalConditions: req.MedicalConditions,
		EmergencyName:     req.EmergencyName,
		EmergencyPhone:    req.EmergencyPhone,
		EmergencyRelation: req.EmergencyRelation,
		Notes:             req.Notes,
		IsActive:          true,
	}

	if err := s.children.Create(ctx, child); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, &ConflictError{Message: "Child code already in use"}
		}
		return nil, err
	}
	return child, nil
}

func (s *ChildService) Update(ctx context.Context, id, requesterID uuid.UUID, requesterRole string, req models.UpdateChildRequest) (*models.Child, error) {
	child, err := s.children.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Child not found"}
		}
		return nil, err
	}
	if requesterRole != models.RoleAdmin && child.MotherID != requesterID {
		return nil, &ForbiddenError{Message: "Not authorized to update this child"}
	}

	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.Age != nil {
		child.Age = *req.Age
	}
	if req.DateOfBirth != nil {
		child.DateOfBirth = req.DateOfBirth
	}
	if req.Photo != nil {
		child.Photo = req.Photo
	}
	if req.CaretakerID != nil {
		child.CaretakerID = req.CaretakerID
	}
	if req.AssignedRoom != nil {
		child.AssignedRoom = req.AssignedRoom
	}
	if req.AssignedCamera != nil {
		child.AssignedCamera = req.AssignedCamera
	}
	if req.AssignedMic != nil {
		child.AssignedMic = req.AssignedMic
	}
	if req.Allergies != nil {
		child.Allergies = req.Allergies
	}
	if req.MedicalConditions != nil {
		child.MedicalConditions = req.MedicalConditions
	}
	if req.EmergencyName != nil {
		child.EmergencyName = req.EmergencyName
	}
	if req.EmergencyPhone != nil {
		child.EmergencyPhone = req.EmergencyPhone
	}
	if req.EmergencyRelation != nil {
		child.EmergencyRelation = req.EmergencyRelation
	}
	if req.Notes != nil {
		child.Notes = *req.Notes
	}
	if req.IsActive != nil {
		child.IsActive = *req.IsActive
	}

	if err := s.children.Update(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.children.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Child not found"}
		}
		return err
	}
	return s.children.Delete(ctx, id)
}

func (s *ChildService) AddDeviceEvent(ctx context.Context, childID uuid.UUID, event *models.DeviceEvent) error {
	if event.Activity == "" {
		return &ValidationError{Fields: map[string]string{"activity": "Activity is required"}}
	}
	if event.DetectedBy == "" {
		event.DetectedBy = "manual"
	}
	if !models.ValidDetectedBy(event.DetectedBy) {
		return &ValidationError{Fields: map[string]string{"detected_by": "Invalid detection source"}}
	}

	if _, err := s.children.GetByID(ctx, childID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Child not found"}
		}
		return err
	}

	event.ChildID = childID
	return s.events.Create(ctx, event)
}

func (s *ChildService) ListDeviceEvents(ctx context.Context, childID, requesterID uuid.UUID, requesterRole string) ([]*models.DeviceEvent, error) {
	if _, err := s.Get(ctx, childID, requesterID, requesterRole); err != nil {
		return nil, err
	}
	return s.events.ListByChild(ctx, childID)
}

func (s *ChildService) authorize(child *models.Child, requesterID uuid.UUID, requesterRole string) error {
	switch requesterRole {
	case models.RoleAdmin:
		return nil
	case models.RoleMother:
		if child.MotherID == requesterID {
			return nil
		}
	case models.RoleCaretaker:
		if child.CaretakerID != nil && *child.CaretakerID == requesterID {
			return nil
		}
	}
	return &ForbiddenError{Message: "Not authorized to view this child"}
}
