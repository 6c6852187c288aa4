package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"forma-backend/internal/models"
)

// FoodService records feedings and summarizes the current day.
type FoodService struct {
	food     FoodStore
	children ChildStore
	now      func() time.Time
}

func NewFoodService(food FoodStore, children ChildStore) *FoodService {
	return &FoodService{
		food:     food,
		children: children,
		now:      time.Now,
	}
}

func (s *FoodService) Add(ctx context.Context, caretakerID uuid.UUID, req models.AddFoodLogRequest) (*models.FoodLog, error) {
	fieldErrors := make(map[string]string)
	if req.ChildID == uuid.Nil {
		fieldErrors["child_id"] = "Child ID is required"
	}
	if !models.ValidFoodType(req.FoodType) {
		fieldErrors["food_type"] = "Invalid food type"
	}
	if req.Quantity == "" {
		fieldErrors["quantity"] = "Quantity is required"
	}
	if !models.ValidFoodUnit(req.Unit) {
		fieldErrors["unit"] = "Invalid unit"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	child, err := s.children.GetByID(ctx, req.ChildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Child not found"}
		}
		return nil, err
	}

	log := &models.FoodLog{
		ChildID:     req.ChildID,
		CaretakerID: caretakerID,
		FoodType:    req.FoodType,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		TimeGiven:   s.now(),
		Notes:       req.Notes,
	}
	if req.TimeGiven != nil {
		log.TimeGiven = *req.TimeGiven
	}

	if err := s.food.Create(ctx, log); err != nil {
		return nil, err
	}
	log.ChildName = child.Name
	return log, nil
}

func (s *FoodService) ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.FoodLog, error) {
	return s.food.ListByChild(ctx, childID, from, to)
}

func (s *FoodService) ListAll(ctx context.Context) ([]*models.FoodLog, error) {
	return s.food.ListAll(ctx)
}

// GetSummary rolls up today's feedings for one child.
func (s *FoodService) GetSummary(ctx context.Context, childID uuid.UUID) (*models.FoodSummary, error) {
	from := startOfDay(s.now())
	logs, err := s.food.ListRange(ctx, childID, from, from.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	summary := &models.FoodSummary{
		TotalFeedings:  len(logs),
		FeedingsByType: make(map[string]int),
	}
	for _, log := range logs {
		summary.FeedingsByType[log.FoodType]++
	}
	if len(logs) > 0 {
		summary.LastFeeding = logs[0]
		mins := minutesBetween(logs[0].TimeGiven, s.now())
		summary.TimeSinceLastFeed = &mins
	}

	return summary, nil
}

func (s *FoodService) Delete(ctx context.Context, id, requesterID uuid.UUID, requesterRole string) error {
	log, err := s.food.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Food log not found"}
		}
		return err
	}

	if log.CaretakerID != requesterID && requesterRole != models.RoleAdmin {
		return &ForbiddenError{Message: "Not authorized to delete this log"}
	}

	return s.food.Delete(ctx, id)
}
