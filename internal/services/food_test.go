package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"forma-backend/internal/models"
)

func TestAddFoodLogValidation(t *testing.T) {
	svc := NewFoodService(&fakeFoodStore{}, newFakeChildStore())

	_, err := svc.Add(context.Background(), uuid.New(), models.AddFoodLogRequest{
		ChildID:  uuid.New(),
		FoodType: "Pizza",
		Quantity: "1",
		Unit:     "slices",
	})

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := validation.Fields["food_type"]; !ok {
		t.Error("expected food_type field error")
	}
	if _, ok := validation.Fields["unit"]; !ok {
		t.Error("expected unit field error")
	}
}

func TestFoodSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	childID := uuid.New()

	food := &fakeFoodStore{logs: []*models.FoodLog{
		{ID: uuid.New(), ChildID: childID, FoodType: "Milk", TimeGiven: now.Add(-45 * time.Minute)},
		{ID: uuid.New(), ChildID: childID, FoodType: "Milk", TimeGiven: now.Add(-4 * time.Hour)},
		{ID: uuid.New(), ChildID: childID, FoodType: "Snack", TimeGiven: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), ChildID: childID, FoodType: "Formula", TimeGiven: now.Add(-26 * time.Hour)}, // yesterday
	}}
	svc := NewFoodService(food, newFakeChildStore())
	svc.now = func() time.Time { return now }

	summary, err := svc.GetSummary(context.Background(), childID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalFeedings != 3 {
		t.Errorf("expected 3 feedings today, got %d", summary.TotalFeedings)
	}
	if summary.FeedingsByType["Milk"] != 2 || summary.FeedingsByType["Snack"] != 1 {
		t.Errorf("unexpected type counts: %v", summary.FeedingsByType)
	}
	if summary.LastFeeding == nil || summary.LastFeeding.FoodType != "Milk" {
		t.Error("expected most recent feeding to lead the summary")
	}
	if summary.TimeSinceLastFeed == nil || *summary.TimeSinceLastFeed != 45 {
		t.Errorf("expected 45 minutes since last feed, got %v", summary.TimeSinceLastFeed)
	}
}
