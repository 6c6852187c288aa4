package models

import (
	"time"

	"github.com/google/uuid"
)

type FoodLog struct {
	ID            uuid.UUID `json:"id"`
	ChildID       uuid.UUID `json:"child_id"`
	ChildName     string    `json:"child_name,omitempty"`
	CaretakerID   uuid.UUID `json:"caretaker_id"`
	CaretakerName string    `json:"caretaker_name,omitempty"`
	FoodType      string    `json:"food_type"`
	Quantity      string    `json:"quantity"`
	Unit          string    `json:"unit"`
	TimeGiven     time.Time `json:"time_given"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type AddFoodLogRequest struct {
	ChildID   uuid.UUID  `json:"child_id"`
	FoodType  string     `json:"food_type"`
	Quantity  string     `json:"quantity"`
	Unit      string     `json:"unit"`
	TimeGiven *time.Time `json:"time_given"`
	Notes     string     `json:"notes"`
}

type FoodSummary struct {
	TotalFeedings     int            `json:"total_feedings"`
	LastFeeding       *FoodLog       `json:"last_feeding"`
	FeedingsByType    map[string]int `json:"feedings_by_type"`
	TimeSinceLastFeed *int           `json:"time_since_last_feed"`
}

type DiaperLog struct {
	ID            uuid.UUID `json:"id"`
	ChildID       uuid.UUID `json:"child_id"`
	ChildName     string    `json:"child_name,omitempty"`
	CaretakerID   uuid.UUID `json:"caretaker_id"`
	CaretakerName string    `json:"caretaker_name,omitempty"`
	Status        string    `json:"status"`
	TimeChecked   time.Time `json:"time_checked"`
	TimeChanged   time.Time `json:"time_changed"`
	Notes         string    `json:"notes"`
	AlertSent     bool      `json:"alert_sent"`
	CreatedAt     time.Time `json:"created_at"`
}

type AddDiaperLogRequest struct {
	ChildID     uuid.UUID  `json:"child_id"`
	Status      string     `json:"status"`
	TimeChecked *time.Time `json:"time_checked"`
	TimeChanged *time.Time `json:"time_changed"`
	Notes       string     `json:"notes"`
}

func ValidFoodType(s string) bool {
	switch s {
	case "Milk", "Formula", "Solid Food", "Water", "Fruit", "Juice", "Snack", "Other":
		return true
	}
	return false
}

func ValidFoodUnit(s string) bool {
	switch s {
	case "ml", "grams", "pieces", "bowl", "cup":
		return true
	}
	return false
}

func ValidDiaperStatus(s string) bool {
	switch s {
	case "Clean", "Wet", "Soiled":
		return true
	}
	return false
}
