package models

import (
	"time"

	"github.com/google/uuid"
)

type CaretakerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TimelineEntry is the normalized projection used by the unified activity
// timeline. Built on demand, never persisted.
type TimelineEntry struct {
	ID        uuid.UUID    `json:"id"`
	Type      string       `json:"type"` // "food" | "diaper" | "sleep" | "play" | "cry"
	Timestamp time.Time    `json:"timestamp"`
	Caretaker CaretakerRef `json:"caretaker"`
	Details   interface{}  `json:"details"`
}

type FoodDetails struct {
	FoodType  string    `json:"food_type"`
	Quantity  string    `json:"quantity"`
	Unit      string    `json:"unit"`
	TimeGiven time.Time `json:"time_given"`
	Notes     string    `json:"notes"`
}

type DiaperDetails struct {
	Status      string    `json:"status"`
	TimeChanged time.Time `json:"time_changed"`
	Notes       string    `json:"notes"`
}

type SleepDetails struct {
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	Quality         *string    `json:"quality"`
	IsActive        bool       `json:"is_active"`
	Notes           string     `json:"notes"`
}

type PlayDetails struct {
	PlayType        *string    `json:"play_type"`
	ActivityLevel   *string    `json:"activity_level"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	IsActive        bool       `json:"is_active"`
	Notes           string     `json:"notes"`
}

type CryDetails struct {
	Intensity       *string    `json:"intensity"`
	Reason          *string    `json:"reason"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	IsActive        bool       `json:"is_active"`
	Notes           string     `json:"notes"`
}
