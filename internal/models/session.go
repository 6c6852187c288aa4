package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SessionKind string

const (
	KindSleep SessionKind = "sleep"
	KindPlay  SessionKind = "play"
	KindCry   SessionKind = "cry"
)

// Session is one sleep, play or cry episode. The three kinds share the
// start/end lifecycle; kind-specific fields are nil for the other kinds.
type Session struct {
	ID              uuid.UUID       `json:"id"`
	ChildID         uuid.UUID       `json:"child_id"`
	ChildName       string          `json:"child_name,omitempty"`
	CaretakerID     uuid.UUID       `json:"caretaker_id"`
	CaretakerName   string          `json:"caretaker_name,omitempty"`
	Kind            SessionKind     `json:"kind"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         *time.Time      `json:"end_time"`
	DurationMinutes int             `json:"duration_minutes"`
	IsActive        bool            `json:"is_active"`
	Quality         *string         `json:"quality,omitempty"`        // sleep
	Intensity       *string         `json:"intensity,omitempty"`      // cry
	Reason          *string         `json:"reason,omitempty"`         // cry
	PlayType        *string         `json:"play_type,omitempty"`      // play
	ActivityLevel   *string         `json:"activity_level,omitempty"` // play
	Notes           string          `json:"notes"`
	DeviceData      json.RawMessage `json:"device_data,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type StartSessionRequest struct {
	ChildID       uuid.UUID       `json:"child_id"`
	StartTime     *time.Time      `json:"start_time"`
	PlayType      string          `json:"play_type"`
	ActivityLevel string          `json:"activity_level"`
	Notes         string          `json:"notes"`
	DeviceData    json.RawMessage `json:"device_data"`
}

type EndSessionRequest struct {
	EndTime   *time.Time `json:"end_time"`
	Quality   string     `json:"quality"`
	Intensity string     `json:"intensity"`
	Reason    string     `json:"reason"`
	Notes     string     `json:"notes"`
}

// SessionSummary is today's rollup for one (child, kind) pair.
type SessionSummary struct {
	TotalSessions   int      `json:"total_sessions"`
	TotalMinutes    int      `json:"total_minutes"`
	AverageDuration int      `json:"average_duration"`
	IsOngoing       bool     `json:"is_ongoing"`
	CurrentDuration int      `json:"current_duration"`
	ActiveSession   *Session `json:"active_session"`
	LastSession     *Session `json:"last_session"`
}

func ValidSleepQuality(s string) bool {
	switch s {
	case "Deep", "Light", "Restless", "Unknown":
		return true
	}
	return false
}

func ValidCryIntensity(s string) bool {
	switch s {
	case "Mild", "Moderate", "Severe", "Unknown":
		return true
	}
	return false
}

func ValidCryReason(s string) bool {
	switch s {
	case "Hungry", "Diaper", "Tired", "Pain", "Attention", "Unknown":
		return true
	}
	return false
}

func ValidPlayType(s string) bool {
	switch s {
	case "Indoor", "Outdoor", "Toys", "Games", "Creative", "Physical", "Other":
		return true
	}
	return false
}

func ValidActivityLevel(s string) bool {
	switch s {
	case "High", "Medium", "Low":
		return true
	}
	return false
}
