package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Child struct {
	ID                uuid.UUID  `json:"id"`
	ChildCode         string     `json:"child_code"`
	Name              string     `json:"name"`
	Age               int        `json:"age"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	Photo             *string    `json:"photo"`
	MotherID          uuid.UUID  `json:"mother_id"`
	MotherName        string     `json:"mother_name,omitempty"`
	CaretakerID       *uuid.UUID `json:"caretaker_id"`
	CaretakerName     *string    `json:"caretaker_name,omitempty"`
	AssignedRoom      *string    `json:"assigned_room"`
	AssignedCamera    *string    `json:"assigned_camera"`
	AssignedMic       *string    `json:"assigned_mic"`
	Allergies         []string   `json:"allergies"`
	MedicalConditions []string   `json:"medical_conditions"`
	EmergencyName     *string    `json:"emergency_name"`
	EmergencyPhone    *string    `json:"emergency_phone"`
	EmergencyRelation *string    `json:"emergency_relation"`
	Notes             string     `json:"notes"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type CreateChildRequest struct {
	ChildCode         string     `json:"child_code"`
	Name              string     `json:"name"`
	Age               int        `json:"age"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	Photo             *string    `json:"photo"`
	MotherID          *uuid.UUID `json:"mother_id"`
	CaretakerID       *uuid.UUID `json:"caretaker_id"`
	AssignedRoom      *string    `json:"assigned_room"`
	AssignedCamera    *string    `json:"assigned_camera"`
	AssignedMic       *string    `json:"assigned_mic"`
	Allergies         []string   `json:"allergies"`
	MedicalConditions []string   `json:"medical_conditions"`
	EmergencyName     *string    `json:"emergency_name"`
	EmergencyPhone    *string    `json:"emergency_phone"`
	EmergencyRelation *string    `json:"emergency_relation"`
	Notes             string     `json:"notes"`
}

type UpdateChildRequest struct {
	Name              *string    `json:"name"`
	Age               *int       `json:"age"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	Photo             *string    `json:"photo"`
	CaretakerID       *uuid.UUID `json:"caretaker_id"`
	AssignedRoom      *string    `json:"assigned_room"`
	AssignedCamera    *string    `json:"assigned_camera"`
	AssignedMic       *string    `json:"assigned_mic"`
	Allergies         []string   `json:"allergies"`
	MedicalConditions []string   `json:"medical_conditions"`
	EmergencyName     *string    `json:"emergency_name"`
	EmergencyPhone    *string    `json:"emergency_phone"`
	EmergencyRelation *string    `json:"emergency_relation"`
	Notes             *string    `json:"notes"`
	IsActive          *bool      `json:"is_active"`
}

// DeviceEvent is a free-form observation attached to a child, recorded
// manually today and by room sensors later. The metadata payload is
// intentionally schema-less.
type DeviceEvent struct {
	ID         uuid.UUID       `json:"id"`
	ChildID    uuid.UUID       `json:"child_id"`
	RecordedAt time.Time       `json:"recorded_at"`
	Activity   string          `json:"activity"`
	DetectedBy string          `json:"detected_by"` // "manual" | "camera" | "mic" | "sensor"
	Metadata   json.RawMessage `json:"metadata"`
}

func ValidDetectedBy(s string) bool {
	switch s {
	case "manual", "camera", "mic", "sensor":
		return true
	}
	return false
}
