package models

import "time"

const (
	AlertGreen  = "green"
	AlertYellow = "yellow"
	AlertRed    = "red"
)

type DiaperDailyStats struct {
	TotalChangesToday int     `json:"total_changes_today"`
	AverageInterval   int     `json:"average_interval"`
	LastRashNote      *string `json:"last_rash_note"`
}

type DiaperSummary struct {
	TotalChanges        int              `json:"total_changes"`
	LastChange          *DiaperLog       `json:"last_change"`
	TimeSinceLastChange *int             `json:"time_since_last_change"`
	AlertLevel          string           `json:"alert_level"`
	CurrentStatus       string           `json:"current_status"`
	DailyStats          DiaperDailyStats `json:"daily_stats"`
}

type OverdueAlert struct {
	Child            *Child     `json:"child"`
	LastChange       *DiaperLog `json:"last_change"`
	HoursSinceChange string     `json:"hours_since_change"`
	Message          string     `json:"message"`
}

// ChildAuditRow is one child's diaper-change history rolled up for the
// compliance dashboard.
type ChildAuditRow struct {
	ChildID         string        `json:"child_id"`
	ChildCode       string        `json:"child_code"`
	ChildName       string        `json:"child_name"`
	Caretaker       *CaretakerRef `json:"caretaker"`
	LastChange      *time.Time    `json:"last_change"`
	TimeSinceChange *int          `json:"time_since_change"`
	AlertLevel      string        `json:"alert_level"`
	TotalChanges    int           `json:"total_changes"`
	AverageInterval int           `json:"average_interval"`
	OverdueCount    int           `json:"overdue_count"`
}

type AuditReport struct {
	Rows             []ChildAuditRow `json:"rows"`
	TotalChildren    int             `json:"total_children"`
	OverdueChildren  int             `json:"overdue_children"`
	AverageInterval  int             `json:"average_interval"`
	OverduePerChild  float64         `json:"overdue_per_child"`
	ComplianceScore  float64         `json:"compliance_score"`
}
