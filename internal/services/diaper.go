package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"forma-backend/internal/models"
)

// Minutes since the last change before a child moves to the yellow and
// red alert bands.
const (
	alertYellowMinutes = 120
	alertRedMinutes    = 180
)

// DiaperService records diaper changes and derives freshness alerts and
// the system-wide compliance audit.
type DiaperService struct {
	diapers  DiaperStore
	children ChildStore
	now      func() time.Time
}

func NewDiaperService(diapers DiaperStore, children ChildStore) *DiaperService {
	return &DiaperService{
		diapers:  diapers,
		children: children,
		now:      time.Now,
	}
}

func (s *DiaperService) Add(ctx context.Context, caretakerID uuid.UUID, req models.AddDiaperLogRequest) (*models.DiaperLog, error) {
	fieldErrors := make(map[string]string)
	if req.ChildID == uuid.Nil {
		fieldErrors["child_id"] = "Child ID is required"
	}
	if !models.ValidDiaperStatus(req.Status) {
		fieldErrors["status"] = "Status must be Clean, Wet or Soiled"
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

	log := &models.DiaperLog{
		ChildID:     req.ChildID,
		CaretakerID: caretakerID,
		Status:      req.Status,
		TimeChecked: s.now(),
		TimeChanged: s.now(),
		Notes:       req.Notes,
	}
	if req.TimeChecked != nil {
		log.TimeChecked = *req.TimeChecked
	}
	if req.TimeChanged != nil {
		log.TimeChanged = *req.TimeChanged
	}

	if err := s.diapers.Create(ctx, log); err != nil {
		return nil, err
	}
	log.ChildName = child.Name
	return log, nil
}

func (s *DiaperService) ListByChild(ctx context.Context, childID uuid.UUID, from, to *time.Time) ([]*models.DiaperLog, error) {
	return s.diapers.ListByChild(ctx, childID, from, to)
}

func (s *DiaperService) ListAll(ctx context.Context) ([]*models.DiaperLog, error) {
	return s.diapers.ListAll(ctx)
}

func (s *DiaperService) Delete(ctx context.Context, id, requesterID uuid.UUID, requesterRole string) error {
	log, err := s.diapers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Diaper log not found"}
		}
		return err
	}

	if log.CaretakerID != requesterID && requesterRole != models.RoleAdmin {
		return &ForbiddenError{Message: "Not authorized to delete this log"}
	}

	return s.diapers.Delete(ctx, id)
}

// GetSummary classifies diaper-change freshness for one child and rolls
// up today's stats.
func (s *DiaperService) GetSummary(ctx context.Context, childID uuid.UUID) (*models.DiaperSummary, error) {
	from := startOfDay(s.now())
	logs, err := s.diapers.ListRange(ctx, childID, from, from.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	summary := &models.DiaperSummary{
		TotalChanges:  len(logs),
		AlertLevel:    models.AlertGreen,
		CurrentStatus: "Unknown",
		DailyStats: models.DiaperDailyStats{
			TotalChangesToday: len(logs),
			AverageInterval:   averageIntervalMinutes(logs),
		},
	}

	if len(logs) > 0 {
		last := logs[0]
		mins := minutesBetween(last.TimeChanged, s.now())
		summary.LastChange = last
		summary.TimeSinceLastChange = &mins
		summary.AlertLevel = classifyAlert(mins)
		summary.CurrentStatus = last.Status
	}

	// Most recent note mentioning a rash, if any
	for _, log := range logs {
		if log.Notes != "" && strings.Contains(strings.ToLower(log.Notes), "rash") {
			note := log.Notes
			summary.DailyStats.LastRashNote = &note
			break
		}
	}

	return summary, nil
}

// CheckOverdue sweeps every active child and reports those whose last
// diaper change is older than the red threshold. Stateless: each call is
// a fresh evaluation with no memory of alerts already raised.
func (s *DiaperService) CheckOverdue(ctx context.Context) ([]models.OverdueAlert, error) {
	children, err := s.children.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	alerts := []models.OverdueAlert{}
	for _, child := range children {
		last, err := s.diapers.LatestForChild(ctx, child.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}

		if minutesBetween(last.TimeChanged, s.now()) > alertRedMinutes {
			hours := fmt.Sprintf("%.1f", s.now().Sub(last.TimeChanged).Hours())
			alerts = append(alerts, models.OverdueAlert{
				Child:            child,
				LastChange:       last,
				HoursSinceChange: hours,
				Message:          fmt.Sprintf("Diaper change overdue for %s (%sh ago)", child.Name, hours),
			})
		}
	}

	return alerts, nil
}

// Audit groups every diaper log by child and computes the compliance
// dashboard: per-child rollups plus aggregate metrics. Children with no
// diaper history do not appear and do not dilute the score.
func (s *DiaperService) Audit(ctx context.Context) (*models.AuditReport, error) {
	logs, err := s.diapers.ListAllForAudit(ctx)
	if err != nil {
		return nil, err
	}
	children, err := s.children.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	codes := make(map[uuid.UUID]string, len(children))
	for _, child := range children {
		codes[child.ID] = child.ChildCode
	}

	// Group logs per child, preserving first-seen order. Logs arrive
	// newest first, so each group is already sorted descending.
	groups := make(map[uuid.UUID][]*models.DiaperLog)
	var order []uuid.UUID
	for _, log := range logs {
		if _, seen := groups[log.ChildID]; !seen {
			order = append(order, log.ChildID)
		}
		groups[log.ChildID] = append(groups[log.ChildID], log)
	}

	report := &models.AuditReport{Rows: []models.ChildAuditRow{}}
	intervalSum := 0
	overdueSum := 0

	for _, childID := range order {
		group := groups[childID]
		last := group[0]
		mins := minutesBetween(last.TimeChanged, s.now())
		lastChange := last.TimeChanged

		overdueCount := 0
		for i := 0; i < len(group)-1; i++ {
			if group[i].TimeChanged.Sub(group[i+1].TimeChanged) > alertRedMinutes*time.Minute {
				overdueCount++
			}
		}

		row := models.ChildAuditRow{
			ChildID:         childID.String(),
			ChildCode:       codes[childID],
			ChildName:       last.ChildName,
			Caretaker:       &models.CaretakerRef{ID: last.CaretakerID, Name: last.CaretakerName},
			LastChange:      &lastChange,
			TimeSinceChange: &mins,
			AlertLevel:      classifyAlert(mins),
			TotalChanges:    len(group),
			AverageInterval: averageIntervalMinutes(group),
			OverdueCount:    overdueCount,
		}

		if row.AlertLevel == models.AlertRed {
			report.OverdueChildren++
		}
		intervalSum += row.AverageInterval
		overdueSum += overdueCount
		report.Rows = append(report.Rows, row)
	}

	report.TotalChildren = len(report.Rows)
	if report.TotalChildren == 0 {
		report.ComplianceScore = 100
		return report, nil
	}

	report.AverageInterval = intervalSum / report.TotalChildren
	report.OverduePerChild = round1(float64(overdueSum) / float64(report.TotalChildren))
	report.ComplianceScore = round1(math.Max(0, 100-float64(report.OverdueChildren)/float64(report.TotalChildren)*100))

	return report, nil
}

// classifyAlert maps minutes since the last change to an alert level.
// Exactly 120 is yellow, exactly 180 is still yellow, 181 is red.
func classifyAlert(mins int) string {
	switch {
	case mins > alertRedMinutes:
		return models.AlertRed
	case mins >= alertYellowMinutes:
		return models.AlertYellow
	default:
		return models.AlertGreen
	}
}

// averageIntervalMinutes computes the floored mean gap between
// consecutive changes. Logs must be sorted newest first. Zero if fewer
// than two records.
func averageIntervalMinutes(logs []*models.DiaperLog) int {
	if len(logs) < 2 {
		return 0
	}
	var total time.Duration
	for i := 0; i < len(logs)-1; i++ {
		total += logs[i].TimeChanged.Sub(logs[i+1].TimeChanged)
	}
	return int(total / time.Duration(len(logs)-1) / time.Minute)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
