package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"forma-backend/internal/models"
)

func newDiaperTestService(diapers *fakeDiaperStore, children *fakeChildStore, now time.Time) *DiaperService {
	svc := NewDiaperService(diapers, children)
	svc.now = func() time.Time { return now }
	return svc
}

func TestClassifyAlert(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, models.AlertGreen},
		{119, models.AlertGreen},
		{120, models.AlertYellow},
		{180, models.AlertYellow},
		{181, models.AlertRed},
		{500, models.AlertRed},
	}

	for _, tc := range tests {
		if got := classifyAlert(tc.mins); got != tc.want {
			t.Errorf("classifyAlert(%d) = %s, want %s", tc.mins, got, tc.want)
		}
	}
}

func TestAverageIntervalMinutes(t *testing.T) {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	mk := func(mins int) *models.DiaperLog {
		return &models.DiaperLog{TimeChanged: base.Add(time.Duration(mins) * time.Minute)}
	}

	// Newest first: changes at minute 250, 100 and 0 give gaps of 150
	// and 100, averaging 125.
	logs := []*models.DiaperLog{mk(250), mk(100), mk(0)}
	if got := averageIntervalMinutes(logs); got != 125 {
		t.Errorf("expected average 125, got %d", got)
	}

	if got := averageIntervalMinutes([]*models.DiaperLog{mk(0)}); got != 0 {
		t.Errorf("expected 0 for a single record, got %d", got)
	}
	if got := averageIntervalMinutes(nil); got != 0 {
		t.Errorf("expected 0 for no records, got %d", got)
	}
}

func TestDiaperSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	childID := uuid.New()

	diapers := &fakeDiaperStore{logs: []*models.DiaperLog{
		{ID: uuid.New(), ChildID: childID, Status: "Clean", TimeChanged: now.Add(-6 * time.Hour), Notes: "mild rash on left leg"},
		{ID: uuid.New(), ChildID: childID, Status: "Wet", TimeChanged: now.Add(-130 * time.Minute)},
	}}
	svc := newDiaperTestService(diapers, newFakeChildStore(), now)

	summary, err := svc.GetSummary(context.Background(), childID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalChanges != 2 {
		t.Errorf("expected 2 changes today, got %d", summary.TotalChanges)
	}
	if summary.TimeSinceLastChange == nil || *summary.TimeSinceLastChange != 130 {
		t.Errorf("expected 130 minutes since last change, got %v", summary.TimeSinceLastChange)
	}
	if summary.AlertLevel != models.AlertYellow {
		t.Errorf("expected yellow at 130 minutes, got %s", summary.AlertLevel)
	}
	if summary.CurrentStatus != "Wet" {
		t.Errorf("expected current status Wet, got %s", summary.CurrentStatus)
	}
	if summary.DailyStats.LastRashNote == nil || *summary.DailyStats.LastRashNote != "mild rash on left leg" {
		t.Errorf("expected rash note surfaced, got %v", summary.DailyStats.LastRashNote)
	}
}

func TestDiaperSummaryNoRecords(t *testing.T) {
	svc := newDiaperTestService(&fakeDiaperStore{}, newFakeChildStore(), time.Now())

	summary, err := svc.GetSummary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.AlertLevel != models.AlertGreen {
		t.Errorf("expected green with no records, got %s", summary.AlertLevel)
	}
	if summary.TimeSinceLastChange != nil {
		t.Errorf("expected nil time since change, got %v", summary.TimeSinceLastChange)
	}
	if summary.CurrentStatus != "Unknown" {
		t.Errorf("expected status Unknown, got %s", summary.CurrentStatus)
	}
}

func TestCheckOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	overdueChild := &models.Child{Name: "Aruzhan", IsActive: true}
	freshChild := &models.Child{Name: "Dias", IsActive: true}
	noHistoryChild := &models.Child{Name: "Miras", IsActive: true}
	children := newFakeChildStore(overdueChild, freshChild, noHistoryChild)

	diapers := &fakeDiaperStore{logs: []*models.DiaperLog{
		{ID: uuid.New(), ChildID: overdueChild.ID, TimeChanged: now.Add(-200 * time.Minute)},
		{ID: uuid.New(), ChildID: freshChild.ID, TimeChanged: now.Add(-30 * time.Minute)},
	}}
	svc := newDiaperTestService(diapers, children, now)

	alerts, err := svc.CheckOverdue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Child.Name != "Aruzhan" {
		t.Errorf("expected alert for Aruzhan, got %s", alerts[0].Child.Name)
	}
	if alerts[0].HoursSinceChange != "3.3" {
		t.Errorf("expected 3.3 hours, got %s", alerts[0].HoursSinceChange)
	}
	want := "Diaper change overdue for Aruzhan (3.3h ago)"
	if alerts[0].Message != want {
		t.Errorf("expected message %q, got %q", want, alerts[0].Message)
	}
}

func TestCheckOverdueBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	child := &models.Child{Name: "Aruzhan", IsActive: true}
	children := newFakeChildStore(child)

	// Exactly 180 minutes is not overdue yet.
	diapers := &fakeDiaperStore{logs: []*models.DiaperLog{
		{ID: uuid.New(), ChildID: child.ID, TimeChanged: now.Add(-180 * time.Minute)},
	}}
	svc := newDiaperTestService(diapers, children, now)

	alerts, err := svc.CheckOverdue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts at exactly 180 minutes, got %d", len(alerts))
	}
}

func TestAuditReport(t *testing.T) {
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	redChild := &models.Child{ChildCode: "CH-001", Name: "Aruzhan", IsActive: true}
	greenChild := &models.Child{ChildCode: "CH-002", Name: "Dias", IsActive: true}
	quietChild := &models.Child{ChildCode: "CH-003", Name: "Miras", IsActive: true}
	children := newFakeChildStore(redChild, greenChild, quietChild)

	diapers := &fakeDiaperStore{logs: []*models.DiaperLog{
		// Aruzhan: last change 300 minutes ago, one overdue gap (240 min).
		{ID: uuid.New(), ChildID: redChild.ID, ChildName: "Aruzhan", TimeChanged: now.Add(-300 * time.Minute)},
		{ID: uuid.New(), ChildID: redChild.ID, ChildName: "Aruzhan", TimeChanged: now.Add(-540 * time.Minute)},
		// Dias: fresh, all gaps within bounds.
		{ID: uuid.New(), ChildID: greenChild.ID, ChildName: "Dias", TimeChanged: now.Add(-30 * time.Minute)},
		{ID: uuid.New(), ChildID: greenChild.ID, ChildName: "Dias", TimeChanged: now.Add(-130 * time.Minute)},
	}}
	svc := newDiaperTestService(diapers, children, now)

	report, err := svc.Audit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Miras has no diaper history and must not appear.
	if report.TotalChildren != 2 {
		t.Fatalf("expected 2 audited children, got %d", report.TotalChildren)
	}
	if report.OverdueChildren != 1 {
		t.Errorf("expected 1 overdue child, got %d", report.OverdueChildren)
	}
	if report.ComplianceScore != 50.0 {
		t.Errorf("expected compliance score 50.0, got %v", report.ComplianceScore)
	}
	if report.OverduePerChild != 0.5 {
		t.Errorf("expected 0.5 overdue gaps per child, got %v", report.OverduePerChild)
	}

	rows := make(map[string]models.ChildAuditRow)
	for _, row := range report.Rows {
		rows[row.ChildName] = row
	}

	aruzhan := rows["Aruzhan"]
	if aruzhan.AlertLevel != models.AlertRed {
		t.Errorf("expected Aruzhan red, got %s", aruzhan.AlertLevel)
	}
	if aruzhan.OverdueCount != 1 {
		t.Errorf("expected 1 overdue gap for Aruzhan, got %d", aruzhan.OverdueCount)
	}
	if aruzhan.ChildCode != "CH-001" {
		t.Errorf("expected child code CH-001, got %s", aruzhan.ChildCode)
	}
	if aruzhan.AverageInterval != 240 {
		t.Errorf("expected average interval 240, got %d", aruzhan.AverageInterval)
	}

	dias := rows["Dias"]
	if dias.AlertLevel != models.AlertGreen {
		t.Errorf("expected Dias green, got %s", dias.AlertLevel)
	}
	if dias.OverdueCount != 0 {
		t.Errorf("expected no overdue gaps for Dias, got %d", dias.OverdueCount)
	}
}

func TestAuditReportEmpty(t *testing.T) {
	svc := newDiaperTestService(&fakeDiaperStore{}, newFakeChildStore(), time.Now())

	report, err := svc.Audit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalChildren != 0 {
		t.Errorf("expected no audited children, got %d", report.TotalChildren)
	}
	if report.ComplianceScore != 100 {
		t.Errorf("expected perfect score with nothing to audit, got %v", report.ComplianceScore)
	}
	if len(report.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(report.Rows))
	}
}
