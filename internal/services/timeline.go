package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"forma-backend/internal/models"
)

// TimelineService merges the five activity-log kinds into one
// chronologically ordered view of a child's day.
type TimelineService struct {
	food     FoodStore
	diapers  DiaperStore
	sessions SessionStore
	now      func() time.Time
}

func NewTimelineService(food FoodStore, diapers DiaperStore, sessions SessionStore) *TimelineService {
	return &TimelineService{
		food:     food,
		diapers:  diapers,
		sessions: sessions,
		now:      time.Now,
	}
}

// GetTimeline returns every activity entry for the child on the given
// calendar day (default today), newest first. The day is the half-open
// interval [startOfDay, startOfDay+24h).
func (s *TimelineService) GetTimeline(ctx context.Context, childID uuid.UUID, date *time.Time) ([]models.TimelineEntry, error) {
	day := s.now()
	if date != nil {
		day = *date
	}
	from := startOfDay(day)
	to := from.Add(24 * time.Hour)

	foodLogs, err := s.food.ListRange(ctx, childID, from, to)
	if err != nil {
		return nil, err
	}
	diaperLogs, err := s.diapers.ListRange(ctx, childID, from, to)
	if err != nil {
		return nil, err
	}
	sleepLogs, err := s.sessions.ListRange(ctx, childID, models.KindSleep, from, to)
	if err != nil {
		return nil, err
	}
	playLogs, err := s.sessions.ListRange(ctx, childID, models.KindPlay, from, to)
	if err != nil {
		return nil, err
	}
	cryLogs, err := s.sessions.ListRange(ctx, childID, models.KindCry, from, to)
	if err != nil {
		return nil, err
	}

	timeline := make([]models.TimelineEntry, 0, len(foodLogs)+len(diaperLogs)+len(sleepLogs)+len(playLogs)+len(cryLogs))

	for _, log := range foodLogs {
		timeline = append(timeline, models.TimelineEntry{
			ID:        log.ID,
			Type:      "food",
			Timestamp: log.TimeGiven,
			Caretaker: models.CaretakerRef{ID: log.CaretakerID, Name: log.CaretakerName},
			Details: models.FoodDetails{
				FoodType:  log.FoodType,
				Quantity:  log.Quantity,
				Unit:      log.Unit,
				TimeGiven: log.TimeGiven,
				Notes:     log.Notes,
			},
		})
	}
	for _, log := range diaperLogs {
		timeline = append(timeline, models.TimelineEntry{
			ID:        log.ID,
			Type:      "diaper",
			Timestamp: log.TimeChanged,
			Caretaker: models.CaretakerRef{ID: log.CaretakerID, Name: log.CaretakerName},
			Details: models.DiaperDetails{
				Status:      log.Status,
				TimeChanged: log.TimeChanged,
				Notes:       log.Notes,
			},
		})
	}
	for _, sess := range sleepLogs {
		timeline = append(timeline, models.TimelineEntry{
			ID:        sess.ID,
			Type:      "sleep",
			Timestamp: sess.StartTime,
			Caretaker: models.CaretakerRef{ID: sess.CaretakerID, Name: sess.CaretakerName},
			Details: models.SleepDetails{
				StartTime:       sess.StartTime,
				EndTime:         sess.EndTime,
				DurationMinutes: sess.DurationMinutes,
				Quality:         sess.Quality,
				IsActive:        sess.IsActive,
				Notes:           sess.Notes,
			},
		})
	}
	for _, sess := range playLogs {
		timeline = append(timeline, models.TimelineEntry{
			ID:        sess.ID,
			Type:      "play",
			Timestamp: sess.StartTime,
			Caretaker: models.CaretakerRef{ID: sess.CaretakerID, Name: sess.CaretakerName},
			Details: models.PlayDetails{
				PlayType:        sess.PlayType,
				ActivityLevel:   sess.ActivityLevel,
				StartTime:       sess.StartTime,
				EndTime:         sess.EndTime,
				DurationMinutes: sess.DurationMinutes,
				IsActive:        sess.IsActive,
				Notes:           sess.Notes,
			},
		})
	}
	for _, sess := range cryLogs {
		timeline = append(timeline, models.TimelineEntry{
			ID:        sess.ID,
			Type:      "cry",
			Timestamp: sess.StartTime,
			Caretaker: models.CaretakerRef{ID: sess.CaretakerID, Name: sess.CaretakerName},
			Details: models.CryDetails{
				Intensity:       sess.Intensity,
				Reason:          sess.Reason,
				StartTime:       sess.StartTime,
				EndTime:         sess.EndTime,
				DurationMinutes: sess.DurationMinutes,
				IsActive:        sess.IsActive,
				Notes:           sess.Notes,
			},
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.After(timeline[j].Timestamp)
	})

	return timeline, nil
}
