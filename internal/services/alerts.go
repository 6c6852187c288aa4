package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"forma-backend/internal/models"
)

// AlertScheduler periodically sweeps for overdue diaper changes.
// Overdue findings are pushed to admins and the child's mother over
// websocket channels every sweep, while the mother is emailed at most
// once per diaper change (tracked by the alert_sent flag on the log).
type AlertScheduler struct {
	diapers  *DiaperService
	store    DiaperStore
	users    UserStore
	email    *EmailService
	pubsub   *redis.Client
	interval time.Duration
	stopChan chan struct{}
}

func NewAlertScheduler(diapers *DiaperService, store DiaperStore, users UserStore, email *EmailService, pubsub *redis.Client, interval time.Duration) *AlertScheduler {
	return &AlertScheduler{
		diapers:  diapers,
		store:    store,
		users:    users,
		email:    email,
		pubsub:   pubsub,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *AlertScheduler) Start() {
	if s.diapers == nil {
		return
	}

	go s.loop()

	log.Printf("Alert scheduler started (every %s)", s.interval)
}

func (s *AlertScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *AlertScheduler) loop() {
	// Run on startup as well as by interval.
	s.Sweep(context.Background())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Sweep(context.Background())
		}
	}
}

// Sweep runs one overdue evaluation and fans out notifications.
func (s *AlertScheduler) Sweep(ctx context.Context) {
	alerts, err := s.diapers.CheckOverdue(ctx)
	if err != nil {
		log.Printf("alert sweep: failed to check overdue: %v", err)
		return
	}

	for _, alert := range alerts {
		s.publish(ctx, "role_updates:admin", alert)
		s.publish(ctx, "user_updates:"+alert.Child.MotherID.String(), alert)

		if alert.LastChange.AlertSent {
			continue
		}
		mother, err := s.users.GetByID(ctx, alert.Child.MotherID)
		if err != nil {
			log.Printf("alert sweep: failed to load mother for child %s: %v", alert.Child.ID, err)
			continue
		}
		if err := s.email.SendOverdueAlertEmail(mother.Email, mother.Name, alert); err != nil {
			log.Printf("alert sweep: failed to email %s: %v", mother.Email, err)
			continue
		}
		if err := s.store.MarkAlertSent(ctx, alert.LastChange.ID); err != nil {
			log.Printf("alert sweep: failed to mark alert sent for log %s: %v", alert.LastChange.ID, err)
		}
	}
}

func (s *AlertScheduler) publish(ctx context.Context, channel string, alert models.OverdueAlert) {
	if s.pubsub == nil {
		return
	}

	payload, err := json.Marshal(models.WSMessage{
		Type:    models.WSTypeOverdueAlert,
		Payload: alert,
	})
	if err != nil {
		log.Printf("alert sweep: failed to marshal alert: %v", err)
		return
	}

	if err := s.pubsub.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("alert sweep: failed to publish to %s: %v", channel, err)
	}
}
