package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/wazihub/wazi-go/internal/notify"
)

// NotificationRecord is one delivered local notification.
type NotificationRecord struct {
	ID    string
	Title string
	Body  string
}

// NotificationStore schedules immediate local notifications and keeps an
// in-memory log of what was sent. OS permission is requested once, at
// construction, if not already granted.
type NotificationStore struct {
	observable

	stateMu sync.RWMutex
	sent    []NotificationRecord

	scheduler notify.Scheduler
	log       *slog.Logger
}

func NewNotificationStore(ctx context.Context, scheduler notify.Scheduler, log *slog.Logger) *NotificationStore {
	s := &NotificationStore{scheduler: scheduler, log: log}
	granted, err := scheduler.PermissionGranted(ctx)
	if err != nil {
		log.Warn("notification permission check failed", "error", err)
		return s
	}
	if !granted {
		if err := scheduler.RequestPermission(ctx); err != nil {
			log.Warn("notification permission request failed", "error", err)
		}
	}
	return s
}

// Send schedules an immediate notification and appends it to the log.
func (s *NotificationStore) Send(ctx context.Context, title, body string) error {
	id, err := s.scheduler.Schedule(ctx, title, body)
	if err != nil {
		return fmt.Errorf("schedule notification: %w", err)
	}
	if id == "" {
		id = uuid.NewString()
	}

	s.stateMu.Lock()
	s.sent = append(s.sent, NotificationRecord{ID: id, Title: title, Body: body})
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// Sent returns a snapshot of the delivery log.
func (s *NotificationStore) Sent() []NotificationRecord {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]NotificationRecord(nil), s.sent...)
}
