// Package notify abstracts local push-notification scheduling, the one OS
// side effect the store layer performs.
package notify

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Scheduler is the device notification capability.
type Scheduler interface {
	// PermissionGranted reports whether the OS permission is already held.
	PermissionGranted(ctx context.Context) (bool, error)
	// RequestPermission asks the OS for notification permission.
	RequestPermission(ctx context.Context) error
	// Schedule fires an immediate notification and returns its id.
	Schedule(ctx context.Context, title, body string) (string, error)
}

// LogScheduler writes notifications to a logger instead of a device. It backs
// the CLI and any environment without a notification service.
type LogScheduler struct {
	log     *slog.Logger
	granted bool
}

func NewLogScheduler(log *slog.Logger) *LogScheduler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogScheduler{log: log}
}

func (s *LogScheduler) PermissionGranted(context.Context) (bool, error) {
	return s.granted, nil
}

func (s *LogScheduler) RequestPermission(context.Context) error {
	s.granted = true
	return nil
}

func (s *LogScheduler) Schedule(_ context.Context, title, body string) (string, error) {
	id := uuid.NewString()
	s.log.Info("notification", "id", id, "title", title, "body", body)
	return id, nil
}

// NoopScheduler drops everything. Used when notifications are disabled.
type NoopScheduler struct{}

func (NoopScheduler) PermissionGranted(context.Context) (bool, error) { return true, nil }
func (NoopScheduler) RequestPermission(context.Context) error         { return nil }
func (NoopScheduler) Schedule(_ context.Context, _, _ string) (string, error) {
	return uuid.NewString(), nil
}
