package store

import (
	"context"
	"io"
	"log/slog"

	"github.com/wazihub/wazi-go/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *models.User {
	return &models.User{
		ID:        "user-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

// userSourceStub hands a fixed user to stores that only read the session.
type userSourceStub struct {
	user *models.User
}

func (s *userSourceStub) User() *models.User { return s.user }

// subscriptionSessionStub records subscription activations without a real
// session store behind it.
type subscriptionSessionStub struct {
	user      *models.User
	updated   []models.SubscriptionStatus
	updateErr error
}

func (s *subscriptionSessionStub) User() *models.User { return s.user }

func (s *subscriptionSessionStub) UpdateSubscriptionStatus(_ context.Context, status models.SubscriptionStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, status)
	if s.user != nil {
		s.user.SubscriptionStatus = status
	}
	return nil
}
