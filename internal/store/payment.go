package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wazihub/wazi-go/internal/client"
	"github.com/wazihub/wazi-go/internal/models"
)

// PaymentAPI is the slice of the remote client the payment store uses.
type PaymentAPI interface {
	InitiatePayment(ctx context.Context, in client.InitiatePaymentInput) (*models.Payment, error)
	GetAllPayments(ctx context.Context) ([]models.Payment, error)
	GetPaymentHistory(ctx context.Context, userID string) ([]models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.Payment, error)
}

// PaymentStore owns the signed-in user's payments. A successful initiation
// activates the user's subscription through the session store; nothing else
// in the app flips that switch.
type PaymentStore struct {
	observable

	stateMu  sync.RWMutex
	payments []models.Payment
	loading  bool
	fetchSeq uint64

	api     PaymentAPI
	session SubscriptionSession
	log     *slog.Logger
}

func NewPaymentStore(api PaymentAPI, session SubscriptionSession, log *slog.Logger) *PaymentStore {
	return &PaymentStore{api: api, session: session, log: log}
}

// InitiatePayment charges the given mobile-money account. On success the
// session's subscription is activated and the payment lands at the front of
// the list, with the server's validity window.
func (s *PaymentStore) InitiatePayment(ctx context.Context, amount int64, phoneNumber string, provider models.PaymentProvider, subType models.SubscriptionType) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("initiate a payment")
	}
	if amount <= 0 || phoneNumber == "" || !provider.Valid() || !subType.Valid() {
		return NewInvalidError("please fill all fields")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	payment, err := s.api.InitiatePayment(ctx, client.InitiatePaymentInput{
		Amount:           amount,
		PhoneNumber:      phoneNumber,
		Provider:         provider,
		SubscriptionType: subType,
		UserID:           user.ID,
	})
	if err != nil {
		return fmt.Errorf("initiate payment: %w", err)
	}

	if err := s.session.UpdateSubscriptionStatus(ctx, models.SubscriptionActive); err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}

	s.stateMu.Lock()
	s.payments = append([]models.Payment{*payment}, s.payments...)
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// FetchPayments loads all payments and keeps only the current user's.
func (s *PaymentStore) FetchPayments(ctx context.Context) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("fetch payments")
	}
	seq := s.beginFetch()
	defer s.setLoading(false)

	list, err := s.api.GetAllPayments(ctx)
	if err != nil {
		return fmt.Errorf("fetch payments: %w", err)
	}
	mine := make([]models.Payment, 0, len(list))
	for _, p := range list {
		if p.UserID == user.ID {
			mine = append(mine, p)
		}
	}

	s.stateMu.Lock()
	if seq != s.fetchSeq {
		s.stateMu.Unlock()
		s.log.Debug("discarding stale payment fetch", "seq", seq)
		return nil
	}
	s.payments = mine
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// FetchHistory replaces the list with the user's server-side payment history.
func (s *PaymentStore) FetchHistory(ctx context.Context) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("fetch payment history")
	}
	seq := s.beginFetch()
	defer s.setLoading(false)

	list, err := s.api.GetPaymentHistory(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("fetch payment history: %w", err)
	}

	s.stateMu.Lock()
	if seq != s.fetchSeq {
		s.stateMu.Unlock()
		s.log.Debug("discarding stale payment history fetch", "seq", seq)
		return nil
	}
	s.payments = list
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// UpdateStatus persists a status transition and mirrors the server's answer
// into the stored payment. A payment the store no longer holds is logged and
// skipped.
func (s *PaymentStore) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.api.UpdatePaymentStatus(ctx, paymentID, status)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}

	s.stateMu.Lock()
	found := false
	for i := range s.payments {
		if s.payments[i].ID == paymentID {
			s.payments[i].Status = updated.Status
			found = true
			break
		}
	}
	s.stateMu.Unlock()
	if !found {
		s.log.Warn("payment not found, status update dropped", "payment_id", paymentID)
		return nil
	}
	s.notify()
	return nil
}

// Payments returns a snapshot of the list.
func (s *PaymentStore) Payments() []models.Payment {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]models.Payment(nil), s.payments...)
}

func (s *PaymentStore) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

func (s *PaymentStore) beginFetch() uint64 {
	s.stateMu.Lock()
	s.loading = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.stateMu.Unlock()
	s.notify()
	return seq
}

func (s *PaymentStore) setLoading(v bool) {
	s.stateMu.Lock()
	s.loading = v
	s.stateMu.Unlock()
	s.notify()
}
