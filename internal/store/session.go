package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wazihub/wazi-go/internal/client"
	"github.com/wazihub/wazi-go/internal/models"
	"github.com/wazihub/wazi-go/internal/storage"
)

// SessionAPI is the slice of the remote client the session store depends on.
type SessionAPI interface {
	SignIn(ctx context.Context, email, password string) (*client.AuthPayload, error)
	SignUp(ctx context.Context, in client.SignUpInput) (*client.AuthPayload, error)
	SignOut(ctx context.Context) error
	UpdateSubscriptionStatus(ctx context.Context, userID string, status models.SubscriptionStatus) (models.SubscriptionStatus, error)
	CheckSubscriptionStatus(ctx context.Context, userID string) (models.SubscriptionStatus, error)
}

// UserUpdate is a partial user edit; nil fields are left untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
	Avatar    *string
}

// SessionStore owns the authenticated user, the bearer token, and the session
// loading flag. Token and user are set together, cleared together, and
// persisted together.
type SessionStore struct {
	observable

	stateMu sync.RWMutex
	user    *models.User
	token   string
	loading bool

	api     SessionAPI
	storage storage.Adapter
	log     *slog.Logger
	now     func() time.Time
}

func NewSessionStore(api SessionAPI, adapter storage.Adapter, log *slog.Logger) *SessionStore {
	return &SessionStore{
		loading: true,
		api:     api,
		storage: adapter,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Hydrate restores the persisted session. An adapter failure is recoverable:
// it is reported and the session stays empty. The loading flag clears no
// matter what happened.
func (s *SessionStore) Hydrate(ctx context.Context) error {
	defer s.setLoading(false)

	token, haveToken, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		s.log.Warn("session hydrate failed", "error", err)
		return NewUnavailableError("failed to load authentication state")
	}
	rawUser, haveUser, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		s.log.Warn("session hydrate failed", "error", err)
		return NewUnavailableError("failed to load authentication state")
	}
	if !haveToken || !haveUser {
		return nil
	}
	if s.tokenExpired(token) {
		s.log.Info("persisted token expired, discarding session")
		s.clearPersisted(ctx)
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn("persisted user unreadable, discarding session", "error", err)
		s.clearPersisted(ctx)
		return NewUnavailableError("failed to load authentication state")
	}

	s.stateMu.Lock()
	s.token = token
	s.user = &user
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// tokenExpired inspects the token's JWT exp claim without verifying the
// signature (the client has no signing key). Opaque tokens pass through.
func (s *SessionStore) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}

func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return NewInvalidError("email/password required")
	}
	s.setLoading(true)
	defer s.setLoading(false)

	payload, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if payload.Token == "" {
		s.log.Warn("sign-in reply carried no token")
		return nil
	}
	s.adoptSession(ctx, payload)
	return nil
}

func (s *SessionStore) SignUp(ctx context.Context, email, password, firstName, lastName, phone string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return NewInvalidError("email/password required")
	}
	s.setLoading(true)
	defer s.setLoading(false)

	payload, err := s.api.SignUp(ctx, client.SignUpInput{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	})
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	if payload.Token == "" {
		s.log.Warn("sign-up reply carried no token")
		return nil
	}
	s.adoptSession(ctx, payload)
	return nil
}

// Logout clears the session locally and in storage even when the remote
// sign-out fails; the remote error is returned so the caller can surface it.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	remoteErr := s.api.SignOut(ctx)

	s.stateMu.Lock()
	s.user = nil
	s.token = ""
	s.stateMu.Unlock()
	s.clearPersisted(ctx)
	s.notify()

	if remoteErr != nil {
		return fmt.Errorf("sign out: %w", remoteErr)
	}
	return nil
}

// UpdateUser merges a partial edit into the current user and persists the
// merged record. A persistence failure is logged, not returned; callers do
// not wait on it. Without a current user this is a no-op.
func (s *SessionStore) UpdateUser(ctx context.Context, updates UserUpdate) {
	s.stateMu.Lock()
	if s.user == nil {
		s.stateMu.Unlock()
		return
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&s.user.Email, updates.Email)
	apply(&s.user.FirstName, updates.FirstName)
	apply(&s.user.LastName, updates.LastName)
	apply(&s.user.Phone, updates.Phone)
	apply(&s.user.Avatar, updates.Avatar)
	merged := *s.user
	s.stateMu.Unlock()

	s.persistUser(ctx, &merged)
	s.notify()
}

// UpdateSubscriptionStatus persists the new status server-side, then mirrors
// the server's answer into the user record. Without a current user this is a
// no-op.
func (s *SessionStore) UpdateSubscriptionStatus(ctx context.Context, status models.SubscriptionStatus) error {
	user := s.User()
	if user == nil {
		return nil
	}
	settled, err := s.api.UpdateSubscriptionStatus(ctx, user.ID, status)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	s.applySubscriptionStatus(ctx, settled)
	return nil
}

// CheckSubscriptionStatus refreshes the subscription status from the server.
func (s *SessionStore) CheckSubscriptionStatus(ctx context.Context) error {
	user := s.User()
	if user == nil {
		return nil
	}
	settled, err := s.api.CheckSubscriptionStatus(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("check subscription status: %w", err)
	}
	s.applySubscriptionStatus(ctx, settled)
	return nil
}

func (s *SessionStore) applySubscriptionStatus(ctx context.Context, status models.SubscriptionStatus) {
	s.stateMu.Lock()
	if s.user == nil {
		s.stateMu.Unlock()
		return
	}
	s.user.SubscriptionStatus = status
	updated := *s.user
	s.stateMu.Unlock()

	s.persistUser(ctx, &updated)
	s.notify()
}

// User returns a snapshot of the current user, or nil when signed out.
func (s *SessionStore) User() *models.User {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) Token() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.token
}

func (s *SessionStore) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

func (s *SessionStore) adoptSession(ctx context.Context, payload *client.AuthPayload) {
	user := payload.User
	s.stateMu.Lock()
	s.token = payload.Token
	s.user = &user
	s.stateMu.Unlock()

	if err := s.storage.Set(ctx, storage.KeyToken, payload.Token); err != nil {
		s.log.Warn("persist token failed", "error", err)
	}
	s.persistUser(ctx, &user)
	s.notify()
}

func (s *SessionStore) persistUser(ctx context.Context, user *models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn("encode user failed", "error", err)
		return
	}
	if err := s.storage.Set(ctx, storage.KeyUser, string(raw)); err != nil {
		s.log.Warn("persist user failed", "error", err)
	}
}

func (s *SessionStore) clearPersisted(ctx context.Context) {
	if err := s.storage.Remove(ctx, storage.KeyToken); err != nil {
		s.log.Warn("remove persisted token failed", "error", err)
	}
	if err := s.storage.Remove(ctx, storage.KeyUser); err != nil {
		s.log.Warn("remove persisted user failed", "error", err)
	}
}

func (s *SessionStore) setLoading(v bool) {
	s.stateMu.Lock()
	s.loading = v
	s.stateMu.Unlock()
	s.notify()
}
