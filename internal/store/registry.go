package store

import (
	"context"
	"io"
	"log/slog"

	"github.com/wazihub/wazi-go/internal/client"
	"github.com/wazihub/wazi-go/internal/notify"
	"github.com/wazihub/wazi-go/internal/storage"
)

// Stores is the process-wide registry of store singletons. It is built once
// at startup and handed to consumers explicitly; there is no ambient global.
type Stores struct {
	Session       *SessionStore
	Questions     *QuestionStore
	Surveys       *SurveyStore
	SurveyForm    *SurveyFormStore
	Videos        *VideoStore
	Payments      *PaymentStore
	Rewards       *RewardStore
	Notifications *NotificationStore
}

// Deps are the external capabilities the registry wires into the stores.
type Deps struct {
	API       *client.Client
	Storage   storage.Adapter
	Scheduler notify.Scheduler
	Logger    *slog.Logger
}

// NewStores builds every store and hydrates the session from storage. A
// hydration failure is recoverable: it is logged and the registry starts with
// an empty session.
func NewStores(ctx context.Context, deps Deps) *Stores {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = notify.NoopScheduler{}
	}

	session := NewSessionStore(deps.API, deps.Storage, log.With("store", "session"))
	if err := session.Hydrate(ctx); err != nil {
		log.Warn("session hydration failed, starting signed out", "error", err)
	}

	return &Stores{
		Session:       session,
		Questions:     NewQuestionStore(deps.API, session, log.With("store", "question")),
		Surveys:       NewSurveyStore(deps.API, session, log.With("store", "survey")),
		SurveyForm:    NewSurveyFormStore(deps.API, session, log.With("store", "surveyform")),
		Videos:        NewVideoStore(deps.API, session, log.With("store", "video")),
		Payments:      NewPaymentStore(deps.API, session, log.With("store", "payment")),
		Rewards:       NewRewardStore(deps.API, session, log.With("store", "reward")),
		Notifications: NewNotificationStore(ctx, scheduler, log.With("store", "notification")),
	}
}
