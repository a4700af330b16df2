package store

import (
	"context"

	"github.com/wazihub/wazi-go/internal/models"
)

// UserSource supplies the current user to domain stores. Reads are snapshots
// taken at call time, not reactive bindings.
type UserSource interface {
	User() *models.User
}

// SubscriptionSession is the session surface the payment store coordinates
// with: payment success is the sole trigger that activates a subscription.
type SubscriptionSession interface {
	UserSource
	UpdateSubscriptionStatus(ctx context.Context, status models.SubscriptionStatus) error
}
