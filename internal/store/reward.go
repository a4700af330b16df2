package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wazihub/wazi-go/internal/models"
)

// RewardAPI is the slice of the remote client the reward store uses.
type RewardAPI interface {
	GetRewards(ctx context.Context) ([]models.Reward, error)
	ClaimReward(ctx context.Context, rewardID string) (*models.Reward, error)
}

// RewardStore owns the reward catalog and claim state.
type RewardStore struct {
	observable

	stateMu  sync.RWMutex
	rewards  []models.Reward
	loading  bool
	fetchSeq uint64

	api     RewardAPI
	session UserSource
	log     *slog.Logger
}

func NewRewardStore(api RewardAPI, session UserSource, log *slog.Logger) *RewardStore {
	return &RewardStore{api: api, session: session, log: log}
}

// FetchRewards replaces the catalog with the server's list.
func (s *RewardStore) FetchRewards(ctx context.Context) error {
	seq := s.beginFetch()
	defer s.setLoading(false)

	list, err := s.api.GetRewards(ctx)
	if err != nil {
		return fmt.Errorf("fetch rewards: %w", err)
	}

	s.stateMu.Lock()
	if seq != s.fetchSeq {
		s.stateMu.Unlock()
		s.log.Debug("discarding stale reward fetch", "seq", seq)
		return nil
	}
	s.rewards = list
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// ClaimReward claims a reward and mirrors the server's record into the
// catalog. A reward the store no longer holds is logged and skipped.
func (s *RewardStore) ClaimReward(ctx context.Context, rewardID string) error {
	if s.session.User() == nil {
		return errNotLoggedIn("claim a reward")
	}
	claimed, err := s.api.ClaimReward(ctx, rewardID)
	if err != nil {
		return fmt.Errorf("claim reward: %w", err)
	}

	s.stateMu.Lock()
	found := false
	for i := range s.rewards {
		if s.rewards[i].ID == rewardID {
			s.rewards[i] = *claimed
			found = true
			break
		}
	}
	s.stateMu.Unlock()
	if !found {
		s.log.Warn("reward not found, claim dropped", "reward_id", rewardID)
		return nil
	}
	s.notify()
	return nil
}

// Rewards returns a snapshot of the catalog.
func (s *RewardStore) Rewards() []models.Reward {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]models.Reward(nil), s.rewards...)
}

func (s *RewardStore) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

func (s *RewardStore) beginFetch() uint64 {
	s.stateMu.Lock()
	s.loading = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.stateMu.Unlock()
	s.notify()
	return seq
}

func (s *RewardStore) setLoading(v bool) {
	s.stateMu.Lock()
	s.loading = v
	s.stateMu.Unlock()
	s.notify()
}
