package client

import (
	"context"
	"net/http"

	"github.com/wazihub/wazi-go/internal/models"
)

func (c *Client) GetRewards(ctx context.Context) ([]models.Reward, error) {
	var out []models.Reward
	if err := c.do(ctx, http.MethodGet, "/rewards", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClaimReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	var out models.Reward
	if err := c.do(ctx, http.MethodPost, "/rewards/"+rewardID+"/claim", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
