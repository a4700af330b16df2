package client

import (
	"context"
	"net/http"

	"github.com/wazihub/wazi-go/internal/models"
)

type InitiatePaymentInput struct {
	Amount           int64                   `json:"amount"`
	PhoneNumber      string                  `json:"phoneNumber"`
	Provider         models.PaymentProvider  `json:"provider"`
	SubscriptionType models.SubscriptionType `json:"subscriptionType"`
	UserID           string                  `json:"userId"`
}

func (c *Client) InitiatePayment(ctx context.Context, in InitiatePaymentInput) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodPost, "/payments/initiate", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.do(ctx, http.MethodGet, "/payments", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPaymentHistory(ctx context.Context, userID string) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.do(ctx, http.MethodGet, "/users/"+userID+"/payments", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.Payment, error) {
	var out models.Payment
	body := map[string]models.PaymentStatus{"status": status}
	if err := c.do(ctx, http.MethodPut, "/payments/"+paymentID+"/status", body, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
