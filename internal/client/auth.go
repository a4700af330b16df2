package client

import (
	"context"
	"net/http"

	"github.com/wazihub/wazi-go/internal/models"
)

// AuthPayload is the reply to sign-in and sign-up.
type AuthPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type SignUpInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// SignIn authenticates with email and password. No auth header is attached.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthPayload, error) {
	var out AuthPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp creates an account. No auth header is attached.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) (*AuthPayload, error) {
	var out AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/signup", in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/signout", nil, nil, false)
}

type subscriptionStatusPayload struct {
	SubscriptionStatus models.SubscriptionStatus `json:"subscriptionStatus"`
}

// UpdateSubscriptionStatus persists the new status server-side and returns
// the status the server settled on.
func (c *Client) UpdateSubscriptionStatus(ctx context.Context, userID string, status models.SubscriptionStatus) (models.SubscriptionStatus, error) {
	var out subscriptionStatusPayload
	body := map[string]models.SubscriptionStatus{"status": status}
	if err := c.do(ctx, http.MethodPut, "/auth/"+userID+"/subscription-status", body, &out, false); err != nil {
		return "", err
	}
	return out.SubscriptionStatus, nil
}

func (c *Client) CheckSubscriptionStatus(ctx context.Context, userID string) (models.SubscriptionStatus, error) {
	var out subscriptionStatusPayload
	if err := c.do(ctx, http.MethodGet, "/auth/"+userID+"/subscription-status", nil, &out, false); err != nil {
		return "", err
	}
	return out.SubscriptionStatus, nil
}

// UpdateUser sends a partial user update and returns the merged record.
func (c *Client) UpdateUser(ctx context.Context, fields map[string]any) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users", fields, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
