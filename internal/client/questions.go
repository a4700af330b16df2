package client

import (
	"context"
	"net/http"

	"github.com/wazihub/wazi-go/internal/models"
)

func (c *Client) SubmitQuestion(ctx context.Context, text, userID string) (*models.Question, error) {
	var out models.Question
	body := map[string]string{"text": text, "userId": userID}
	if err := c.do(ctx, http.MethodPost, "/questions/create", body, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAllQuestions(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	if err := c.do(ctx, http.MethodGet, "/questions/all", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQuestion(ctx context.Context, questionID string) (*models.Question, error) {
	var out models.Question
	if err := c.do(ctx, http.MethodGet, "/questions/"+questionID, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadQuestions bulk-creates questions and returns the stored records.
func (c *Client) UploadQuestions(ctx context.Context, questions []models.Question, userID string) ([]models.Question, error) {
	var out []models.Question
	body := map[string]any{"questions": questions, "userId": userID}
	if err := c.do(ctx, http.MethodPost, "/questions/upload", body, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitResponse(ctx context.Context, questionID, responseText, userID string) (*models.Response, error) {
	var out models.Response
	body := map[string]string{"responseText": responseText, "userId": userID}
	if err := c.do(ctx, http.MethodPost, "/questions/"+questionID+"/responses", body, &out, false); err != nil {
		return nil, err
	}
	out.QuestionID = questionID
	return &out, nil
}

func (c *Client) GetResponses(ctx context.Context, questionID string) ([]models.Response, error) {
	var out []models.Response
	if err := c.do(ctx, http.MethodGet, "/questions/"+questionID+"/responses", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}
