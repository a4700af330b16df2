package client

import (
	"context"
	"net/http"

	"github.com/wazihub/wazi-go/internal/models"
)

// CreateSurveyInput is the create/update payload for a survey.
type CreateSurveyInput struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	PaymentOption string          `json:"paymentOption"`
	UserID        string          `json:"userId"`
	File          *models.FileRef `json:"file,omitempty"`
	Questions     any             `json:"questions,omitempty"`
}

func (c *Client) GetAllSurveys(ctx context.Context) ([]models.Survey, error) {
	var out []models.Survey
	if err := c.do(ctx, http.MethodGet, "/surveys", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSurvey(ctx context.Context, surveyID string) (*models.Survey, error) {
	var out models.Survey
	if err := c.do(ctx, http.MethodGet, "/surveys/"+surveyID, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSurvey(ctx context.Context, in CreateSurveyInput) (*models.Survey, error) {
	var out models.Survey
	if err := c.do(ctx, http.MethodPost, "/surveys", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSurvey(ctx context.Context, surveyID string, in CreateSurveyInput) (*models.Survey, error) {
	var out models.Survey
	if err := c.do(ctx, http.MethodPut, "/surveys/"+surveyID, in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSurvey(ctx context.Context, surveyID string) error {
	return c.do(ctx, http.MethodDelete, "/surveys/"+surveyID, nil, nil, false)
}

func (c *Client) SubmitSurveyResponse(ctx context.Context, surveyID string, answers map[string]string) (*models.SurveyResponse, error) {
	var out models.SurveyResponse
	body := map[string]any{"responses": answers}
	if err := c.do(ctx, http.MethodPost, "/surveys/"+surveyID+"/responses", body, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSurveyResponses(ctx context.Context, surveyID string) ([]models.SurveyResponse, error) {
	var out []models.SurveyResponse
	if err := c.do(ctx, http.MethodGet, "/surveys/"+surveyID+"/responses", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadSurveyFile pushes a local file to the server and returns its stored
// reference for inclusion in a survey payload.
func (c *Client) UploadSurveyFile(ctx context.Context, file models.FileUpload) (*models.FileRef, error) {
	var out models.FileRef
	part := &FilePart{Name: file.Name, Data: file.Data}
	if err := c.upload(ctx, "/surveys/upload", part, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
