package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wazihub/wazi-go/internal/client"
	"github.com/wazihub/wazi-go/internal/models"
)

// SurveyAPI is the slice of the remote client the survey store uses.
type SurveyAPI interface {
	GetAllSurveys(ctx context.Context) ([]models.Survey, error)
	CreateSurvey(ctx context.Context, in client.CreateSurveyInput) (*models.Survey, error)
	UpdateSurvey(ctx context.Context, surveyID string, in client.CreateSurveyInput) (*models.Survey, error)
	DeleteSurvey(ctx context.Context, surveyID string) error
	SubmitSurveyResponse(ctx context.Context, surveyID string, answers map[string]string) (*models.SurveyResponse, error)
	GetSurveyResponses(ctx context.Context, surveyID string) ([]models.SurveyResponse, error)
	UploadSurveyFile(ctx context.Context, file models.FileUpload) (*models.FileRef, error)
}

// SurveyStore owns the signed-in user's surveys plus the single pending file
// selection for the next upload.
type SurveyStore struct {
	observable

	stateMu      sync.RWMutex
	surveys      []models.Survey
	loading      bool
	fetchSeq     uint64
	selectedFile *models.FileUpload

	api     SurveyAPI
	session UserSource
	log     *slog.Logger
}

func NewSurveyStore(api SurveyAPI, session UserSource, log *slog.Logger) *SurveyStore {
	return &SurveyStore{api: api, session: session, log: log}
}

// SetSelectedFile stages (or clears, with nil) the file for the next survey.
func (s *SurveyStore) SetSelectedFile(file *models.FileUpload) {
	s.stateMu.Lock()
	s.selectedFile = file
	s.stateMu.Unlock()
	s.notify()
}

func (s *SurveyStore) SelectedFile() *models.FileUpload {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.selectedFile
}

// CreateSurvey uploads the staged file, creates the survey around its
// reference, and prepends the result. All fields and a staged file are
// required up front.
func (s *SurveyStore) CreateSurvey(ctx context.Context, title, description, paymentOption string) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("create a survey")
	}
	s.stateMu.RLock()
	file := s.selectedFile
	s.stateMu.RUnlock()
	if title == "" || description == "" || paymentOption == "" || file == nil {
		return NewInvalidError("please fill all fields and select a file")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	ref, err := s.api.UploadSurveyFile(ctx, *file)
	if err != nil {
		return fmt.Errorf("upload survey file: %w", err)
	}
	created, err := s.api.CreateSurvey(ctx, client.CreateSurveyInput{
		Title:         title,
		Description:   description,
		PaymentOption: paymentOption,
		UserID:        user.ID,
		File:          ref,
	})
	if err != nil {
		return fmt.Errorf("create survey: %w", err)
	}

	s.stateMu.Lock()
	s.surveys = append([]models.Survey{*created}, s.surveys...)
	s.selectedFile = nil
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// FetchSurveys loads all surveys and keeps only the current user's. Stale
// results are discarded.
func (s *SurveyStore) FetchSurveys(ctx context.Context) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("fetch surveys")
	}
	seq := s.beginFetch()
	defer s.setLoading(false)

	list, err := s.api.GetAllSurveys(ctx)
	if err != nil {
		return fmt.Errorf("fetch surveys: %w", err)
	}
	mine := make([]models.Survey, 0, len(list))
	for _, sv := range list {
		if sv.UserID == user.ID {
			mine = append(mine, sv)
		}
	}

	s.stateMu.Lock()
	if seq != s.fetchSeq {
		s.stateMu.Unlock()
		s.log.Debug("discarding stale survey fetch", "seq", seq)
		return nil
	}
	s.surveys = mine
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// UpdateSurvey persists an edit and reconciles the stored copy in place. An
// entity the store no longer holds is logged and skipped.
func (s *SurveyStore) UpdateSurvey(ctx context.Context, surveyID string, title, description, paymentOption string) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("update a survey")
	}
	updated, err := s.api.UpdateSurvey(ctx, surveyID, client.CreateSurveyInput{
		Title:         title,
		Description:   description,
		PaymentOption: paymentOption,
		UserID:        user.ID,
	})
	if err != nil {
		return fmt.Errorf("update survey: %w", err)
	}

	s.stateMu.Lock()
	replaced := false
	for i := range s.surveys {
		if s.surveys[i].ID == surveyID {
			s.surveys[i] = *updated
			replaced = true
			break
		}
	}
	s.stateMu.Unlock()
	if !replaced {
		s.log.Warn("survey not found, update dropped", "survey_id", surveyID)
		return nil
	}
	s.notify()
	return nil
}

// DeleteSurvey removes the survey remotely, then locally.
func (s *SurveyStore) DeleteSurvey(ctx context.Context, surveyID string) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("delete a survey")
	}
	if err := s.api.DeleteSurvey(ctx, surveyID); err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}

	s.stateMu.Lock()
	kept := s.surveys[:0]
	for _, sv := range s.surveys {
		if sv.ID != surveyID {
			kept = append(kept, sv)
		}
	}
	s.surveys = kept
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// SubmitResponse submits a respondent's answers for a survey. No local state
// is touched.
func (s *SurveyStore) SubmitResponse(ctx context.Context, surveyID string, answers map[string]string) error {
	if _, err := s.api.SubmitSurveyResponse(ctx, surveyID, answers); err != nil {
		return fmt.Errorf("submit survey response: %w", err)
	}
	return nil
}

// FetchResponses returns a survey's submitted responses.
func (s *SurveyStore) FetchResponses(ctx context.Context, surveyID string) ([]models.SurveyResponse, error) {
	out, err := s.api.GetSurveyResponses(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("fetch survey responses: %w", err)
	}
	return out, nil
}

// Surveys returns a snapshot of the user's surveys.
func (s *SurveyStore) Surveys() []models.Survey {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]models.Survey(nil), s.surveys...)
}

func (s *SurveyStore) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

func (s *SurveyStore) beginFetch() uint64 {
	s.stateMu.Lock()
	s.loading = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.stateMu.Unlock()
	s.notify()
	return seq
}

func (s *SurveyStore) setLoading(v bool) {
	s.stateMu.Lock()
	s.loading = v
	s.stateMu.Unlock()
	s.notify()
}
