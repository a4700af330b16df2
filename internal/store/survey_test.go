package store

import (
	"context"
	"errors"
	"testing"

	"github.com/wazihub/wazi-go/internal/client"
	"github.com/wazihub/wazi-go/internal/models"
)

type surveyAPIStub struct {
	uploadCalls int
	createCalls int
	lastCreate  client.CreateSurveyInput
	getAllFn    func() ([]models.Survey, error)
	createFn    func(in client.CreateSurveyInput) (*models.Survey, error)
	updateFn    func(surveyID string, in client.CreateSurveyInput) (*models.Survey, error)
	deleteErr   error
	respondFn   func(surveyID string, answers map[string]string) (*models.SurveyResponse, error)
	responsesFn func(surveyID string) ([]models.SurveyResponse, error)
	uploadFn    func(file models.FileUpload) (*models.FileRef, error)
}

func (s *surveyAPIStub) GetAllSurveys(context.Context) ([]models.Survey, error) {
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn()
}

func (s *surveyAPIStub) CreateSurvey(_ context.Context, in client.CreateSurveyInput) (*models.Survey, error) {
	s.createCalls++
	s.lastCreate = in
	if s.createFn == nil {
		return &models.Survey{ID: "sv-new", Title: in.Title, UserID: in.UserID, File: in.File}, nil
	}
	return s.createFn(in)
}

func (s *surveyAPIStub) UpdateSurvey(_ context.Context, surveyID string, in client.CreateSurveyInput) (*models.Survey, error) {
	if s.updateFn == nil {
		return &models.Survey{ID: surveyID, Title: in.Title, UserID: in.UserID}, nil
	}
	return s.updateFn(surveyID, in)
}

func (s *surveyAPIStub) DeleteSurvey(context.Context, string) error { return s.deleteErr }

func (s *surveyAPIStub) SubmitSurveyResponse(_ context.Context, surveyID string, answers map[string]string) (*models.SurveyResponse, error) {
	if s.respondFn == nil {
		return &models.SurveyResponse{ID: "sr-new", SurveyID: surveyID, Answers: answers}, nil
	}
	return s.respondFn(surveyID, answers)
}

func (s *surveyAPIStub) GetSurveyResponses(_ context.Context, surveyID string) ([]models.SurveyResponse, error) {
	if s.responsesFn == nil {
		return nil, nil
	}
	return s.responsesFn(surveyID)
}

func (s *surveyAPIStub) UploadSurveyFile(_ context.Context, file models.FileUpload) (*models.FileRef, error) {
	s.uploadCalls++
	if s.uploadFn == nil {
		return &models.FileRef{URI: "https://cdn.example.com/" + file.Name, Name: file.Name}, nil
	}
	return s.uploadFn(file)
}

func stagedFile() *models.FileUpload {
	return &models.FileUpload{Name: "survey.pdf", Data: []byte("pdf-bytes")}
}

func TestCreateSurveyRequiresUser(t *testing.T) {
	api := &surveyAPIStub{}
	s := NewSurveyStore(api, &userSourceStub{}, testLogger())
	s.SetSelectedFile(stagedFile())

	err := s.CreateSurvey(context.Background(), "t", "d", "free")
	se, ok := AsStoreError(err)
	if !ok || se.Code != ErrorUnauthenticated {
		t.Fatalf("err = %v, want unauthenticated StoreError", err)
	}
	if api.uploadCalls != 0 || api.createCalls != 0 {
		t.Fatal("no network call expected")
	}
}

func TestCreateSurveyRequiresFieldsAndFile(t *testing.T) {
	cases := []struct {
		name                          string
		title, description, payOption string
		file                          *models.FileUpload
	}{
		{"no title", "", "d", "free", stagedFile()},
		{"no description", "t", "", "free", stagedFile()},
		{"no payment option", "t", "d", "", stagedFile()},
		{"no file", "t", "d", "free", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &surveyAPIStub{}
			s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())
			s.SetSelectedFile(tc.file)

			err := s.CreateSurvey(context.Background(), tc.title, tc.description, tc.payOption)
			se, ok := AsStoreError(err)
			if !ok || se.Code != ErrorInvalid {
				t.Fatalf("err = %v, want invalid StoreError", err)
			}
			if api.uploadCalls != 0 {
				t.Fatal("no upload expected")
			}
		})
	}
}

func TestCreateSurveyUploadsThenPrepends(t *testing.T) {
	ctx := context.Background()
	api := &surveyAPIStub{}
	s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())
	s.SetSelectedFile(stagedFile())

	if err := s.CreateSurvey(ctx, "Weekly check-in", "How it went", "free"); err != nil {
		t.Fatalf("CreateSurvey: %v", err)
	}
	if api.uploadCalls != 1 || api.createCalls != 1 {
		t.Fatalf("upload=%d create=%d, want 1/1", api.uploadCalls, api.createCalls)
	}
	if api.lastCreate.File == nil || api.lastCreate.File.URI == "" {
		t.Fatalf("create payload missing uploaded file ref: %+v", api.lastCreate)
	}
	got := s.Surveys()
	if len(got) != 1 || got[0].ID != "sv-new" {
		t.Fatalf("surveys = %+v", got)
	}
	if s.SelectedFile() != nil {
		t.Fatal("file selection should clear after a successful create")
	}
	if s.Loading() {
		t.Fatal("loading should be false after create")
	}
}

func TestCreateSurveyUploadFailureStopsCreate(t *testing.T) {
	api := &surveyAPIStub{uploadFn: func(models.FileUpload) (*models.FileRef, error) {
		return nil, errors.New("upload rejected")
	}}
	s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())
	s.SetSelectedFile(stagedFile())

	if err := s.CreateSurvey(context.Background(), "t", "d", "free"); err == nil {
		t.Fatal("expected error")
	}
	if api.createCalls != 0 {
		t.Fatal("create must not run after a failed upload")
	}
	if s.SelectedFile() == nil {
		t.Fatal("selection should survive a failed create")
	}
}

func TestFetchSurveysFiltersOwner(t *testing.T) {
	api := &surveyAPIStub{getAllFn: func() ([]models.Survey, error) {
		return []models.Survey{
			{ID: "sv1", UserID: "user-1"},
			{ID: "sv2", UserID: "someone-else"},
			{ID: "sv3", UserID: "user-1"},
		}, nil
	}}
	s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())

	if err := s.FetchSurveys(context.Background()); err != nil {
		t.Fatalf("FetchSurveys: %v", err)
	}
	got := s.Surveys()
	if len(got) != 2 || got[0].ID != "sv1" || got[1].ID != "sv3" {
		t.Fatalf("surveys = %+v, want only the owner's", got)
	}
}

func TestUpdateSurveyReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	api := &surveyAPIStub{getAllFn: func() ([]models.Survey, error) {
		return []models.Survey{
			{ID: "sv1", Title: "old", UserID: "user-1"},
			{ID: "sv2", Title: "other", UserID: "user-1"},
		}, nil
	}}
	s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())
	if err := s.FetchSurveys(ctx); err != nil {
		t.Fatalf("FetchSurveys: %v", err)
	}

	if err := s.UpdateSurvey(ctx, "sv1", "new title", "d", "free"); err != nil {
		t.Fatalf("UpdateSurvey: %v", err)
	}
	got := s.Surveys()
	if got[0].Title != "new title" {
		t.Fatalf("title = %q, want the server's copy", got[0].Title)
	}
	if got[1].Title != "other" {
		t.Fatal("unrelated survey changed")
	}
}

func TestUpdateSurveyMissingEntitySkipped(t *testing.T) {
	s := NewSurveyStore(&surveyAPIStub{}, &userSourceStub{user: testUser()}, testLogger())

	if err := s.UpdateSurvey(context.Background(), "ghost", "t", "d", "free"); err != nil {
		t.Fatalf("missing survey should not error, got %v", err)
	}
}

func TestDeleteSurveyRemovesLocally(t *testing.T) {
	ctx := context.Background()
	api := &surveyAPIStub{getAllFn: func() ([]models.Survey, error) {
		return []models.Survey{{ID: "sv1", UserID: "user-1"}, {ID: "sv2", UserID: "user-1"}}, nil
	}}
	s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())
	if err := s.FetchSurveys(ctx); err != nil {
		t.Fatalf("FetchSurveys: %v", err)
	}

	if err := s.DeleteSurvey(ctx, "sv1"); err != nil {
		t.Fatalf("DeleteSurvey: %v", err)
	}
	got := s.Surveys()
	if len(got) != 1 || got[0].ID != "sv2" {
		t.Fatalf("surveys = %+v", got)
	}
}

func TestDeleteSurveyRemoteFailureKeepsLocal(t *testing.T) {
	ctx := context.Background()
	api := &surveyAPIStub{
		getAllFn: func() ([]models.Survey, error) {
			return []models.Survey{{ID: "sv1", UserID: "user-1"}}, nil
		},
		deleteErr: errors.New("backend down"),
	}
	s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())
	if err := s.FetchSurveys(ctx); err != nil {
		t.Fatalf("FetchSurveys: %v", err)
	}

	if err := s.DeleteSurvey(ctx, "sv1"); err == nil {
		t.Fatal("expected error")
	}
	if len(s.Surveys()) != 1 {
		t.Fatal("survey must stay when the remote delete failed")
	}
}

func TestFetchResponsesReturnsServerList(t *testing.T) {
	api := &surveyAPIStub{responsesFn: func(surveyID string) ([]models.SurveyResponse, error) {
		return []models.SurveyResponse{{ID: "sr1", SurveyID: surveyID}}, nil
	}}
	s := NewSurveyStore(api, &userSourceStub{user: testUser()}, testLogger())

	out, err := s.FetchResponses(context.Background(), "sv1")
	if err != nil {
		t.Fatalf("FetchResponses: %v", err)
	}
	if len(out) != 1 || out[0].SurveyID != "sv1" {
		t.Fatalf("responses = %+v", out)
	}
}

func TestSubmitResponsePassesThrough(t *testing.T) {
	var got map[string]string
	api := &surveyAPIStub{respondFn: func(_ string, answers map[string]string) (*models.SurveyResponse, error) {
		got = answers
		return &models.SurveyResponse{ID: "sr1"}, nil
	}}
	s := NewSurveyStore(api, &userSourceStub{}, testLogger())

	answers := map[string]string{"q1": "yes"}
	if err := s.SubmitResponse(context.Background(), "sv1", answers); err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if got["q1"] != "yes" {
		t.Fatalf("answers = %v", got)
	}
}
