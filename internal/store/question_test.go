package store

import (
	"context"
	"errors"
	"testing"

	"github.com/wazihub/wazi-go/internal/models"
)

type questionAPIStub struct {
	getAllCalls int
	uploadCalls int
	getAllFn    func(ctx context.Context) ([]models.Question, error)
	submitFn    func(text, userID string) (*models.Question, error)
	uploadFn    func(questions []models.Question, userID string) ([]models.Question, error)
	responsesFn func(questionID string) ([]models.Response, error)
	respondFn   func(questionID, responseText, userID string) (*models.Response, error)
}

func (s *questionAPIStub) GetAllQuestions(ctx context.Context) ([]models.Question, error) {
	s.getAllCalls++
	if s.getAllFn == nil {
		return nil, nil
	}
	return s.getAllFn(ctx)
}

func (s *questionAPIStub) SubmitQuestion(_ context.Context, text, userID string) (*models.Question, error) {
	if s.submitFn == nil {
		return &models.Question{ID: "q-new", Text: text, UserID: userID}, nil
	}
	return s.submitFn(text, userID)
}

func (s *questionAPIStub) UploadQuestions(_ context.Context, questions []models.Question, userID string) ([]models.Question, error) {
	s.uploadCalls++
	if s.uploadFn == nil {
		return questions, nil
	}
	return s.uploadFn(questions, userID)
}

func (s *questionAPIStub) GetResponses(_ context.Context, questionID string) ([]models.Response, error) {
	if s.responsesFn == nil {
		return nil, nil
	}
	return s.responsesFn(questionID)
}

func (s *questionAPIStub) SubmitResponse(_ context.Context, questionID, responseText, userID string) (*models.Response, error) {
	if s.respondFn == nil {
		return &models.Response{ID: "r-new", ResponseText: responseText, UserID: userID}, nil
	}
	return s.respondFn(questionID, responseText, userID)
}

func TestFetchQuestionsFormatsTimestamps(t *testing.T) {
	api := &questionAPIStub{getAllFn: func(context.Context) ([]models.Question, error) {
		return []models.Question{
			{ID: "q1", Text: "first", CreatedAt: "2026-03-15T14:30:00Z"},
			{ID: "q2", Text: "second", CreatedAt: "not-a-date"},
		}, nil
	}}
	s := NewQuestionStore(api, &userSourceStub{}, testLogger())

	if err := s.FetchQuestions(context.Background()); err != nil {
		t.Fatalf("FetchQuestions: %v", err)
	}
	got := s.Questions()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].CreatedAt != "Mar 15, 2026 02:30 PM" {
		t.Fatalf("createdAt = %q", got[0].CreatedAt)
	}
	if got[1].CreatedAt != "Invalid Date" {
		t.Fatalf("createdAt = %q, want Invalid Date", got[1].CreatedAt)
	}
	if got[0].Responses == nil || got[1].Responses == nil {
		t.Fatal("responses must be initialized, not nil")
	}
	if s.Loading() {
		t.Fatal("loading should be false after fetch")
	}
}

func TestFetchQuestionsFailureLeavesFeed(t *testing.T) {
	ctx := context.Background()
	api := &questionAPIStub{getAllFn: func(context.Context) ([]models.Question, error) {
		return []models.Question{{ID: "q1", Text: "kept"}}, nil
	}}
	s := NewQuestionStore(api, &userSourceStub{}, testLogger())
	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatalf("FetchQuestions: %v", err)
	}

	api.getAllFn = func(context.Context) ([]models.Question, error) {
		return nil, errors.New("backend down")
	}
	if err := s.FetchQuestions(ctx); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Questions(); len(got) != 1 || got[0].ID != "q1" {
		t.Fatalf("feed = %+v, want the previous list", got)
	}
	if s.Loading() {
		t.Fatal("loading should clear after a failed fetch")
	}
}

func TestStaleQuestionFetchDiscarded(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})
	first := true
	api := &questionAPIStub{}
	api.getAllFn = func(context.Context) ([]models.Question, error) {
		if first {
			first = false
			close(entered)
			<-release
			return []models.Question{{ID: "stale"}}, nil
		}
		return []models.Question{{ID: "fresh"}}, nil
	}
	s := NewQuestionStore(api, &userSourceStub{}, testLogger())

	done := make(chan error, 1)
	go func() { done <- s.FetchQuestions(ctx) }()
	<-entered

	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	got := s.Questions()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("feed = %+v, stale result should have been discarded", got)
	}
}

func TestSubmitQuestionRequiresUser(t *testing.T) {
	api := &questionAPIStub{submitFn: func(string, string) (*models.Question, error) {
		t.Fatal("no network call expected while signed out")
		return nil, nil
	}}
	s := NewQuestionStore(api, &userSourceStub{}, testLogger())

	err := s.SubmitQuestion(context.Background(), "anyone there?")
	se, ok := AsStoreError(err)
	if !ok || se.Code != ErrorUnauthenticated {
		t.Fatalf("err = %v, want unauthenticated StoreError", err)
	}
	if len(s.Questions()) != 0 {
		t.Fatal("collection should stay unchanged")
	}
}

func TestSubmitQuestionPrepends(t *testing.T) {
	ctx := context.Background()
	calls := 0
	api := &questionAPIStub{submitFn: func(text, userID string) (*models.Question, error) {
		calls++
		return &models.Question{ID: "q-" + text, Text: text, UserID: userID}, nil
	}}
	s := NewQuestionStore(api, &userSourceStub{user: testUser()}, testLogger())

	if err := s.SubmitQuestion(ctx, "first"); err != nil {
		t.Fatalf("SubmitQuestion: %v", err)
	}
	if err := s.SubmitQuestion(ctx, "second"); err != nil {
		t.Fatalf("SubmitQuestion: %v", err)
	}
	got := s.Questions()
	if len(got) != 2 || got[0].ID != "q-second" || got[1].ID != "q-first" {
		t.Fatalf("feed = %+v, want newest first", got)
	}
	if got[0].Responses == nil {
		t.Fatal("new question should carry an empty response list")
	}
}

func TestFetchResponsesSetsParent(t *testing.T) {
	ctx := context.Background()
	api := &questionAPIStub{
		getAllFn: func(context.Context) ([]models.Question, error) {
			return []models.Question{{ID: "q1", Text: "hello"}}, nil
		},
		responsesFn: func(string) ([]models.Response, error) {
			return []models.Response{{ID: "r1"}, {ID: "r2"}}, nil
		},
	}
	s := NewQuestionStore(api, &userSourceStub{}, testLogger())
	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatalf("FetchQuestions: %v", err)
	}

	if err := s.FetchResponses(ctx, "q1"); err != nil {
		t.Fatalf("FetchResponses: %v", err)
	}
	got := s.Questions()[0].Responses
	if len(got) != 2 || got[0].ID != "r2" || got[1].ID != "r1" {
		t.Fatalf("responses = %+v, want newest first", got)
	}
	for _, r := range got {
		if r.QuestionID != "q1" {
			t.Fatalf("response %s missing parent id", r.ID)
		}
	}
}

func TestFetchResponsesMissingParentSkipped(t *testing.T) {
	api := &questionAPIStub{responsesFn: func(string) ([]models.Response, error) {
		return []models.Response{{ID: "r1"}}, nil
	}}
	s := NewQuestionStore(api, &userSourceStub{}, testLogger())

	if err := s.FetchResponses(context.Background(), "ghost"); err != nil {
		t.Fatalf("missing parent should not error, got %v", err)
	}
	if len(s.Questions()) != 0 {
		t.Fatal("feed should stay empty")
	}
}

func TestSubmitResponsePrependsToParent(t *testing.T) {
	ctx := context.Background()
	api := &questionAPIStub{getAllFn: func(context.Context) ([]models.Question, error) {
		return []models.Question{{ID: "q1", Responses: []models.Response{{ID: "r-old"}}}}, nil
	}}
	s := NewQuestionStore(api, &userSourceStub{user: testUser()}, testLogger())
	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatalf("FetchQuestions: %v", err)
	}

	if err := s.SubmitResponse(ctx, "q1", "me too"); err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	got := s.Questions()[0].Responses
	if len(got) != 2 || got[0].ID != "r-new" {
		t.Fatalf("responses = %+v, want the new one first", got)
	}
	if got[0].QuestionID != "q1" {
		t.Fatal("new response missing parent id")
	}
}

func TestSubmitResponseMissingParentSkipped(t *testing.T) {
	s := NewQuestionStore(&questionAPIStub{}, &userSourceStub{user: testUser()}, testLogger())

	if err := s.SubmitResponse(context.Background(), "ghost", "hello"); err != nil {
		t.Fatalf("missing parent should not error, got %v", err)
	}
}

func TestUploadQuestionsValidatesBeforeNetwork(t *testing.T) {
	api := &questionAPIStub{}
	s := NewQuestionStore(api, &userSourceStub{user: testUser()}, testLogger())

	err := s.UploadQuestions(context.Background(), []models.Question{
		{Text: "ok", UserID: "user-1"},
		{Text: "", UserID: "user-1"},
	})
	se, ok := AsStoreError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("err = %v, want invalid StoreError", err)
	}
	if api.uploadCalls != 0 {
		t.Fatalf("upload called %d times, want 0", api.uploadCalls)
	}
}

func TestUploadQuestionsPrependsBatchInOrder(t *testing.T) {
	ctx := context.Background()
	api := &questionAPIStub{
		getAllFn: func(context.Context) ([]models.Question, error) {
			return []models.Question{{ID: "q-old"}}, nil
		},
		uploadFn: func(questions []models.Question, _ string) ([]models.Question, error) {
			out := make([]models.Question, len(questions))
			for i, q := range questions {
				q.ID = "q-up-" + q.Text
				q.CreatedAt = "2026-01-02T09:00:00Z"
				out[i] = q
			}
			return out, nil
		},
	}
	s := NewQuestionStore(api, &userSourceStub{user: testUser()}, testLogger())
	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatalf("FetchQuestions: %v", err)
	}

	batch := []models.Question{
		{Text: "a", UserID: "user-1"},
		{Text: "b", UserID: "user-1"},
	}
	if err := s.UploadQuestions(ctx, batch); err != nil {
		t.Fatalf("UploadQuestions: %v", err)
	}
	got := s.Questions()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "q-up-a" || got[1].ID != "q-up-b" || got[2].ID != "q-old" {
		t.Fatalf("order = %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].CreatedAt != "Jan 2, 2026 09:00 AM" {
		t.Fatalf("uploaded timestamp = %q", got[0].CreatedAt)
	}
}

func TestFormatDisplayTime(t *testing.T) {
	cases := map[string]string{
		"2026-03-15T14:30:00Z": "Mar 15, 2026 02:30 PM",
		"2026-03-15T08:05:00Z": "Mar 15, 2026 08:05 AM",
		"":                     "Invalid Date",
		"yesterday":            "Invalid Date",
	}
	for in, want := range cases {
		if got := formatDisplayTime(in); got != want {
			t.Fatalf("formatDisplayTime(%q) = %q, want %q", in, got, want)
		}
	}
}
