package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wazihub/wazi-go/internal/models"
)

// displayTimeFormat is the fixed display rendering applied to question
// timestamps at reconciliation time. The raw wire value is not kept.
const displayTimeFormat = "Jan 2, 2006 03:04 PM"

// QuestionAPI is the slice of the remote client the question store uses.
type QuestionAPI interface {
	GetAllQuestions(ctx context.Context) ([]models.Question, error)
	SubmitQuestion(ctx context.Context, text, userID string) (*models.Question, error)
	UploadQuestions(ctx context.Context, questions []models.Question, userID string) ([]models.Question, error)
	GetResponses(ctx context.Context, questionID string) ([]models.Response, error)
	SubmitResponse(ctx context.Context, questionID, responseText, userID string) (*models.Response, error)
}

// QuestionStore owns the question feed. New questions and responses are
// prepended; fetches replace the whole collection.
type QuestionStore struct {
	observable

	stateMu   sync.RWMutex
	questions []models.Question
	loading   bool
	fetchSeq  uint64

	api     QuestionAPI
	session UserSource
	log     *slog.Logger
}

func NewQuestionStore(api QuestionAPI, session UserSource, log *slog.Logger) *QuestionStore {
	return &QuestionStore{api: api, session: session, log: log}
}

// FetchQuestions replaces the collection with the server's list, reformatting
// each timestamp for display. A result that arrives after a newer fetch was
// issued is discarded.
func (s *QuestionStore) FetchQuestions(ctx context.Context) error {
	seq := s.beginFetch()
	defer s.endFetch()

	list, err := s.api.GetAllQuestions(ctx)
	if err != nil {
		return fmt.Errorf("fetch questions: %w", err)
	}

	mapped := make([]models.Question, len(list))
	for i, q := range list {
		q.CreatedAt = formatDisplayTime(q.CreatedAt)
		if q.Responses == nil {
			q.Responses = []models.Response{}
		}
		mapped[i] = q
	}

	s.stateMu.Lock()
	if seq != s.fetchSeq {
		s.stateMu.Unlock()
		s.log.Debug("discarding stale question fetch", "seq", seq)
		return nil
	}
	s.questions = mapped
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// SubmitQuestion creates a question and prepends it to the feed. Rejected
// locally when no user is signed in.
func (s *QuestionStore) SubmitQuestion(ctx context.Context, text string) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("submit a question")
	}

	created, err := s.api.SubmitQuestion(ctx, text, user.ID)
	if err != nil {
		return fmt.Errorf("submit question: %w", err)
	}
	q := *created
	q.Responses = []models.Response{}

	s.stateMu.Lock()
	s.questions = append([]models.Question{q}, s.questions...)
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// FetchResponses loads a question's responses into the parent entity, newest
// first. A missing parent is logged and skipped, never raised.
func (s *QuestionStore) FetchResponses(ctx context.Context, questionID string) error {
	fetched, err := s.api.GetResponses(ctx, questionID)
	if err != nil {
		return fmt.Errorf("fetch responses: %w", err)
	}
	responses := make([]models.Response, len(fetched))
	for i, r := range fetched {
		r.QuestionID = questionID
		responses[len(fetched)-1-i] = r
	}

	s.stateMu.Lock()
	idx := s.indexOf(questionID)
	if idx < 0 {
		s.stateMu.Unlock()
		s.log.Warn("question not found, responses dropped", "question_id", questionID)
		return nil
	}
	s.questions[idx].Responses = responses
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// UploadQuestions bulk-creates questions. Every record must carry text and a
// userId; otherwise the batch is rejected before any network call.
func (s *QuestionStore) UploadQuestions(ctx context.Context, questions []models.Question) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("upload questions")
	}
	for _, q := range questions {
		if q.Text == "" || q.UserID == "" {
			return NewInvalidError("invalid question format: each question must have text and userId")
		}
	}

	s.setLoading(true)
	defer s.setLoading(false)

	uploaded, err := s.api.UploadQuestions(ctx, questions, user.ID)
	if err != nil {
		return fmt.Errorf("upload questions: %w", err)
	}
	mapped := make([]models.Question, len(uploaded))
	for i, q := range uploaded {
		q.CreatedAt = formatDisplayTime(q.CreatedAt)
		q.Responses = []models.Response{}
		mapped[i] = q
	}

	s.stateMu.Lock()
	s.questions = append(mapped, s.questions...)
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// SubmitResponse attaches a new response to the front of its question's list.
// A missing parent is logged and skipped.
func (s *QuestionStore) SubmitResponse(ctx context.Context, questionID, responseText string) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("submit a response")
	}

	created, err := s.api.SubmitResponse(ctx, questionID, responseText, user.ID)
	if err != nil {
		return fmt.Errorf("submit response: %w", err)
	}
	resp := *created
	resp.QuestionID = questionID

	s.stateMu.Lock()
	idx := s.indexOf(questionID)
	if idx < 0 {
		s.stateMu.Unlock()
		s.log.Warn("question not found, response dropped", "question_id", questionID)
		return nil
	}
	s.questions[idx].Responses = append([]models.Response{resp}, s.questions[idx].Responses...)
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// Questions returns a snapshot of the feed.
func (s *QuestionStore) Questions() []models.Question {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]models.Question(nil), s.questions...)
}

func (s *QuestionStore) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

// indexOf must be called with stateMu held.
func (s *QuestionStore) indexOf(questionID string) int {
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			return i
		}
	}
	return -1
}

func (s *QuestionStore) beginFetch() uint64 {
	s.stateMu.Lock()
	s.loading = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.stateMu.Unlock()
	s.notify()
	return seq
}

func (s *QuestionStore) endFetch() {
	s.setLoading(false)
}

func (s *QuestionStore) setLoading(v bool) {
	s.stateMu.Lock()
	s.loading = v
	s.stateMu.Unlock()
	s.notify()
}

// formatDisplayTime renders a wire timestamp for display. Anything
// unparseable becomes "Invalid Date", matching what users already see.
func formatDisplayTime(raw string) string {
	if raw == "" {
		return "Invalid Date"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "Invalid Date"
	}
	return t.Format(displayTimeFormat)
}
