package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/wazihub/wazi-go/internal/client"
	"github.com/wazihub/wazi-go/internal/models"
)

// QuestionType tags a draft question's input style.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionRadio          QuestionType = "radio"
	QuestionCheckbox       QuestionType = "checkbox"
	QuestionMultipleChoice QuestionType = "multiple-choice"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionRadio, QuestionCheckbox, QuestionMultipleChoice:
		return true
	}
	return false
}

// HasOptions reports whether the type needs an option list.
func (t QuestionType) HasOptions() bool {
	switch t {
	case QuestionRadio, QuestionCheckbox, QuestionMultipleChoice:
		return true
	}
	return false
}

// QuestionDraft is one not-yet-submitted survey question.
type QuestionDraft struct {
	Question string
	Type     QuestionType
	Options  []string
}

// SurveyFormAPI is the slice of the remote client used on final submission.
type SurveyFormAPI interface {
	CreateSurvey(ctx context.Context, in client.CreateSurveyInput) (*models.Survey, error)
}

// SurveyFormStore is a pure draft editor; nothing is persisted until a
// validated draft is submitted. The draft is discarded on submit and never
// survives a restart.
type SurveyFormStore struct {
	observable

	stateMu   sync.RWMutex
	title     string
	questions []QuestionDraft
	errors    map[string]string
	loading   bool

	api     SurveyFormAPI
	session UserSource
	log     *slog.Logger
}

func NewSurveyFormStore(api SurveyFormAPI, session UserSource, log *slog.Logger) *SurveyFormStore {
	return &SurveyFormStore{
		questions: initialDraft(),
		errors:    map[string]string{},
		api:       api,
		session:   session,
		log:       log,
	}
}

func initialDraft() []QuestionDraft {
	return []QuestionDraft{{Question: "", Type: QuestionText, Options: []string{}}}
}

func (s *SurveyFormStore) SetTitle(title string) {
	s.stateMu.Lock()
	s.title = title
	s.stateMu.Unlock()
	s.notify()
}

// AddQuestion appends an empty text question to the draft.
func (s *SurveyFormStore) AddQuestion() {
	s.stateMu.Lock()
	s.questions = append(s.questions, QuestionDraft{Question: "", Type: QuestionText, Options: []string{}})
	s.stateMu.Unlock()
	s.notify()
}

func (s *SurveyFormStore) RemoveQuestion(index int) {
	s.stateMu.Lock()
	if index < 0 || index >= len(s.questions) {
		s.stateMu.Unlock()
		return
	}
	s.questions = append(s.questions[:index], s.questions[index+1:]...)
	s.stateMu.Unlock()
	s.notify()
}

// UpdateQuestion edits a question's text and type in place.
func (s *SurveyFormStore) UpdateQuestion(index int, text string, qtype QuestionType) {
	s.stateMu.Lock()
	if index < 0 || index >= len(s.questions) {
		s.stateMu.Unlock()
		return
	}
	s.questions[index].Question = text
	s.questions[index].Type = qtype
	s.stateMu.Unlock()
	s.notify()
}

func (s *SurveyFormStore) AddOption(questionIndex int) {
	s.stateMu.Lock()
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		s.stateMu.Unlock()
		return
	}
	s.questions[questionIndex].Options = append(s.questions[questionIndex].Options, "")
	s.stateMu.Unlock()
	s.notify()
}

func (s *SurveyFormStore) RemoveOption(questionIndex, optionIndex int) {
	s.stateMu.Lock()
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		s.stateMu.Unlock()
		return
	}
	opts := s.questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(opts) {
		s.stateMu.Unlock()
		return
	}
	s.questions[questionIndex].Options = append(opts[:optionIndex], opts[optionIndex+1:]...)
	s.stateMu.Unlock()
	s.notify()
}

func (s *SurveyFormStore) SetOption(questionIndex, optionIndex int, value string) {
	s.stateMu.Lock()
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		s.stateMu.Unlock()
		return
	}
	opts := s.questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(opts) {
		s.stateMu.Unlock()
		return
	}
	opts[optionIndex] = value
	s.stateMu.Unlock()
	s.notify()
}

// Validate checks the whole draft and collects every violation, keyed by the
// field path the UI attributes it to (surveyTitle, questions,
// questions[i].question, questions[i].type, questions[i].options,
// questions[i].options[j]). It returns true when the draft is clean.
func (s *SurveyFormStore) Validate() bool {
	s.stateMu.Lock()
	defer func() {
		s.stateMu.Unlock()
		s.notify()
	}()

	errs := map[string]string{}
	if strings.TrimSpace(s.title) == "" {
		errs["surveyTitle"] = "Survey title is required"
	}
	if len(s.questions) == 0 {
		errs["questions"] = "At least one question is required"
	}
	for i, q := range s.questions {
		if strings.TrimSpace(q.Question) == "" {
			errs[fmt.Sprintf("questions[%d].question", i)] = "Question is required"
		}
		if q.Type == "" {
			errs[fmt.Sprintf("questions[%d].type", i)] = "Question type is required"
		} else if !q.Type.Valid() {
			errs[fmt.Sprintf("questions[%d].type", i)] = "Question type must be one of text, radio, checkbox, multiple-choice"
		}
		if !q.Type.HasOptions() {
			continue
		}
		filled := 0
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) != "" {
				filled++
			}
		}
		if filled < 2 {
			errs[fmt.Sprintf("questions[%d].options", i)] = "At least two options are required"
			continue
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs[fmt.Sprintf("questions[%d].options[%d]", i, j)] = "Option is required"
			}
		}
	}

	s.errors = errs
	return len(errs) == 0
}

// Submit sends a validated draft and resets the editor. An invalid draft
// never reaches the network.
func (s *SurveyFormStore) Submit(ctx context.Context) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("submit a survey")
	}
	if !s.Validate() {
		return NewInvalidError("please fix the errors in the form")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	s.stateMu.RLock()
	payload := client.CreateSurveyInput{
		Title:     s.title,
		UserID:    user.ID,
		Questions: append([]QuestionDraft(nil), s.questions...),
	}
	s.stateMu.RUnlock()

	if _, err := s.api.CreateSurvey(ctx, payload); err != nil {
		return fmt.Errorf("submit survey: %w", err)
	}

	s.stateMu.Lock()
	s.title = ""
	s.questions = initialDraft()
	s.errors = map[string]string{}
	s.stateMu.Unlock()
	s.notify()
	return nil
}

func (s *SurveyFormStore) Title() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.title
}

// Questions returns a snapshot of the draft questions.
func (s *SurveyFormStore) Questions() []QuestionDraft {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]QuestionDraft, len(s.questions))
	for i, q := range s.questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Errors returns a snapshot of the last validation's violations.
func (s *SurveyFormStore) Errors() map[string]string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

func (s *SurveyFormStore) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

func (s *SurveyFormStore) setLoading(v bool) {
	s.stateMu.Lock()
	s.loading = v
	s.stateMu.Unlock()
	s.notify()
}
