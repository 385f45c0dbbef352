// Package fill holds a respondent's in-progress answers for one form and the
// cloze drag-fill board. Answers are replaced wholesale on every update; a
// type-specific completion predicate gates submission.
package fill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/formlab/formbuilder-service/internal/errors"
	"github.com/formlab/formbuilder-service/internal/gateway"
	"github.com/formlab/formbuilder-service/internal/models"
)

type AnswerState string

const (
	Unanswered        AnswerState = "unanswered"
	PartiallyAnswered AnswerState = "partially_answered"
	Complete          AnswerState = "complete"
)

var (
	// ErrUnknownQuestion is returned when an answer addresses an id the form
	// does not contain.
	ErrUnknownQuestion = errors.New("question not found in form")

	// ErrAlreadySubmitted guards against double submission. The reference
	// behavior had no such guard; see DESIGN.md.
	ErrAlreadySubmitted = errors.New("response already submitted")
)

// Session is the per-form fill state machine. Single-session; methods are not
// safe for concurrent use.
type Session struct {
	gw        gateway.Gateway
	formID    uint
	questions []models.Question
	answers   map[string]any
	submitted bool
}

// NewSession builds a fill session over an already-fetched form, initializing
// every question with its archetype's zero-value answer payload.
func NewSession(gw gateway.Gateway, form *models.Form) (*Session, error) {
	questions, err := form.DecodeQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to decode form questions: %w", err)
	}

	answers := make(map[string]any, len(questions))
	for _, question := range questions {
		answers[question.ID] = initialAnswer(question)
	}

	return &Session{
		gw:        gw,
		formID:    form.ID,
		questions: questions,
		answers:   answers,
	}, nil
}

// LoadSession fetches the form through the gateway and opens a session on it.
func LoadSession(ctx context.Context, gw gateway.Gateway, formID uint) (*Session, error) {
	form, err := gw.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	return NewSession(gw, form)
}

// Questions returns the form's questions in order.
func (s *Session) Questions() []models.Question {
	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answer returns the current payload for a question.
func (s *Session) Answer(questionID string) (any, bool) {
	answer, ok := s.answers[questionID]
	return answer, ok
}

// UpdateAnswer replaces the stored answer for a question wholesale.
func (s *Session) UpdateAnswer(questionID string, payload any) error {
	if _, ok := s.answers[questionID]; !ok {
		return ErrUnknownQuestion
	}
	s.answers[questionID] = payload
	return nil
}

// AnswerState classifies a question's current answer.
func (s *Session) AnswerState(questionID string) AnswerState {
	question, ok := s.findQuestion(questionID)
	if !ok {
		return Unanswered
	}
	answer := s.answers[questionID]

	if IsComplete(question.Type, answer) {
		return Complete
	}
	if isStarted(question.Type, answer) {
		return PartiallyAnswered
	}
	return Unanswered
}

// Submitted reports whether the session already went through a successful
// SubmitAll.
func (s *Session) Submitted() bool { return s.submitted }

// SubmitAll verifies every question is complete and persists the response
// through the gateway. Incomplete questions fail the submit locally with
// their count; a second successful submit is refused.
func (s *Session) SubmitAll(ctx context.Context, submittedBy *string) (*models.FormResponse, error) {
	if s.submitted {
		return nil, ErrAlreadySubmitted
	}

	incomplete := 0
	for _, question := range s.questions {
		if !IsComplete(question.Type, s.answers[question.ID]) {
			incomplete++
		}
	}
	if incomplete > 0 {
		return nil, apperrors.NewValidationError(
			"answers",
			fmt.Sprintf("please answer all questions, %d questions remaining", incomplete),
			incomplete,
		)
	}

	answers := make([]models.Answer, 0, len(s.questions))
	for _, question := range s.questions {
		raw, err := json.Marshal(s.answers[question.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to encode answer for question %s: %w", question.ID, err)
		}
		answers = append(answers, models.Answer{QuestionID: question.ID, Answer: raw})
	}

	response, err := s.gw.CreateResponse(ctx, &gateway.ResponseDraft{
		FormID:      s.formID,
		Answers:     answers,
		SubmittedBy: submittedBy,
	})
	if err != nil {
		return nil, err
	}

	s.submitted = true
	return response, nil
}

// initialAnswer sizes the zero-value payload to the question's content: one
// "" per cloze blank, one nil per comprehension mcq.
func initialAnswer(question models.Question) any {
	switch content := question.Content.(type) {
	case models.ClozeContent:
		return make(models.ClozeAnswer, models.CountBlanks(content.Sentence))
	case models.ComprehensionContent:
		return make(models.ComprehensionAnswer, len(content.MCQs))
	default:
		return models.DefaultAnswer(question.Type)
	}
}

func (s *Session) findQuestion(questionID string) (models.Question, bool) {
	for _, question := range s.questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return models.Question{}, false
}

// IsComplete is the per-type completion predicate.
//
// For categorize the predicate only requires a non-empty mapping, NOT that
// every item is assigned; that matches the shipped behavior and is pending
// product confirmation. See DESIGN.md.
func IsComplete(t models.QuestionType, answer any) bool {
	switch t {
	case models.Categorize:
		mapping, ok := answer.(models.CategorizeAnswer)
		return ok && len(mapping) > 0

	case models.Cloze:
		slots, ok := answer.(models.ClozeAnswer)
		if !ok || len(slots) == 0 {
			return false
		}
		for _, slot := range slots {
			if slot == "" {
				return false
			}
		}
		return true

	case models.Comprehension:
		selections, ok := answer.(models.ComprehensionAnswer)
		if !ok || len(selections) == 0 {
			return false
		}
		for _, selection := range selections {
			if selection == nil {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// isStarted reports whether the answer differs from its zero value.
func isStarted(t models.QuestionType, answer any) bool {
	switch t {
	case models.Categorize:
		mapping, ok := answer.(models.CategorizeAnswer)
		return ok && len(mapping) > 0

	case models.Cloze:
		slots, ok := answer.(models.ClozeAnswer)
		if !ok {
			return false
		}
		for _, slot := range slots {
			if slot != "" {
				return true
			}
		}
		return false

	case models.Comprehension:
		selections, ok := answer.(models.ComprehensionAnswer)
		if !ok {
			return false
		}
		for _, selection := range selections {
			if selection != nil {
				return true
			}
		}
		return false

	default:
		return false
	}
}
