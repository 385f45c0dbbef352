package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the domain events the service emits
type EventType string

const (
	EventFormCreated       EventType = "form.created"
	EventResponseSubmitted EventType = "response.submitted"
)

// FormEvent is the envelope for all form-related events
type FormEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// Event payloads

type FormCreatedEvent struct {
	FormID        uint    `json:"form_id"`
	Title         string  `json:"title"`
	QuestionCount int     `json:"question_count"`
	CreatedBy     *string `json:"created_by,omitempty"`
}

type ResponseSubmittedEvent struct {
	ResponseID  uint    `json:"response_id"`
	FormID      uint    `json:"form_id"`
	AnswerCount int     `json:"answer_count"`
	SubmittedBy *string `json:"submitted_by,omitempty"`
}

// NewFormEvent wraps a payload in the event envelope.
func NewFormEvent(eventType EventType, data interface{}) *FormEvent {
	return &FormEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "formbuilder-service",
		Version:   "1.0",
		Data:      data,
	}
}
