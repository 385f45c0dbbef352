package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestFormEventEnvelope(t *testing.T) {
	event := NewFormEvent(EventFormCreated, FormCreatedEvent{
		FormID:        1,
		Title:         "Quiz",
		QuestionCount: 3,
	})

	if event.ID == "" {
		t.Error("Event should have a generated id")
	}
	if event.Type != EventFormCreated {
		t.Errorf("Expected event type %s, got %s", EventFormCreated, event.Type)
	}
	if event.Source != "formbuilder-service" {
		t.Errorf("Expected source formbuilder-service, got %s", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", event.Version)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Error("Timestamp should be recent")
	}

	data, ok := event.Data.(FormCreatedEvent)
	if !ok {
		t.Fatal("Event data is not FormCreatedEvent type")
	}
	if data.QuestionCount != 3 {
		t.Errorf("Expected 3 questions, got %d", data.QuestionCount)
	}
}

func TestMockPublisherRecordsEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	event := NewFormEvent(EventResponseSubmitted, ResponseSubmittedEvent{
		ResponseID:  9,
		FormID:      1,
		AnswerCount: 2,
	})
	if err := publisher.PublishFormEvent(ctx, event); err != nil {
		t.Fatalf("Failed to publish event: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(published))
	}
	if published[0].Type != EventResponseSubmitted {
		t.Errorf("Expected event type %s, got %s", EventResponseSubmitted, published[0].Type)
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("ClearEvents should drop recorded events")
	}
}
