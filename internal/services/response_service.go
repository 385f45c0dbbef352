package services

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/formlab/formbuilder-service/internal/errors"
	"github.com/formlab/formbuilder-service/internal/events"
	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/repositories"
	"github.com/formlab/formbuilder-service/internal/validator"
)

// ResponseService persists respondent submissions and lists them per form.
type ResponseService interface {
	Create(ctx context.Context, req *CreateResponseRequest) (*models.FormResponse, error)
	ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.FormResponse, error)
}

// CreateResponseRequest is the wire shape of POST /api/responses. Answers are
// only checked for presence; whether every answer cites a live question id of
// the form is deliberately not verified.
type CreateResponseRequest struct {
	FormID      uint            `json:"formId" validate:"required"`
	Answers     []models.Answer `json:"answers" validate:"required,min=1"`
	SubmittedBy *string         `json:"submittedBy" validate:"omitempty,max=255"`
}

type responseService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewResponseService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ResponseService {
	return &responseService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *responseService) Create(ctx context.Context, req *CreateResponseRequest) (*models.FormResponse, error) {
	s.logger.Info("Saving response", "form_id", req.FormID, "answers", len(req.Answers))

	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, err
	}

	for i, answer := range req.Answers {
		if answer.QuestionID == "" {
			return nil, NewValidationError("answers", fmt.Sprintf("answer %d is missing its question id", i+1), nil)
		}
	}

	exists, err := s.repo.Form().Exists(ctx, req.FormID)
	if err != nil {
		return nil, fmt.Errorf("failed to check form: %w", err)
	}
	if !exists {
		return nil, ErrFormNotFound
	}

	response := &models.FormResponse{
		FormID:      req.FormID,
		SubmittedBy: req.SubmittedBy,
	}
	if err := response.EncodeAnswers(req.Answers); err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	if err := s.repo.Response().Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	event := events.NewFormEvent(events.EventResponseSubmitted, events.ResponseSubmittedEvent{
		ResponseID:  response.ID,
		FormID:      response.FormID,
		AnswerCount: len(req.Answers),
		SubmittedBy: response.SubmittedBy,
	})
	if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish response.submitted event", "response_id", response.ID, "error", err)
	}

	s.logger.Info("Response saved successfully", "response_id", response.ID, "form_id", response.FormID)
	return response, nil
}

func (s *responseService) ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.FormResponse, error) {
	responses, err := s.repo.Response().ListByForm(ctx, formID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}
