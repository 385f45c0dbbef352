package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/formlab/formbuilder-service/internal/cache"
	apperrors "github.com/formlab/formbuilder-service/internal/errors"
	"github.com/formlab/formbuilder-service/internal/events"
	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/repositories"
	"github.com/formlab/formbuilder-service/internal/validator"
	"gorm.io/gorm"
)

// FormService persists and retrieves form aggregates.
type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error)
	GetByID(ctx context.Context, id uint) (*models.Form, error)
}

// CreateFormRequest is the wire shape of POST /api/forms.
type CreateFormRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=200"`
	HeaderImage string            `json:"headerImage" validate:"omitempty,max=500"`
	Questions   []models.Question `json:"questions" validate:"required,min=1"`
	CreatedBy   *string           `json:"createdBy" validate:"omitempty,max=255"`
}

const formCacheTTL = 15 * time.Minute

type formService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFormService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) FormService {
	return &formService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *formService) Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error) {
	s.logger.Info("Creating form", "title", req.Title, "questions", len(req.Questions))

	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, err
	}

	if err := s.validator.Question().ValidateBatch(req.Questions); err != nil {
		return nil, NewValidationError("questions", err.Error(), nil)
	}

	form := &models.Form{
		Title:       req.Title,
		HeaderImage: req.HeaderImage,
		CreatedBy:   req.CreatedBy,
	}
	if err := form.EncodeQuestions(req.Questions); err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}

	if err := s.repo.Form().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.cacheForm(ctx, form)

	event := events.NewFormEvent(events.EventFormCreated, events.FormCreatedEvent{
		FormID:        form.ID,
		Title:         form.Title,
		QuestionCount: len(req.Questions),
		CreatedBy:     form.CreatedBy,
	})
	if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
		// Event delivery must not fail the save
		s.logger.Warn("failed to publish form.created event", "form_id", form.ID, "error", err)
	}

	s.logger.Info("Form created successfully", "form_id", form.ID)
	return form, nil
}

func (s *formService) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	var cached models.Form
	if err := s.cache.Get(ctx, formCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	form, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	s.cacheForm(ctx, form)
	return form, nil
}

// Forms are immutable after creation, so cached entries never go stale; the
// TTL only bounds memory.
func (s *formService) cacheForm(ctx context.Context, form *models.Form) {
	if err := s.cache.Set(ctx, formCacheKey(form.ID), form, formCacheTTL); err != nil {
		s.logger.Warn("failed to cache form", "form_id", form.ID, "error", err)
	}
}

func formCacheKey(id uint) string {
	return fmt.Sprintf("form:%d", id)
}
