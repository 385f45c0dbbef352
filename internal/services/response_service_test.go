package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/formlab/formbuilder-service/internal/events"
	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/repositories"
	"github.com/formlab/formbuilder-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rawAnswer(t *testing.T, payload any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func TestResponseService_Create(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	v := validator.New()

	validAnswers := func(t *testing.T) []models.Answer {
		return []models.Answer{
			{QuestionID: "q1", Answer: rawAnswer(t, models.ClozeAnswer{"cat", "moon"})},
		}
	}

	t.Run("success publishes response.submitted", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := NewResponseService(repo, publisher, logger, v)

		repo.form.On("Exists", ctx, uint(1)).Return(true, nil)
		repo.response.On("Create", ctx, mock.AnythingOfType("*models.FormResponse")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.FormResponse).ID = 9
		}).Return(nil)

		response, err := service.Create(ctx, &CreateResponseRequest{
			FormID:  1,
			Answers: validAnswers(t),
		})
		require.NoError(t, err)
		assert.Equal(t, uint(9), response.ID)
		assert.Equal(t, uint(1), response.FormID)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventResponseSubmitted, published[0].Type)
		data := published[0].Data.(events.ResponseSubmittedEvent)
		assert.Equal(t, uint(9), data.ResponseID)
		assert.Equal(t, 1, data.AnswerCount)

		repo.form.AssertExpectations(t)
		repo.response.AssertExpectations(t)
	})

	t.Run("missing form id", func(t *testing.T) {
		repo := newMockRepository()
		service := NewResponseService(repo, events.NewMockEventPublisher(logger), logger, v)

		_, err := service.Create(ctx, &CreateResponseRequest{Answers: validAnswers(t)})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("no answers", func(t *testing.T) {
		repo := newMockRepository()
		service := NewResponseService(repo, events.NewMockEventPublisher(logger), logger, v)

		_, err := service.Create(ctx, &CreateResponseRequest{FormID: 1})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("answer missing its question id", func(t *testing.T) {
		repo := newMockRepository()
		service := NewResponseService(repo, events.NewMockEventPublisher(logger), logger, v)

		_, err := service.Create(ctx, &CreateResponseRequest{
			FormID:  1,
			Answers: []models.Answer{{Answer: rawAnswer(t, models.ClozeAnswer{"x"})}},
		})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown form", func(t *testing.T) {
		repo := newMockRepository()
		service := NewResponseService(repo, events.NewMockEventPublisher(logger), logger, v)

		repo.form.On("Exists", ctx, uint(404)).Return(false, nil)

		_, err := service.Create(ctx, &CreateResponseRequest{
			FormID:  404,
			Answers: validAnswers(t),
		})
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("answers citing stale question ids are accepted", func(t *testing.T) {
		// The service does not cross-check answer ids against the form's
		// questions; a stale client may submit ids the form no longer has.
		repo := newMockRepository()
		service := NewResponseService(repo, events.NewMockEventPublisher(logger), logger, v)

		repo.form.On("Exists", ctx, uint(1)).Return(true, nil)
		repo.response.On("Create", ctx, mock.AnythingOfType("*models.FormResponse")).Return(nil)

		_, err := service.Create(ctx, &CreateResponseRequest{
			FormID:  1,
			Answers: []models.Answer{{QuestionID: "gone", Answer: rawAnswer(t, models.CategorizeAnswer{"a": "b"})}},
		})
		assert.NoError(t, err)
	})
}

func TestResponseService_ListByForm(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	v := validator.New()

	repo := newMockRepository()
	service := NewResponseService(repo, events.NewMockEventPublisher(logger), logger, v)

	stored := &models.FormResponse{FormID: 3}
	stored.ID = 1
	filters := repositories.ResponseFilters{SortOrder: "desc"}
	repo.response.On("ListByForm", ctx, uint(3), filters).Return([]*models.FormResponse{stored}, nil)

	responses, err := service.ListByForm(ctx, 3, filters)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, uint(1), responses[0].ID)
}
