package builder

import (
	"context"
	"testing"

	apperrors "github.com/formlab/formbuilder-service/internal/errors"
	"github.com/formlab/formbuilder-service/internal/gateway"
	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuilder_StateTransitions(t *testing.T) {
	ctx := context.Background()
	b := New(gateway.NewMemoryGateway(), nil)

	assert.Equal(t, StateEmpty, b.State())

	b.SetTitle("Quiz")
	assert.Equal(t, StateDrafting, b.State())

	b.AddQuestion(models.Cloze)
	assert.Equal(t, StateDrafting, b.State())

	id, err := b.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateSaved, b.State())
	assert.Equal(t, id, b.SavedFormID())

	// Any edit after a save starts a new drafting session
	b.SetTitle("Quiz v2")
	assert.Equal(t, StateDrafting, b.State())
	assert.Zero(t, b.SavedFormID())
}

func TestBuilder_SubmitValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing title", func(t *testing.T) {
		b := New(gateway.NewMemoryGateway(), nil)
		b.AddQuestion(models.Categorize)

		_, err := b.Submit(ctx)
		require.Error(t, err)
		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Field)
		assert.NotEqual(t, StateSaving, b.State())
	})

	t.Run("no questions", func(t *testing.T) {
		b := New(gateway.NewMemoryGateway(), nil)
		b.SetTitle("Quiz")

		_, err := b.Submit(ctx)
		require.Error(t, err)
		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "questions", ve.Field)
	})
}

func TestBuilder_SubmitFailureEntersErrorState(t *testing.T) {
	ctx := context.Background()
	gw := &flakyGateway{MemoryGateway: gateway.NewMemoryGateway(), failures: 1}
	b := New(gw, nil)

	b.SetTitle("Quiz")
	b.AddQuestion(models.Cloze)

	_, err := b.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, StateError, b.State())
	assert.Equal(t, "service unavailable", b.LastError())

	// The error state is recoverable: a retry goes back through Saving
	id, err := b.Submit(ctx)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, StateSaved, b.State())
	assert.Empty(t, b.LastError())
}

// flakyGateway fails the first n CreateForm calls, then delegates.
type flakyGateway struct {
	*gateway.MemoryGateway
	failures int
}

func (g *flakyGateway) CreateForm(ctx context.Context, draft *gateway.FormDraft) (*models.Form, error) {
	if g.failures > 0 {
		g.failures--
		return nil, &gateway.APIError{StatusCode: 503, Message: "service unavailable"}
	}
	return g.MemoryGateway.CreateForm(ctx, draft)
}

func TestBuilder_AddQuestionDefaults(t *testing.T) {
	b := New(gateway.NewMemoryGateway(), nil)

	q := b.AddQuestion(models.Comprehension)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, models.Comprehension, q.Type)

	content, ok := q.Content.(models.ComprehensionContent)
	require.True(t, ok)
	require.Len(t, content.MCQs, 1)
	assert.Len(t, content.MCQs[0].Options, 4)

	// ids are unique across additions
	q2 := b.AddQuestion(models.Comprehension)
	assert.NotEqual(t, q.ID, q2.ID)
}

func TestBuilder_UpdateQuestion(t *testing.T) {
	b := New(gateway.NewMemoryGateway(), nil)
	q := b.AddQuestion(models.Cloze)

	err := b.UpdateQuestion(q.ID, QuestionPatch{
		Prompt:   strPtr("Fill in the blanks"),
		Sentence: strPtr("The __ is __."),
		Options:  &[]string{"sky", "blue"},
	})
	require.NoError(t, err)

	updated := b.Questions()[0]
	assert.Equal(t, "Fill in the blanks", updated.Prompt)
	content := updated.Content.(models.ClozeContent)
	assert.Equal(t, "The __ is __.", content.Sentence)
	assert.Equal(t, []string{"sky", "blue"}, content.Options)

	t.Run("unknown id", func(t *testing.T) {
		err := b.UpdateQuestion("nope", QuestionPatch{Prompt: strPtr("x")})
		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})

	t.Run("mismatched content fields are ignored", func(t *testing.T) {
		err := b.UpdateQuestion(q.ID, QuestionPatch{Categories: &[]string{"A"}})
		require.NoError(t, err)
		content := b.Questions()[0].Content.(models.ClozeContent)
		assert.Equal(t, "The __ is __.", content.Sentence)
	})
}

func TestBuilder_RemoveQuestion(t *testing.T) {
	b := New(gateway.NewMemoryGateway(), nil)
	b.SetTitle("Quiz")
	q1 := b.AddQuestion(models.Cloze)
	q2 := b.AddQuestion(models.Categorize)

	require.NoError(t, b.RemoveQuestion(q1.ID))
	require.Len(t, b.Questions(), 1)
	assert.Equal(t, q2.ID, b.Questions()[0].ID)

	// Removing the last question is allowed; only submit enforces the minimum
	require.NoError(t, b.RemoveQuestion(q2.ID))
	assert.Empty(t, b.Questions())
	assert.Equal(t, StateDrafting, b.State())

	assert.ErrorIs(t, b.RemoveQuestion(q2.ID), ErrQuestionNotFound)
}

func TestBuilder_SubmitRecordsRecentForm(t *testing.T) {
	ctx := context.Background()
	store := registry.NewMemoryStore()
	b := New(gateway.NewMemoryGateway(), store)

	b.SetTitle("Survey")
	b.AddQuestion(models.Categorize)
	b.AddQuestion(models.Cloze)

	id, err := b.Submit(ctx)
	require.NoError(t, err)

	recent, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, id, recent[0].ID)
	assert.Equal(t, "Survey", recent[0].Title)
	assert.Equal(t, 2, recent[0].QuestionCount)
}
