package validator

import (
	"testing"

	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validComprehension() models.ComprehensionContent {
	return models.ComprehensionContent{
		Passage: "A passage.",
		MCQs: []models.MCQ{
			{Question: "One?", Options: []string{"a", "b", "c", "d"}, Correct: 1},
		},
	}
}

func TestValidateQuestion(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("valid", func(t *testing.T) {
		question := models.Question{
			ID:      "q1",
			Type:    models.Comprehension,
			Content: validComprehension(),
		}
		assert.NoError(t, v.ValidateQuestion(&question))
	})

	t.Run("missing id", func(t *testing.T) {
		question := models.Question{Type: models.Comprehension, Content: validComprehension()}
		assert.Error(t, v.ValidateQuestion(&question))
	})

	t.Run("missing content", func(t *testing.T) {
		question := models.Question{ID: "q1", Type: models.Cloze}
		assert.Error(t, v.ValidateQuestion(&question))
	})

	t.Run("content kind mismatch", func(t *testing.T) {
		question := models.Question{
			ID:      "q1",
			Type:    models.Cloze,
			Content: validComprehension(),
		}
		assert.Error(t, v.ValidateQuestion(&question))
	})
}

func TestValidateContent(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("categorize requires categories and items", func(t *testing.T) {
		assert.Error(t, v.ValidateContent(models.Categorize, models.CategorizeContent{Items: []string{"x"}}))
		assert.Error(t, v.ValidateContent(models.Categorize, models.CategorizeContent{Categories: []string{"x"}}))
		assert.NoError(t, v.ValidateContent(models.Categorize, models.CategorizeContent{
			Categories: []string{"Fruit"},
			Items:      []string{"Apple"},
		}))
	})

	t.Run("cloze requires an option but not a blank-matching count", func(t *testing.T) {
		assert.Error(t, v.ValidateContent(models.Cloze, models.ClozeContent{Sentence: "a __"}))

		// three options for one blank is fine
		assert.NoError(t, v.ValidateContent(models.Cloze, models.ClozeContent{
			Sentence: "a __",
			Options:  []string{"x", "y", "z"},
		}))

		// as is one option for three blanks
		assert.NoError(t, v.ValidateContent(models.Cloze, models.ClozeContent{
			Sentence: "__ __ __",
			Options:  []string{"x"},
		}))
	})

	t.Run("comprehension mcq shape", func(t *testing.T) {
		assert.Error(t, v.ValidateContent(models.Comprehension, models.ComprehensionContent{Passage: "p"}))

		threeOptions := models.ComprehensionContent{
			MCQs: []models.MCQ{{Question: "?", Options: []string{"a", "b", "c"}, Correct: 0}},
		}
		assert.Error(t, v.ValidateContent(models.Comprehension, threeOptions))

		badCorrect := models.ComprehensionContent{
			MCQs: []models.MCQ{{Question: "?", Options: []string{"a", "b", "c", "d"}, Correct: 4}},
		}
		assert.Error(t, v.ValidateContent(models.Comprehension, badCorrect))
	})
}

func TestValidateBatch(t *testing.T) {
	v := NewQuestionValidator()

	question := func(id string) models.Question {
		return models.Question{ID: id, Type: models.Comprehension, Content: validComprehension()}
	}

	t.Run("empty batch", func(t *testing.T) {
		assert.Error(t, v.ValidateBatch(nil))
	})

	t.Run("duplicate ids", func(t *testing.T) {
		err := v.ValidateBatch([]models.Question{question("q1"), question("q1")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate question id")
	})

	t.Run("valid batch", func(t *testing.T) {
		assert.NoError(t, v.ValidateBatch([]models.Question{question("q1"), question("q2")}))
	})
}

func TestValidateStruct(t *testing.T) {
	v := New()

	type payload struct {
		Title string `json:"title" validate:"required,max=200"`
	}

	assert.Error(t, v.ValidateStruct(&payload{}))
	assert.NoError(t, v.ValidateStruct(&payload{Title: "ok"}))
}
