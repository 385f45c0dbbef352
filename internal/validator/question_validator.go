package validator

import (
	"fmt"

	"github.com/formlab/formbuilder-service/internal/models"
)

// QuestionValidator handles per-archetype question validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question entry
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.ID == "" {
		return fmt.Errorf("question id is required")
	}
	if question.Type == "" {
		return fmt.Errorf("question type is required")
	}
	return v.ValidateContent(question.Type, question.Content)
}

// ValidateContent validates question content based on question type
func (v *QuestionValidator) ValidateContent(questionType models.QuestionType, content models.QuestionContent) error {
	if content == nil {
		return fmt.Errorf("content cannot be nil")
	}
	if content.Kind() != questionType {
		return fmt.Errorf("content does not match question type %s", questionType)
	}

	switch c := content.(type) {
	case models.CategorizeContent:
		return v.validateCategorizeContent(c)
	case models.ClozeContent:
		return v.validateClozeContent(c)
	case models.ComprehensionContent:
		return v.validateComprehensionContent(c)
	default:
		return fmt.Errorf("unsupported question type: %s", questionType)
	}
}

// ValidateBatch validates the questions of a whole form. Duplicate ids are
// rejected here because the fill side addresses answers by question id.
func (v *QuestionValidator) ValidateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("form must have at least one question")
	}

	seen := make(map[string]bool, len(questions))
	for i, question := range questions {
		if err := v.ValidateQuestion(&question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
		if seen[question.ID] {
			return fmt.Errorf("duplicate question id %q", question.ID)
		}
		seen[question.ID] = true
	}

	return nil
}

func (v *QuestionValidator) validateCategorizeContent(content models.CategorizeContent) error {
	if len(content.Categories) == 0 {
		return fmt.Errorf("must have at least 1 category")
	}
	if len(content.Items) == 0 {
		return fmt.Errorf("must have at least 1 item")
	}
	return nil
}

func (v *QuestionValidator) validateClozeContent(content models.ClozeContent) error {
	// Option count is independent of blank count: extra or missing options
	// are accepted, only at least one option is required.
	if len(content.Options) == 0 {
		return fmt.Errorf("must have at least 1 option")
	}
	return nil
}

func (v *QuestionValidator) validateComprehensionContent(content models.ComprehensionContent) error {
	if len(content.MCQs) == 0 {
		return fmt.Errorf("must have at least 1 mcq")
	}

	for i, mcq := range content.MCQs {
		if len(mcq.Options) != 4 {
			return fmt.Errorf("mcq %d: must have exactly 4 options", i+1)
		}
		if mcq.Correct < 0 || mcq.Correct > 3 {
			return fmt.Errorf("mcq %d: correct index must be between 0 and 3", i+1)
		}
	}

	return nil
}
