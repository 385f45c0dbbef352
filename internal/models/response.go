package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Answer pairs a question id from the referenced form with the respondent's
// payload for it. The payload shape depends on the question type; see
// answer.go.
type Answer struct {
	QuestionID string          `json:"questionId"`
	Answer     json.RawMessage `json:"answer"`
}

// FormResponse is one respondent's submission: every answer references a
// question id of the form the response points at. The response does not own
// the form, and nothing cascades if the form changes underneath it.
type FormResponse struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	FormID      uint           `json:"formId" gorm:"not null;index:idx_responses_form_created"`
	Answers     datatypes.JSON `json:"answers" gorm:"type:jsonb;not null"`
	SubmittedBy *string        `json:"submittedBy" gorm:"size:255"`

	CreatedAt time.Time      `json:"createdAt" gorm:"index:idx_responses_form_created"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (FormResponse) TableName() string {
	return "responses"
}

// DecodeAnswers unpacks the embedded answers column.
func (r *FormResponse) DecodeAnswers() ([]Answer, error) {
	var answers []Answer
	if len(r.Answers) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(r.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// EncodeAnswers packs answers into the embedded column.
func (r *FormResponse) EncodeAnswers(answers []Answer) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	r.Answers = data
	return nil
}
