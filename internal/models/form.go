package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Form is the unit of persistence and sharing: an ordered set of questions
// plus title and optional header image. Questions are embedded by value in a
// single JSONB column; a form never references questions stored elsewhere.
// Once persisted a form is immutable from the respondent's perspective.
type Form struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	HeaderImage string         `json:"headerImage" gorm:"size:500"`
	Questions   datatypes.JSON `json:"questions" gorm:"type:jsonb;not null"`
	CreatedBy   *string        `json:"createdBy" gorm:"size:255;index"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Form) TableName() string {
	return "forms"
}

// DecodeQuestions unpacks the embedded questions column.
func (f *Form) DecodeQuestions() ([]Question, error) {
	var questions []Question
	if len(f.Questions) == 0 {
		return questions, nil
	}
	if err := json.Unmarshal(f.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// EncodeQuestions packs questions into the embedded column.
func (f *Form) EncodeQuestions(questions []Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	f.Questions = data
	return nil
}
