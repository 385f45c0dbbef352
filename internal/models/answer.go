package models

import "encoding/json"

// Answer payload shapes, one per question archetype.
//
// categorize:    item -> category, only assigned items present
// cloze:         one entry per blank, "" for an unfilled slot
// comprehension: one entry per mcq, nil for an unanswered one

type CategorizeAnswer map[string]string

type ClozeAnswer []string

type ComprehensionAnswer []*int

// DefaultAnswer returns the zero-value payload a fill session starts a
// question of the given type with.
func DefaultAnswer(t QuestionType) any {
	switch t {
	case Categorize:
		return CategorizeAnswer{}
	case Cloze:
		return ClozeAnswer{}
	case Comprehension:
		return ComprehensionAnswer{}
	default:
		return nil
	}
}

// DecodeAnswerPayload interprets a raw answer as the payload shape of the
// given question type.
func DecodeAnswerPayload(t QuestionType, raw json.RawMessage) (any, error) {
	switch t {
	case Categorize:
		var a CategorizeAnswer
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	case Cloze:
		var a ClozeAnswer
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	case Comprehension:
		var a ComprehensionAnswer
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	default:
		var a any
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	}
}
