package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type QuestionType string

const (
	Categorize    QuestionType = "categorize"
	Cloze         QuestionType = "cloze"
	Comprehension QuestionType = "comprehension"
)

// BlankDelimiter marks a fillable gap inside a cloze sentence.
const BlankDelimiter = "__"

// QuestionContent is the payload of a question; exactly one concrete type
// exists per question archetype. The wire format inlines the payload fields
// next to the common question fields and selects the concrete type by the
// "type" discriminator.
type QuestionContent interface {
	Kind() QuestionType
}

type CategorizeContent struct {
	Categories []string `json:"categories"`
	Items      []string `json:"items"`
}

func (CategorizeContent) Kind() QuestionType { return Categorize }

type ClozeContent struct {
	Sentence string   `json:"sentence"`
	Options  []string `json:"options"`
}

func (ClozeContent) Kind() QuestionType { return Cloze }

// Blanks returns the number of gaps in the sentence.
func (c ClozeContent) Blanks() int {
	return CountBlanks(c.Sentence)
}

type ComprehensionContent struct {
	Passage string `json:"passage"`
	MCQs    []MCQ  `json:"mcqs"`
}

func (ComprehensionContent) Kind() QuestionType { return Comprehension }

// MCQ is a single multiple-choice question attached to a comprehension
// passage. Options always has exactly four entries; Correct indexes into it.
type MCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// Question is one entry of a form. ID is caller-generated, assigned once and
// never reused within a form.
type Question struct {
	ID      string          `json:"id"`
	Type    QuestionType    `json:"type"`
	Prompt  string          `json:"question"`
	Image   string          `json:"image"`
	Content QuestionContent `json:"-"`
}

// CountBlanks counts delimiter-marked gaps in a cloze sentence. A sentence
// without the delimiter has zero blanks.
func CountBlanks(sentence string) int {
	return len(strings.Split(sentence, BlankDelimiter)) - 1
}

// DefaultContent returns the empty payload a freshly added question of the
// given type starts from: single-element placeholders so every renderer field
// is present from the first paint.
func DefaultContent(t QuestionType) QuestionContent {
	switch t {
	case Categorize:
		return CategorizeContent{
			Categories: []string{""},
			Items:      []string{""},
		}
	case Cloze:
		return ClozeContent{
			Sentence: "",
			Options:  []string{""},
		}
	case Comprehension:
		return ComprehensionContent{
			Passage: "",
			MCQs: []MCQ{
				{Question: "", Options: []string{"", "", "", ""}, Correct: 0},
			},
		}
	default:
		return nil
	}
}

// questionWire is the flat document shape shared with the persistence layer
// and the HTTP surface: all payload fields live beside the common ones and
// only those matching the discriminator are populated.
type questionWire struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Image    string       `json:"image"`

	Categories []string `json:"categories,omitempty"`
	Items      []string `json:"items,omitempty"`
	Sentence   *string  `json:"sentence,omitempty"`
	Options    []string `json:"options,omitempty"`
	Passage    *string  `json:"passage,omitempty"`
	MCQs       []MCQ    `json:"mcqs,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := questionWire{
		ID:       q.ID,
		Type:     q.Type,
		Question: q.Prompt,
		Image:    q.Image,
	}

	switch c := q.Content.(type) {
	case CategorizeContent:
		w.Categories = c.Categories
		w.Items = c.Items
	case ClozeContent:
		w.Sentence = &c.Sentence
		w.Options = c.Options
	case ComprehensionContent:
		w.Passage = &c.Passage
		w.MCQs = c.MCQs
	case nil:
		return nil, fmt.Errorf("question %s: missing content", q.ID)
	default:
		return nil, fmt.Errorf("question %s: unsupported content type %T", q.ID, q.Content)
	}

	if q.Content.Kind() != q.Type {
		return nil, fmt.Errorf("question %s: content kind %s does not match type %s", q.ID, q.Content.Kind(), q.Type)
	}

	return json.Marshal(w)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	q.ID = w.ID
	q.Type = w.Type
	q.Prompt = w.Question
	q.Image = w.Image

	switch w.Type {
	case Categorize:
		q.Content = CategorizeContent{Categories: w.Categories, Items: w.Items}
	case Cloze:
		c := ClozeContent{Options: w.Options}
		if w.Sentence != nil {
			c.Sentence = *w.Sentence
		}
		q.Content = c
	case Comprehension:
		c := ComprehensionContent{MCQs: w.MCQs}
		if w.Passage != nil {
			c.Passage = *w.Passage
		}
		q.Content = c
	default:
		return fmt.Errorf("question %s: unknown question type %q", w.ID, w.Type)
	}

	return nil
}
