// Package builder holds the in-memory draft of a form while it is being
// composed. A draft moves Empty -> Drafting -> Saving -> Saved; a failed save
// lands in Error and a retry goes back through Saving. Any edit after a
// successful save drops back to Drafting and invalidates the saved id.
package builder

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/formlab/formbuilder-service/internal/errors"
	"github.com/formlab/formbuilder-service/internal/gateway"
	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/registry"
	"github.com/google/uuid"
)

type State string

const (
	StateEmpty    State = "empty"
	StateDrafting State = "drafting"
	StateSaving   State = "saving"
	StateSaved    State = "saved"
	StateError    State = "error"
)

var (
	// ErrQuestionNotFound is returned when an update or removal addresses an
	// id the draft does not contain.
	ErrQuestionNotFound = errors.New("question not found in draft")

	// ErrSaveInProgress guards against overlapping submits.
	ErrSaveInProgress = errors.New("a save is already in progress")
)

// QuestionPatch carries a partial update for a question. Only set fields are
// merged in; content fields apply only when their kind matches the question's
// type.
type QuestionPatch struct {
	Prompt *string
	Image  *string

	Categories *[]string
	Items      *[]string

	Sentence *string
	Options  *[]string

	Passage *string
	MCQs    *[]models.MCQ
}

// Builder is the form-draft state machine. It is a single-session object;
// methods are not safe for concurrent use.
type Builder struct {
	gw     gateway.Gateway
	recent registry.Store

	state       State
	title       string
	headerImage string
	createdBy   *string
	questions   []models.Question

	savedFormID uint
	lastError   string

	newID func() string
	now   func() time.Time
}

// New creates an empty draft backed by the given gateway and recent-forms
// store. The store may be nil when no "my forms" listing is wanted.
func New(gw gateway.Gateway, recent registry.Store) *Builder {
	return &Builder{
		gw:     gw,
		recent: recent,
		state:  StateEmpty,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

func (b *Builder) State() State { return b.state }

// SavedFormID returns the persisted form id, valid only in StateSaved.
func (b *Builder) SavedFormID() uint { return b.savedFormID }

// LastError returns the server-reported message of the most recent failed
// save, valid only in StateError.
func (b *Builder) LastError() string { return b.lastError }

func (b *Builder) Title() string { return b.title }

// Questions returns a copy of the drafted questions in order.
func (b *Builder) Questions() []models.Question {
	out := make([]models.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

func (b *Builder) SetTitle(title string) {
	b.title = title
	b.markEdited()
}

func (b *Builder) SetHeaderImage(url string) {
	b.headerImage = url
	b.markEdited()
}

func (b *Builder) SetCreatedBy(owner string) {
	b.createdBy = &owner
	b.markEdited()
}

// AddQuestion appends a question of the given type with a fresh unique id and
// the archetype's default content, and returns it.
func (b *Builder) AddQuestion(t models.QuestionType) models.Question {
	question := models.Question{
		ID:      b.newID(),
		Type:    t,
		Content: models.DefaultContent(t),
	}
	b.questions = append(b.questions, question)
	b.markEdited()
	return question
}

// UpdateQuestion merges a partial update into the addressed question. An
// unknown id is an explicit error rather than a silent no-op.
func (b *Builder) UpdateQuestion(id string, patch QuestionPatch) error {
	for i := range b.questions {
		if b.questions[i].ID != id {
			continue
		}
		applyPatch(&b.questions[i], patch)
		b.markEdited()
		return nil
	}
	return ErrQuestionNotFound
}

// RemoveQuestion deletes the addressed question. The minimum-question rule is
// enforced only at submit time, so removing the last question is allowed.
func (b *Builder) RemoveQuestion(id string) error {
	for i := range b.questions {
		if b.questions[i].ID != id {
			continue
		}
		b.questions = append(b.questions[:i], b.questions[i+1:]...)
		b.markEdited()
		return nil
	}
	return ErrQuestionNotFound
}

// Submit validates the draft and persists it through the gateway. On success
// the builder transitions to Saved and the saved form is recorded in the
// recent-forms store; on failure it transitions to Error carrying the server
// message.
func (b *Builder) Submit(ctx context.Context) (uint, error) {
	if b.state == StateSaving {
		return 0, ErrSaveInProgress
	}

	if b.title == "" {
		return 0, apperrors.NewValidationError("title", "is required", nil)
	}
	if len(b.questions) == 0 {
		return 0, apperrors.NewValidationError("questions", "must contain at least one question", nil)
	}

	b.state = StateSaving

	form, err := b.gw.CreateForm(ctx, &gateway.FormDraft{
		Title:       b.title,
		HeaderImage: b.headerImage,
		Questions:   b.questions,
		CreatedBy:   b.createdBy,
	})
	if err != nil {
		b.state = StateError
		b.lastError = err.Error()
		return 0, err
	}

	b.state = StateSaved
	b.savedFormID = form.ID
	b.lastError = ""

	if b.recent != nil {
		record := registry.RecentForm{
			ID:            form.ID,
			Title:         b.title,
			QuestionCount: len(b.questions),
			CreatedAt:     b.now().UTC(),
		}
		// The save already succeeded; a registry failure must not undo it
		_ = b.recent.Append(ctx, record)
	}

	return form.ID, nil
}

// markEdited records that the draft changed: a saved draft becomes a new
// drafting session and the previous save no longer applies.
func (b *Builder) markEdited() {
	b.savedFormID = 0
	b.lastError = ""
	if len(b.questions) == 0 && b.title == "" && b.headerImage == "" {
		b.state = StateEmpty
		return
	}
	b.state = StateDrafting
}

func applyPatch(q *models.Question, patch QuestionPatch) {
	if patch.Prompt != nil {
		q.Prompt = *patch.Prompt
	}
	if patch.Image != nil {
		q.Image = *patch.Image
	}

	switch content := q.Content.(type) {
	case models.CategorizeContent:
		if patch.Categories != nil {
			content.Categories = *patch.Categories
		}
		if patch.Items != nil {
			content.Items = *patch.Items
		}
		q.Content = content

	case models.ClozeContent:
		if patch.Sentence != nil {
			content.Sentence = *patch.Sentence
		}
		if patch.Options != nil {
			content.Options = *patch.Options
		}
		q.Content = content

	case models.ComprehensionContent:
		if patch.Passage != nil {
			content.Passage = *patch.Passage
		}
		if patch.MCQs != nil {
			content.MCQs = *patch.MCQs
		}
		q.Content = content
	}
}
