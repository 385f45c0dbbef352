package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/formlab/formbuilder-service/internal/models"
)

// MemoryGateway is an in-process Gateway backed by maps. It mirrors the
// server's persistence-time checks and response messages so builder and fill
// sessions behave the same against it as against the real service.
type MemoryGateway struct {
	mu         sync.Mutex
	nextFormID uint
	nextRespID uint
	forms      map[uint]*models.Form
	responses  map[uint][]*models.FormResponse
	assets     int
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		forms:     make(map[uint]*models.Form),
		responses: make(map[uint][]*models.FormResponse),
	}
}

func (g *MemoryGateway) CreateForm(ctx context.Context, draft *FormDraft) (*models.Form, error) {
	if draft.Title == "" || len(draft.Questions) == 0 {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "Title and at least one question are required."}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextFormID++
	form := &models.Form{
		Title:       draft.Title,
		HeaderImage: draft.HeaderImage,
		CreatedBy:   draft.CreatedBy,
	}
	form.ID = g.nextFormID
	form.CreatedAt = time.Now().UTC()
	if err := form.EncodeQuestions(draft.Questions); err != nil {
		return nil, err
	}

	g.forms[form.ID] = form
	return form, nil
}

func (g *MemoryGateway) GetForm(ctx context.Context, id uint) (*models.Form, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	form, ok := g.forms[id]
	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Form not found"}
	}
	return form, nil
}

func (g *MemoryGateway) CreateResponse(ctx context.Context, draft *ResponseDraft) (*models.FormResponse, error) {
	if draft.FormID == 0 {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "Form ID is required for the response."}
	}
	if len(draft.Answers) == 0 {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "Response must contain at least one answer."}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.forms[draft.FormID]; !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Form not found"}
	}

	g.nextRespID++
	response := &models.FormResponse{
		FormID:      draft.FormID,
		SubmittedBy: draft.SubmittedBy,
	}
	response.ID = g.nextRespID
	response.CreatedAt = time.Now().UTC()
	if err := response.EncodeAnswers(draft.Answers); err != nil {
		return nil, err
	}

	g.responses[draft.FormID] = append(g.responses[draft.FormID], response)
	return response, nil
}

func (g *MemoryGateway) GetResponses(ctx context.Context, formID uint) ([]*models.FormResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*models.FormResponse, len(g.responses[formID]))
	copy(out, g.responses[formID])
	return out, nil
}

func (g *MemoryGateway) UploadAsset(ctx context.Context, filename string, data io.Reader) (*Asset, error) {
	if _, err := io.Copy(io.Discard, data); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.assets++
	publicID := fmt.Sprintf("mem-%d", g.assets)
	return &Asset{URL: "/uploads/" + publicID + "-" + filename, PublicID: publicID}, nil
}
