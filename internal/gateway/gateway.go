package gateway

import (
	"context"
	"fmt"
	"io"

	"github.com/formlab/formbuilder-service/internal/models"
)

// FormDraft is the payload of the create-form operation.
type FormDraft struct {
	Title       string            `json:"title"`
	HeaderImage string            `json:"headerImage,omitempty"`
	Questions   []models.Question `json:"questions"`
	CreatedBy   *string           `json:"createdBy,omitempty"`
}

// ResponseDraft is the payload of the create-response operation.
type ResponseDraft struct {
	FormID      uint            `json:"formId"`
	Answers     []models.Answer `json:"answers"`
	SubmittedBy *string         `json:"submittedBy,omitempty"`
}

// Asset is the result of the upload operation.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Gateway is the REST surface the builder and fill state machines talk to.
// Implementations surface server messages verbatim; no retry or backoff.
type Gateway interface {
	CreateForm(ctx context.Context, draft *FormDraft) (*models.Form, error)
	GetForm(ctx context.Context, id uint) (*models.Form, error)
	CreateResponse(ctx context.Context, draft *ResponseDraft) (*models.FormResponse, error)
	GetResponses(ctx context.Context, formID uint) ([]*models.FormResponse, error)
	UploadAsset(ctx context.Context, filename string, data io.Reader) (*Asset, error)
}

// APIError carries the server-reported message for a failed operation.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsNotFound reports whether the error is a 404 from the server.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 404
}
