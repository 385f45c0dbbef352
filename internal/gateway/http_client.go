package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/formlab/formbuilder-service/internal/models"
)

// envelope mirrors the {success, data, message} shape every endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// HTTPGateway talks to the form service over its JSON REST surface.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a gateway against baseURL, e.g. "http://localhost:8080".
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (g *HTTPGateway) CreateForm(ctx context.Context, draft *FormDraft) (*models.Form, error) {
	var form models.Form
	if err := g.postJSON(ctx, "/api/forms", draft, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (g *HTTPGateway) GetForm(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	if err := g.getJSON(ctx, fmt.Sprintf("/api/forms/%d", id), &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (g *HTTPGateway) CreateResponse(ctx context.Context, draft *ResponseDraft) (*models.FormResponse, error) {
	var response models.FormResponse
	if err := g.postJSON(ctx, "/api/responses", draft, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (g *HTTPGateway) GetResponses(ctx context.Context, formID uint) ([]*models.FormResponse, error) {
	responses := make([]*models.FormResponse, 0)
	if err := g.getJSON(ctx, fmt.Sprintf("/api/responses/%d", formID), &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (g *HTTPGateway) UploadAsset(ctx context.Context, filename string, data io.Reader) (*Asset, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var asset Asset
	if err := g.do(req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (g *HTTPGateway) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, dest)
}

func (g *HTTPGateway) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return err
	}
	return g.do(req, dest)
}

func (g *HTTPGateway) do(req *http.Request, dest interface{}) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
