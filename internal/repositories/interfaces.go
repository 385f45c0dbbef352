package repositories

import (
	"context"
	"time"

	"github.com/formlab/formbuilder-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ResponseFilters struct {
	SubmittedBy *string    `json:"submitted_by"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
	SortOrder   string     `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type ResponseRepository interface {
	Create(ctx context.Context, response *models.FormResponse) error
	GetByID(ctx context.Context, id uint) (*models.FormResponse, error)
	ListByForm(ctx context.Context, formID uint, filters ResponseFilters) ([]*models.FormResponse, error)
	CountByForm(ctx context.Context, formID uint) (int64, error)
}

// Repository aggregates the per-aggregate repositories behind one dependency.
type Repository interface {
	Form() FormRepository
	Response() ResponseRepository
}
