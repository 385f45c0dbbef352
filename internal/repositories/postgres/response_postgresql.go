package postgres

import (
	"context"
	"fmt"

	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Create persists a response with its answers embedded in the JSONB column.
func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.FormResponse) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

// GetByID retrieves a response by ID
func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id uint) (*models.FormResponse, error) {
	var response models.FormResponse
	if err := r.db.WithContext(ctx).First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByForm retrieves all responses to a form. A form without responses
// yields an empty slice, not an error.
func (r *ResponsePostgreSQL) ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.FormResponse, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FormResponse{}).
		Where("form_id = ?", formID)

	if filters.SubmittedBy != nil {
		query = query.Where("submitted_by = ?", *filters.SubmittedBy)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	order := "created_at DESC"
	if filters.SortOrder == "asc" {
		order = "created_at ASC"
	}
	query = query.Order(order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	responses := make([]*models.FormResponse, 0)
	if err := query.Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

// CountByForm counts responses to a form.
func (r *ResponsePostgreSQL) CountByForm(ctx context.Context, formID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FormResponse{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
