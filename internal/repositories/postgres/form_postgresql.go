package postgres

import (
	"context"
	"fmt"

	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type FormPostgreSQL struct {
	db *gorm.DB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{db: db}
}

// Create persists a form with its questions embedded in the JSONB column.
func (f *FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	if err := f.db.WithContext(ctx).Create(form).Error; err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

// GetByID retrieves a form by ID
func (f *FormPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	if err := f.db.WithContext(ctx).First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// Exists reports whether a form with the given id is present.
func (f *FormPostgreSQL) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check form existence: %w", err)
	}
	return count > 0, nil
}
