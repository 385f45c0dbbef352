package postgres

import (
	"fmt"

	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/formlab/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	form     repositories.FormRepository
	response repositories.ResponseRepository
}

// NewRepository wires the postgres-backed repositories.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		form:     NewFormPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

func (r *repository) Form() repositories.FormRepository {
	return r.form
}

func (r *repository) Response() repositories.ResponseRepository {
	return r.response
}

// AutoMigrate creates or updates the forms and responses tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Form{}, &models.FormResponse{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
