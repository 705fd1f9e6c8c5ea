package database

import (
	"context"

	"github.com/rpupo63/devprojects-api/models"
	"gorm.io/gorm"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

// FindAll returns the technology reference set
func (r *TechnologyRepo) FindAll(ctx context.Context) ([]*models.Technology, error) {
	technologies := make([]*models.Technology, 0)
	err := r.db.WithContext(ctx).Order("id").Find(&technologies).Error
	return technologies, err
}

// FindByName returns the technology with exactly this name
func (r *TechnologyRepo) FindByName(ctx context.Context, name string) (*models.Technology, error) {
	var technology models.Technology
	err := r.db.WithContext(ctx).
		Where(map[string]any{"technologyName": name}).
		First(&technology).Error
	if err != nil {
		return nil, err
	}
	return &technology, nil
}
