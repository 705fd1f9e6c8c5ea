package database

import (
	"context"

	"github.com/rpupo63/devprojects-api/models"
	"gorm.io/gorm"
)

type DeveloperInfoRepo struct {
	db *gorm.DB
}

func NewDeveloperInfoRepo(db *gorm.DB) *DeveloperInfoRepo {
	return &DeveloperInfoRepo{db}
}

// FindByID returns a developer info by its ID
func (r *DeveloperInfoRepo) FindByID(ctx context.Context, id int64) (*models.DeveloperInfo, error) {
	var info models.DeveloperInfo
	if err := r.db.WithContext(ctx).First(&info, id).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

// Add inserts a new developer info
func (r *DeveloperInfoRepo) Add(ctx context.Context, info *models.DeveloperInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

// Update sets only the given columns and returns the stored row
func (r *DeveloperInfoRepo) Update(ctx context.Context, id int64, columns map[string]any) (*models.DeveloperInfo, error) {
	result := r.db.WithContext(ctx).Model(&models.DeveloperInfo{ID: id}).Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a developer info by id
func (r *DeveloperInfoRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.DeveloperInfo{}, id).Error
}
