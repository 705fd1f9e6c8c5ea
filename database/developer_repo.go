package database

import (
	"context"

	"github.com/rpupo63/devprojects-api/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type DeveloperRepo struct {
	db *gorm.DB
}

func NewDeveloperRepo(db *gorm.DB) *DeveloperRepo {
	return &DeveloperRepo{db}
}

const developerWithInfoColumns = `d."id" AS "developerId", d."name" AS "developerName", d."email" AS "developerEmail", ` +
	`i."id" AS "developerInfoId", i."developerSince" AS "developerInfoDeveloperSince", i."preferredOS" AS "developerInfoPreferredOS"`

func (r *DeveloperRepo) withInfo(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("developers AS d").
		Select(developerWithInfoColumns).
		Joins(`LEFT JOIN developer_infos AS i ON i."id" = d."developerInfoId"`)
}

// FindAllWithInfo returns every developer left-joined with its info
func (r *DeveloperRepo) FindAllWithInfo(ctx context.Context) ([]models.DeveloperWithInfo, error) {
	developers := make([]models.DeveloperWithInfo, 0)
	err := r.withInfo(ctx).Order(`d."id"`).Scan(&developers).Error
	return developers, err
}

// FindWithInfo returns one developer left-joined with its info
func (r *DeveloperRepo) FindWithInfo(ctx context.Context, id int64) (*models.DeveloperWithInfo, error) {
	var developers []models.DeveloperWithInfo
	if err := r.withInfo(ctx).Where(`d."id" = ?`, id).Limit(1).Scan(&developers).Error; err != nil {
		return nil, err
	}
	if len(developers) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &developers[0], nil
}

// FindByID returns a developer row by its ID
func (r *DeveloperRepo) FindByID(ctx context.Context, id int64) (*models.Developer, error) {
	var developer models.Developer
	if err := r.db.WithContext(ctx).First(&developer, id).Error; err != nil {
		return nil, err
	}
	return &developer, nil
}

// Exists reports whether a developer with the given ID is stored. It always
// reads from the primary so a row created a moment ago is visible.
func (r *DeveloperRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.Developer{}).
		Where(map[string]any{"id": id}).
		Count(&count).Error
	return count > 0, err
}

// EmailInUse reports whether any developer already uses email
func (r *DeveloperRepo) EmailInUse(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.Developer{}).
		Where(map[string]any{"email": email}).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new developer; the generated ID is written back into developer
func (r *DeveloperRepo) Add(ctx context.Context, developer *models.Developer) error {
	return r.db.WithContext(ctx).Create(developer).Error
}

// Update sets only the given columns and returns the stored row
func (r *DeveloperRepo) Update(ctx context.Context, id int64, columns map[string]any) (*models.Developer, error) {
	result := r.db.WithContext(ctx).Model(&models.Developer{ID: id}).Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// LinkInfo points the developer at its info row
func (r *DeveloperRepo) LinkInfo(ctx context.Context, developerID, infoID int64) error {
	result := r.db.WithContext(ctx).Model(&models.Developer{ID: developerID}).Update("developerInfoId", infoID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a developer from the database by id
func (r *DeveloperRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Developer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
