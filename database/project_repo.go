package database

import (
	"context"

	"github.com/rpupo63/devprojects-api/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects from the database
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	projects := make([]*models.Project, 0)
	err := r.db.WithContext(ctx).Order("id").Find(&projects).Error
	return projects, err
}

// FindByDeveloper returns the projects owned by a developer
func (r *ProjectRepo) FindByDeveloper(ctx context.Context, developerID int64) ([]*models.Project, error) {
	projects := make([]*models.Project, 0)
	err := r.db.WithContext(ctx).
		Where(map[string]any{"developerId": developerID}).
		Order("id").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project with the given ID is stored, reading from the primary
func (r *ProjectRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.Project{}).
		Where(map[string]any{"id": id}).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update sets only the given columns and returns the stored row
func (r *ProjectRepo) Update(ctx context.Context, id int64, columns map[string]any) (*models.Project, error) {
	result := r.db.WithContext(ctx).Model(&models.Project{ID: id}).Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
