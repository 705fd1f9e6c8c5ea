package database

import (
	"context"

	"github.com/rpupo63/devprojects-api/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type ProjectTechnologyRepo struct {
	db *gorm.DB
}

func NewProjectTechnologyRepo(db *gorm.DB) *ProjectTechnologyRepo {
	return &ProjectTechnologyRepo{db}
}

// FindByProject lists the technologies attached to a project
func (r *ProjectTechnologyRepo) FindByProject(ctx context.Context, projectID int64) ([]models.ProjectTechnologyDetail, error) {
	details := make([]models.ProjectTechnologyDetail, 0)
	err := r.db.WithContext(ctx).
		Table("projects_technologies AS pt").
		Select(`t."id" AS "technologyId", t."technologyName" AS "technologyName", pt."addedIn" AS "addedIn"`).
		Joins(`JOIN technologies AS t ON t."id" = pt."technologyId"`).
		Where(`pt."projectId" = ?`, projectID).
		Order(`t."id"`).
		Scan(&details).Error
	return details, err
}

// Exists reports whether the technology is already attached to the project
func (r *ProjectTechnologyRepo) Exists(ctx context.Context, projectID, technologyID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.ProjectTechnology{}).
		Where(map[string]any{"projectId": projectID, "technologyId": technologyID}).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a join row
func (r *ProjectTechnologyRepo) Add(ctx context.Context, link *models.ProjectTechnology) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// Delete removes the join row between a project and a technology
func (r *ProjectTechnologyRepo) Delete(ctx context.Context, projectID, technologyID int64) error {
	result := r.db.WithContext(ctx).
		Where(map[string]any{"projectId": projectID, "technologyId": technologyID}).
		Delete(&models.ProjectTechnology{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
