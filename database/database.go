package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db                    *gorm.DB
	developerRepo         *DeveloperRepo
	developerInfoRepo     *DeveloperInfoRepo
	projectRepo           *ProjectRepo
	technologyRepo        *TechnologyRepo
	projectTechnologyRepo *ProjectTechnologyRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		developerRepo:         NewDeveloperRepo(db),
		developerInfoRepo:     NewDeveloperInfoRepo(db),
		projectRepo:           NewProjectRepo(db),
		technologyRepo:        NewTechnologyRepo(db),
		projectTechnologyRepo: NewProjectTechnologyRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) DeveloperRepo() *DeveloperRepo {
	return d.developerRepo
}

func (d Database) DeveloperInfoRepo() *DeveloperInfoRepo {
	return d.developerInfoRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) ProjectTechnologyRepo() *ProjectTechnologyRepo {
	return d.projectTechnologyRepo
}

// Transaction runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks that the primary connection is reachable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
