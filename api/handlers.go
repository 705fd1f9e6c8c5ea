package api

import (
	"time"

	"github.com/rpupo63/devprojects-api/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, startupTime time.Time, now func() time.Time) *routeHandlers {
	return &routeHandlers{
		developerHandler: newDeveloperHandler(db),
		projectHandler:   newProjectHandler(db, now),
		healthHandler:    newHealthHandler(db, startupTime, now),
		guards:           newGuards(db),
	}
}
