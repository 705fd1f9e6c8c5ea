package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/devprojects-api/models"
)

// setupRoutes registers every route with its guards, in the order they run.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	g := handlers.guards

	r.Get("/health", handlers.healthHandler.health())

	r.Route("/developers", func(r chi.Router) {
		h := handlers.developerHandler

		r.Post("/", guarded(h.responder, h.createDeveloper(),
			requireFields(models.DeveloperKeys),
			g.uniqueEmail,
		))
		r.Get("/", h.getAllDevelopers())

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", guarded(h.responder, h.getDeveloper(),
				g.developerExists,
			))
			r.Patch("/", guarded(h.responder, h.updateDeveloper(),
				g.developerExists,
				rejectUnknownFields(models.DeveloperKeys),
			))
			r.Delete("/", guarded(h.responder, h.deleteDeveloper(),
				g.developerExists,
			))
			r.Get("/projects", guarded(h.responder, h.getDeveloperProjects(),
				g.developerExists,
			))

			r.Post("/infos", guarded(h.responder, h.createDeveloperInfo(),
				requireFields(models.DeveloperInfoKeys),
				requireEnum("preferredOS", "PreferredOS", models.OSValues),
				g.developerExists,
			))
			r.Patch("/infos", guarded(h.responder, h.updateDeveloperInfo(),
				rejectUnknownFields(models.DeveloperInfoKeys),
				requireFields([]string{"preferredOS"}),
				requireEnum("preferredOS", "PreferredOS", models.OSValues),
				g.developerExists,
			))
		})
	})

	r.Route("/projects", func(r chi.Router) {
		h := handlers.projectHandler

		r.Post("/", guarded(h.responder, h.createProject(),
			g.bodyDeveloperExists,
			requireFields(models.ProjectRequiredKeys),
		))
		r.Get("/", h.getAllProjects())

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", guarded(h.responder, h.getProject(),
				g.projectExists,
			))
			r.Patch("/", guarded(h.responder, h.updateProject(),
				g.projectExists,
				requireAnyField(models.ProjectKeys),
				g.bodyDeveloperExists,
			))
			r.Delete("/", guarded(h.responder, h.deleteProject(),
				g.projectExists,
			))

			r.Post("/technologies", guarded(h.responder, h.attachTechnology(),
				g.projectExists,
				requireFields(models.TechnologyKeys),
			))
			r.Delete("/technologies/{name}", guarded(h.responder, h.detachTechnology(),
				g.projectExists,
			))
		})
	})
}
