package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/devprojects-api/database"
	"github.com/rpupo63/devprojects-api/errs"
	"github.com/rpupo63/devprojects-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type projectHandler struct {
	responder             Responder
	logger                zerolog.Logger
	projectRepo           *database.ProjectRepo
	technologyRepo        *database.TechnologyRepo
	projectTechnologyRepo *database.ProjectTechnologyRepo
	now                   func() time.Time
}

func newProjectHandler(db database.Database, now func() time.Time) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:             NewResponder(logger),
		logger:                logger,
		projectRepo:           db.ProjectRepo(),
		technologyRepo:        db.TechnologyRepo(),
		projectTechnologyRepo: db.ProjectTechnologyRepo(),
		now:                   now,
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID with its technologies
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project "Project details with technologies"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, projectLookupError(err))
			return
		}

		technologies, err := h.projectTechnologyRepo.FindByProject(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find technologies of", "project", err))
			return
		}
		project.Technologies = technologies

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.NewProject true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing keys"
// @Failure 404 {object} ErrorResponse "Not Found - Developer not found"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.NewProject
		if err := ctxGetPayload(r.Context()).Decode(&body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := body.ToModel()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("startDate", err.Error()))
			return
		}

		if err := h.projectRepo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, projectWriteError("create project", err))
			return
		}

		h.responder.WriteCreated(w, project)
	}
}

// attachTechnology links an existing technology to a project
// @Summary Attach technology
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param technology body models.AttachTechnology true "Technology name"
// @Success 201 {object} models.ProjectTechnology "Created join row"
// @Failure 400 {object} ErrorResponse "Bad Request - Technology not supported"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 409 {object} ErrorResponse "Conflict - Technology already added to project"
// @Router /projects/{id}/technologies [post]
func (h projectHandler) attachTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body models.AttachTechnology
		if err := ctxGetPayload(r.Context()).Decode(&body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.findTechnology(r, body.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		attached, err := h.projectTechnologyRepo.Exists(r.Context(), projectID, technology.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up technologies of", "project", err))
			return
		}
		if attached {
			h.responder.WriteError(w, errs.NewConflictError("Technology already added to project"))
			return
		}

		link := models.ProjectTechnology{
			ProjectID:    projectID,
			TechnologyID: technology.ID,
			AddedIn:      models.DateOf(h.now().AddDate(0, 0, 1)),
		}
		if err := h.projectTechnologyRepo.Add(r.Context(), &link); err != nil {
			apiErr := errs.NewDatabaseError("attach technology to", "project", err)
			if errs.IsUniqueConstraintViolationError(apiErr) {
				h.responder.WriteError(w, errs.NewConflictError("Technology already added to project"))
				return
			}
			h.responder.WriteError(w, apiErr)
			return
		}

		h.logger.Debug().
			Int64("projectId", projectID).
			Str("technology", technology.Name).
			Msg("technology attached")

		h.responder.WriteCreated(w, link)
	}
}

// detachTechnology removes a technology from a project
// @Summary Detach technology
// @Tags Projects
// @Param id path int true "Project ID"
// @Param name path string true "Technology name"
// @Success 204
// @Failure 400 {object} ErrorResponse "Bad Request - Technology not supported"
// @Failure 404 {object} ErrorResponse "Not Found - Project or technology link not found"
// @Router /projects/{id}/technologies/{name} [delete]
func (h projectHandler) detachTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.findTechnology(r, chi.URLParam(r, "name"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err = h.projectTechnologyRepo.Delete(r.Context(), projectID, technology.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("Technology not added to project"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("detach technology from", "project", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// updateProject partially updates a project. Keys outside the project
// schema are dropped; "endDate": null clears the end date.
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param project body models.ProjectPatch true "Fields to change"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project or developer not found"
// @Router /projects/{id} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		body := ctxGetPayload(r.Context())
		var patch models.ProjectPatch
		if err := body.Decode(&patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		patch.ClearEndDate = body.IsNull("endDate")
		columns, err := patch.Columns()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("date", err.Error()))
			return
		}
		if len(columns) == 0 {
			h.responder.WriteError(w, errs.NewEmptyPatchError(models.ProjectKeys))
			return
		}

		project, err := h.projectRepo.Update(r.Context(), id, columns)
		if err != nil {
			h.responder.WriteError(w, projectWriteError("update project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Param id path int true "Project ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, projectLookupError(err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// findTechnology resolves a name against the reference set.
func (h projectHandler) findTechnology(r *http.Request, name string) (*models.Technology, error) {
	technology, err := h.technologyRepo.FindByName(r.Context(), name)
	if err == nil {
		return technology, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapDatabaseError("find technology", "technology", err)
	}

	apiErr := errs.NewBadRequestErrorWithField("Technology not supported", "name", "")
	if all, err := h.technologyRepo.FindAll(r.Context()); err == nil {
		names := make([]string, 0, len(all))
		for _, t := range all {
			names = append(names, t.Name)
		}
		apiErr.Details = "options: " + strings.Join(names, ", ")
	}
	return nil, apiErr
}

func projectLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("Project")
	}
	return wrapDatabaseError("find project", "project", err)
}

// projectWriteError maps a dangling developerId to the same 404 the
// existence guard gives.
func projectWriteError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("Project")
	}
	apiErr := errs.NewDatabaseError(operation, "project", err)
	if errs.IsForeignKeyConstraintError(apiErr) {
		return errs.NewNotFound("Developer")
	}
	return apiErr
}
