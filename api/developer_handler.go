package api

import (
	"errors"
	"net/http"

	"github.com/rpupo63/devprojects-api/database"
	"github.com/rpupo63/devprojects-api/errs"
	"github.com/rpupo63/devprojects-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type developerHandler struct {
	responder         Responder
	logger            zerolog.Logger
	db                database.Database
	developerRepo     *database.DeveloperRepo
	developerInfoRepo *database.DeveloperInfoRepo
	projectRepo       *database.ProjectRepo
}

func newDeveloperHandler(db database.Database) developerHandler {
	logger := log.With().Str("handlerName", "developerHandler").Logger()

	return developerHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		db:                db,
		developerRepo:     db.DeveloperRepo(),
		developerInfoRepo: db.DeveloperInfoRepo(),
		projectRepo:       db.ProjectRepo(),
	}
}

// createDeveloper creates a new developer
// @Summary Create developer
// @Tags Developers
// @Accept json
// @Produce json
// @Param developer body models.NewDeveloper true "Developer data"
// @Success 201 {object} models.Developer
// @Failure 400 {object} ErrorResponse "Bad Request - Missing keys"
// @Failure 409 {object} ErrorResponse "Conflict - Email already in use"
// @Router /developers [post]
func (h developerHandler) createDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := ctxGetPayload(r.Context())

		// The table has no column for anything else
		if unknown := p.Unknown(models.DeveloperKeys); len(unknown) > 0 {
			h.responder.WriteError(w, errs.NewUndefinedColumnError(models.DeveloperKeys, unknown))
			return
		}

		var body models.NewDeveloper
		if err := p.Decode(&body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		developer := body.ToModel()
		if err := h.developerRepo.Add(r.Context(), &developer); err != nil {
			h.responder.WriteError(w, developerWriteError("create developer", err))
			return
		}

		h.responder.WriteCreated(w, developer)
	}
}

// createDeveloperInfo creates the info of a developer and links it
// @Summary Create developer info
// @Tags Developers
// @Accept json
// @Produce json
// @Param id path int true "Developer ID"
// @Param info body models.NewDeveloperInfo true "Developer info data"
// @Success 201 {object} models.DeveloperInfo
// @Failure 400 {object} ErrorResponse "Bad Request - Missing keys or invalid preferredOS"
// @Failure 404 {object} ErrorResponse "Not Found - Developer not found"
// @Router /developers/{id}/infos [post]
func (h developerHandler) createDeveloperInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developerID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body models.NewDeveloperInfo
		if err := ctxGetPayload(r.Context()).Decode(&body); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		info, err := body.ToModel()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("developerSince", err.Error()))
			return
		}

		err = h.db.Transaction(r.Context(), func(tx database.Database) error {
			developer, err := tx.DeveloperRepo().FindByID(r.Context(), developerID)
			if err != nil {
				return developerLookupError(err)
			}
			if developer.DeveloperInfoID != nil {
				h.logger.Warn().
					Int64("developerId", developerID).
					Int64("previousInfoId", *developer.DeveloperInfoID).
					Msg("developer already has an info; linking the new one")
			}

			if err := tx.DeveloperInfoRepo().Add(r.Context(), &info); err != nil {
				return wrapDatabaseError("create developer info", "developer info", err)
			}
			if err := tx.DeveloperRepo().LinkInfo(r.Context(), developerID, info.ID); err != nil {
				return wrapDatabaseError("link developer info", "developer", err)
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, transactionError("create developer info", err))
			return
		}

		h.responder.WriteCreated(w, info)
	}
}

// getAllDevelopers lists every developer with its info
// @Summary List developers
// @Tags Developers
// @Produce json
// @Success 200 {array} models.DeveloperWithInfo
// @Router /developers [get]
func (h developerHandler) getAllDevelopers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developers, err := h.developerRepo.FindAllWithInfo(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find developers", "developers", err))
			return
		}

		h.responder.WriteJSON(w, developers)
	}
}

// getDeveloper retrieves a developer by ID with its info
// @Summary Get developer
// @Tags Developers
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} models.DeveloperWithInfo
// @Failure 404 {object} ErrorResponse "Not Found - Developer not found"
// @Router /developers/{id} [get]
func (h developerHandler) getDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		developer, err := h.developerRepo.FindWithInfo(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, developerLookupError(err))
			return
		}

		h.responder.WriteJSON(w, developer)
	}
}

// getDeveloperProjects lists the projects of a developer
// @Summary List developer projects
// @Tags Developers
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {array} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - Developer not found"
// @Router /developers/{id}/projects [get]
func (h developerHandler) getDeveloperProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projectRepo.FindByDeveloper(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// updateDeveloper partially updates a developer
// @Summary Update developer
// @Tags Developers
// @Accept json
// @Produce json
// @Param id path int true "Developer ID"
// @Param developer body models.DeveloperPatch true "Fields to change"
// @Success 200 {object} models.Developer
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown keys"
// @Failure 404 {object} ErrorResponse "Not Found - Developer not found"
// @Router /developers/{id} [patch]
func (h developerHandler) updateDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.DeveloperPatch
		if err := ctxGetPayload(r.Context()).Decode(&patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		columns := patch.Columns()
		if len(columns) == 0 {
			h.responder.WriteError(w, errs.NewEmptyPatchError(models.DeveloperKeys))
			return
		}

		developer, err := h.developerRepo.Update(r.Context(), id, columns)
		if err != nil {
			h.responder.WriteError(w, developerWriteError("update developer", err))
			return
		}

		h.responder.WriteJSON(w, developer)
	}
}

// updateDeveloperInfo partially updates the info of a developer
// @Summary Update developer info
// @Tags Developers
// @Accept json
// @Produce json
// @Param id path int true "Developer ID"
// @Param info body models.DeveloperInfoPatch true "Fields to change"
// @Success 200 {object} models.DeveloperInfo
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown keys or invalid preferredOS"
// @Failure 404 {object} ErrorResponse "Not Found - Developer or info not found"
// @Router /developers/{id}/infos [patch]
func (h developerHandler) updateDeveloperInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.DeveloperInfoPatch
		if err := ctxGetPayload(r.Context()).Decode(&patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		columns, err := patch.Columns()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("developerSince", err.Error()))
			return
		}
		if len(columns) == 0 {
			h.responder.WriteError(w, errs.NewEmptyPatchError(models.DeveloperInfoKeys))
			return
		}

		developer, err := h.developerRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, developerLookupError(err))
			return
		}
		if developer.DeveloperInfoID == nil {
			h.responder.WriteError(w, errs.NewNotFound("Developer info"))
			return
		}

		info, err := h.developerInfoRepo.Update(r.Context(), *developer.DeveloperInfoID, columns)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update developer info", "developer info", err))
			return
		}

		h.responder.WriteJSON(w, info)
	}
}

// deleteDeveloper deletes a developer and its info
// @Summary Delete developer
// @Tags Developers
// @Param id path int true "Developer ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Developer not found"
// @Router /developers/{id} [delete]
func (h developerHandler) deleteDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err = h.db.Transaction(r.Context(), func(tx database.Database) error {
			developer, err := tx.DeveloperRepo().FindByID(r.Context(), id)
			if err != nil {
				return developerLookupError(err)
			}
			// The developer row references the info, so it goes first
			if err := tx.DeveloperRepo().Delete(r.Context(), id); err != nil {
				return developerLookupError(err)
			}
			if developer.DeveloperInfoID != nil {
				if err := tx.DeveloperInfoRepo().Delete(r.Context(), *developer.DeveloperInfoID); err != nil {
					return wrapDatabaseError("delete developer info", "developer info", err)
				}
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, transactionError("delete developer", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// developerLookupError turns a missing row into the "Developer not found" answer.
func developerLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("Developer")
	}
	return wrapDatabaseError("find developer", "developer", err)
}

// developerWriteError reports a duplicate email the same way the guard does.
func developerWriteError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("Developer")
	}
	apiErr := errs.NewDatabaseError(operation, "developer", err)
	if errs.IsUniqueConstraintViolationError(apiErr) {
		return errs.NewConflictError("Email already in use")
	}
	return apiErr
}
