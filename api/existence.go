package api

import (
	"net/http"

	"github.com/rpupo63/devprojects-api/errs"
)

// developerExists rejects requests whose {id} names no developer.
func (g guards) developerExists(r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	return g.checkDeveloper(r, id)
}

// bodyDeveloperExists rejects requests whose developerId names no developer.
// An absent developerId is left to the required-fields guard.
func (g guards) bodyDeveloperExists(r *http.Request) error {
	p := ctxGetPayload(r.Context())
	if !p.Has("developerId") {
		return nil
	}
	id, ok := p.Int64("developerId")
	if !ok {
		return errs.NewBadRequestErrorWithField("Invalid developerId", "developerId", "developerId must be an integer")
	}
	return g.checkDeveloper(r, id)
}

func (g guards) checkDeveloper(r *http.Request, id int64) error {
	exists, err := g.developerRepo.Exists(r.Context(), id)
	if err != nil {
		return errs.NewDatabaseError("look up", "developer", err)
	}
	if !exists {
		return errs.NewNotFound("Developer")
	}
	return nil
}

// projectExists rejects requests whose {id} names no project.
func (g guards) projectExists(r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	exists, err := g.projectRepo.Exists(r.Context(), id)
	if err != nil {
		return errs.NewDatabaseError("look up", "project", err)
	}
	if !exists {
		return errs.NewNotFound("Project")
	}
	return nil
}
