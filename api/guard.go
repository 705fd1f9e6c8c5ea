package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/devprojects-api/database"
	"github.com/rpupo63/devprojects-api/errs"
)

// A guard inspects a request before its handler runs. Returning nil lets the
// request proceed; returning an error (normally an *errs.ApiErr carrying the
// status and message) rejects it and no later guard or handler runs.
type guard func(r *http.Request) error

// guarded decodes the JSON body once, runs guards in order and calls handler
// only when all of them pass.
func guarded(responder Responder, handler http.HandlerFunc, guards ...guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := readPayload(r)
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		r = r.WithContext(ctxWithPayload(r.Context(), p))

		for _, g := range guards {
			if err := g(r); err != nil {
				responder.WriteError(w, err)
				return
			}
		}

		handler(w, r)
	}
}

// guards holds the storage the I/O guards read from.
type guards struct {
	developerRepo *database.DeveloperRepo
	projectRepo   *database.ProjectRepo
}

func newGuards(db database.Database) guards {
	return guards{
		developerRepo: db.DeveloperRepo(),
		projectRepo:   db.ProjectRepo(),
	}
}

// pathID parses the {id} route parameter. Only a value that is not an
// integer is rejected; an id no row can have is left to the existence guards.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestErrorWithField("Invalid id", "id", "id must be an integer")
	}
	return id, nil
}
