package api

import (
	"net/http"
	"slices"

	"github.com/rpupo63/devprojects-api/errs"
)

// requireFields rejects a payload that lacks any of keys.
func requireFields(keys []string) guard {
	return func(r *http.Request) error {
		if missing := ctxGetPayload(r.Context()).Missing(keys); len(missing) > 0 {
			return errs.NewMissingFieldsError(keys)
		}
		return nil
	}
}

// rejectUnknownFields guards partial updates: every key must belong to the
// schema and at least one must be present.
func rejectUnknownFields(keys []string) guard {
	return func(r *http.Request) error {
		p := ctxGetPayload(r.Context())
		if unknown := p.Unknown(keys); len(unknown) > 0 {
			return errs.NewUnknownFieldsError(keys, unknown)
		}
		if p.Len() == 0 {
			return errs.NewEmptyPatchError(keys)
		}
		return nil
	}
}

// requireAnyField accepts a payload carrying at least one of keys. Other keys
// are left for the handler to drop.
func requireAnyField(keys []string) guard {
	return func(r *http.Request) error {
		p := ctxGetPayload(r.Context())
		for _, key := range keys {
			if p.Has(key) {
				return nil
			}
		}
		return errs.NewEmptyPatchError(keys)
	}
}

// requireEnum rejects a payload whose field is present but not one of
// allowed. An absent field passes, so a mandatory field is paired with
// requireFields.
func requireEnum(field, label string, allowed []string) guard {
	return func(r *http.Request) error {
		p := ctxGetPayload(r.Context())
		if !p.Has(field) {
			return nil
		}
		value, ok := p.String(field)
		if !ok || !slices.Contains(allowed, value) {
			return errs.NewInvalidEnumError(label, allowed)
		}
		return nil
	}
}

// uniqueEmail rejects a payload whose email already belongs to a developer.
func (g guards) uniqueEmail(r *http.Request) error {
	email, ok := ctxGetPayload(r.Context()).String("email")
	if !ok {
		return nil
	}
	inUse, err := g.developerRepo.EmailInUse(r.Context(), email)
	if err != nil {
		return errs.NewDatabaseError("look up", "developer", err)
	}
	if inUse {
		return errs.NewConflictError("Email already in use")
	}
	return nil
}
