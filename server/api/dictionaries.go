package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/parattice/server/result"
	"github.com/dekarrin/parattice/server/serr"
)

// HTTPGetAllDictionaries returns a HandlerFunc that lists every stored
// dictionary.
func (api API) HTTPGetAllDictionaries() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllDictionaries)
}

// GET /dictionaries: list all dictionaries.
func (api API) epGetAllDictionaries(req *http.Request) result.Result {
	dicts, err := api.Backend.ListDictionaries(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]DictionaryModel, len(dicts))
	for i := range dicts {
		resp[i] = dictionaryToModel(dicts[i])
	}

	return result.OK(resp, "got all dictionaries")
}

// HTTPCreateDictionary returns a HandlerFunc that compiles and persists a
// new dictionary.
func (api API) HTTPCreateDictionary() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateDictionary)
}

func (api API) epCreateDictionary(req *http.Request) result.Result {
	var body DictionaryModel
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	created, err := api.Backend.CreateDictionary(req.Context(), body.Name, body.Groups)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict("A dictionary with that name already exists", "dictionary '%s' already exists", body.Name)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(dictionaryToModel(created), "dictionary '%s' (%s) created", created.Name, created.ID)
}

// HTTPGetDictionary returns a HandlerFunc that retrieves a single
// dictionary by ID.
func (api API) HTTPGetDictionary() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetDictionary)
}

func (api API) epGetDictionary(req *http.Request) result.Result {
	id := requireIDParam(req)

	d, err := api.Backend.GetDictionary(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(dictionaryToModel(d), "got dictionary '%s'", d.Name)
}

// HTTPUpdateDictionary returns a HandlerFunc that replaces the contents of
// an existing dictionary.
func (api API) HTTPUpdateDictionary() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epUpdateDictionary)
}

func (api API) epUpdateDictionary(req *http.Request) result.Result {
	id := requireIDParam(req)

	var body DictionaryModel
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	updated, err := api.Backend.UpdateDictionary(req.Context(), id, body.Name, body.Groups)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(dictionaryToModel(updated), "dictionary '%s' (%s) updated", updated.Name, updated.ID)
}

// HTTPDeleteDictionary returns a HandlerFunc that deletes a dictionary and
// every lattice cached against it.
func (api API) HTTPDeleteDictionary() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteDictionary)
}

func (api API) epDeleteDictionary(req *http.Request) result.Result {
	id := requireIDParam(req)

	deleted, err := api.Backend.DeleteDictionary(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(dictionaryToModel(deleted), "dictionary '%s' (%s) deleted", deleted.Name, deleted.ID)
}
