package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/parattice/server/result"
	"github.com/dekarrin/parattice/server/serr"
)

// HTTPBuildLattice returns a HandlerFunc that builds (or retrieves a
// cached copy of) the paraphrase lattice for a sentence against a
// dictionary.
func (api API) HTTPBuildLattice() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epBuildLattice)
}

// POST /dictionaries/{id}/lattices: build a paraphrase lattice.
func (api API) epBuildLattice(req *http.Request) result.Result {
	id := requireIDParam(req)

	var body LatticeRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if len(body.Sentence) == 0 {
		return result.BadRequest("sentence: property is empty or missing from request", "empty sentence")
	}
	if body.MaxDepth < 1 {
		body.MaxDepth = 1
	}

	lat, err := api.Backend.BuildLattice(req.Context(), id, body.Sentence, body.Shrink, body.MaxDepth)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(latticeToModel(lat), "built lattice for dictionary %s", id)
}

// HTTPSearchLattice returns a HandlerFunc that builds a lattice and then
// searches it for every path that spells out a pattern sentence.
func (api API) HTTPSearchLattice() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epSearchLattice)
}

// POST /dictionaries/{id}/lattices/search: build a lattice and search it.
func (api API) epSearchLattice(req *http.Request) result.Result {
	id := requireIDParam(req)

	var body LatticeRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if len(body.Sentence) == 0 {
		return result.BadRequest("sentence: property is empty or missing from request", "empty sentence")
	}
	if len(body.Pattern) == 0 {
		return result.BadRequest("pattern: property is empty or missing from request", "empty pattern")
	}
	if body.MaxDepth < 1 {
		body.MaxDepth = 1
	}

	paths, err := api.Backend.SearchLattice(req.Context(), id, body.Sentence, body.Shrink, body.MaxDepth, body.Pattern)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(searchResultsToModel(paths), "searched lattice for dictionary %s", id)
}
