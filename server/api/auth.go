package api

import (
	"net/http"

	"github.com/dekarrin/parattice/server/result"
	"github.com/dekarrin/parattice/server/token"
)

type tokenRequest struct {
	APIKey string `json:"api_key"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HTTPAuthToken returns a HandlerFunc that exchanges the shared admin API
// key for a short-lived bearer token.
func (api API) HTTPAuthToken() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epAuthToken)
}

// POST /auth/token: exchange an API key for a bearer token.
func (api API) epAuthToken(req *http.Request) result.Result {
	var body tokenRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if err := token.Authenticate(body.APIKey, api.AdminKeyHash); err != nil {
		return result.Unauthorized("", "auth: %s", err.Error())
	}

	signed, err := token.Generate(api.Secret)
	if err != nil {
		return result.InternalServerError("generate token: %s", err.Error())
	}

	return result.OK(tokenResponse{Token: signed}, "issued admin token")
}
