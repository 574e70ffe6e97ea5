package result_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/parattice/server/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK_WritesJSONBody(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r := result.OK(map[string]string{"hello": "world"})
	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal("world", body["hello"])
}

func TestNotFound_Is404(t *testing.T) {
	r := result.NotFound("dictionary %q missing", "abc")
	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnauthorized_SetsWWWAuthenticateHeader(t *testing.T) {
	r := result.Unauthorized("")
	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
}

func TestNoContent_WritesNoBody(t *testing.T) {
	r := result.NoContent()
	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
