package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/parattice/internal/testdict"
	"github.com/dekarrin/parattice/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const adminKey = "test-admin-key"

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.DefaultCost)
	require.NoError(t, err)

	srv, err := server.New(server.Config{
		TokenSecret:  bytes.Repeat([]byte("x"), 32),
		AdminKeyHash: string(hash),
		DB:           server.Database{Type: server.DatabaseInMemory},
	})
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func doJSON(t *testing.T, srv *server.Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func getAdminToken(t *testing.T, srv *server.Server) string {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"api_key": adminKey})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAuthToken_WrongKeyRejected(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"api_key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateDictionary_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]interface{}{"name": "medical", "groups": testdict.Dictionary()}
	w := doJSON(t, srv, http.MethodPost, "/api/v1/dictionaries/", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDictionaryLifecycle(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	srv := newTestServer(t)
	tok := getAdminToken(t, srv)

	createBody := map[string]interface{}{"name": "medical", "groups": testdict.Dictionary()}
	w := doJSON(t, srv, http.MethodPost, "/api/v1/dictionaries/", tok, createBody)
	require.Equal(http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(created.ID)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/dictionaries/"+created.ID, "", nil)
	assert.Equal(http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/dictionaries/", "", nil)
	assert.Equal(http.StatusOK, w.Code)

	latticeBody := map[string]interface{}{"sentence": testdict.Sentence(), "max_depth": 5}
	w = doJSON(t, srv, http.MethodPost, "/api/v1/dictionaries/"+created.ID+"/lattices", "", latticeBody)
	require.Equal(http.StatusOK, w.Code)

	var lat struct {
		NodeCount int `json:"node_count"`
	}
	require.NoError(json.Unmarshal(w.Body.Bytes(), &lat))
	assert.Greater(lat.NodeCount, 0)

	searchBody := map[string]interface{}{"sentence": testdict.Sentence(), "max_depth": 5, "pattern": testdict.Sentence()}
	w = doJSON(t, srv, http.MethodPost, "/api/v1/dictionaries/"+created.ID+"/lattices/search", "", searchBody)
	assert.Equal(http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/dictionaries/"+created.ID, "", nil)
	assert.Equal(http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/dictionaries/"+created.ID, tok, nil)
	assert.Equal(http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/dictionaries/"+created.ID, "", nil)
	assert.Equal(http.StatusNotFound, w.Code)
}
