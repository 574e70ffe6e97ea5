package token_test

import (
	"net/http"
	"testing"

	"github.com/dekarrin/parattice/server/serr"
	"github.com/dekarrin/parattice/server/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashKey(t *testing.T, key string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthenticate(t *testing.T) {
	hash := hashKey(t, "correct-key")

	t.Run("correct key succeeds", func(t *testing.T) {
		assert.NoError(t, token.Authenticate("correct-key", hash))
	})

	t.Run("incorrect key fails", func(t *testing.T) {
		err := token.Authenticate("wrong-key", hash)
		assert.ErrorIs(t, err, serr.ErrBadCredentials)
	})

	t.Run("no configured key fails", func(t *testing.T) {
		err := token.Authenticate("anything", "")
		assert.ErrorIs(t, err, serr.ErrBadCredentials)
	})
}

func TestGenerateAndValidate(t *testing.T) {
	secret := []byte("super-secret-signing-key")

	signed, err := token.Generate(secret)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	assert.NoError(t, token.Validate(signed, secret))
}

func TestValidate_WrongSecretFails(t *testing.T) {
	signed, err := token.Generate([]byte("secret-one"))
	require.NoError(t, err)

	err = token.Validate(signed, []byte("secret-two"))
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func TestGet(t *testing.T) {
	t.Run("valid bearer header", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")

		tok, err := token.Get(req)
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", tok)
	})

	t.Run("missing header", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		_, err := token.Get(req)
		assert.ErrorIs(t, err, serr.ErrBadCredentials)
	})

	t.Run("non-bearer header", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		_, err := token.Get(req)
		assert.ErrorIs(t, err, serr.ErrBadCredentials)
	})
}
