package sqlite_test

import (
	"context"
	"testing"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/server/dao"
	"github.com/dekarrin/parattice/server/dao/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) dao.Store {
	t.Helper()

	store, err := sqlite.NewDatastore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDictionaryRepo_CreateGetUpdateDelete(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	repo := newTestStore(t).Dictionaries()

	created, err := repo.Create(ctx, dao.Dictionary{
		Name: "medical",
		Data: parattice.Dictionary{{{"hello"}, {"hi"}}},
	})
	require.NoError(err)
	assert.NotEqual(uuid.Nil, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(err)
	assert.Equal(created.Name, got.Name)
	assert.Equal(created.Data, got.Data)

	gotByName, err := repo.GetByName(ctx, "medical")
	require.NoError(err)
	assert.Equal(created.ID, gotByName.ID)

	_, err = repo.Create(ctx, dao.Dictionary{Name: "medical"})
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	updated, err := repo.Update(ctx, created.ID, dao.Dictionary{Name: "medical-v2", Data: created.Data})
	require.NoError(err)
	assert.Equal("medical-v2", updated.Name)

	all, err := repo.GetAll(ctx)
	require.NoError(err)
	assert.Len(all, 1)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func TestLatticeRepo_CreateAndGetByRequest(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	store := newTestStore(t)
	dictRepo := store.Dictionaries()
	latRepo := store.Lattices()

	dict, err := dictRepo.Create(ctx, dao.Dictionary{Name: "medical", Data: parattice.Dictionary{{{"hello"}, {"hi"}}}})
	require.NoError(err)

	sentence := []string{"the", "patient", "improved"}

	_, err = latRepo.GetByRequest(ctx, dict.ID, sentence, false, 5)
	assert.ErrorIs(err, dao.ErrNotFound)

	created, err := latRepo.Create(ctx, dao.Lattice{
		DictionaryID: dict.ID,
		Sentence:     sentence,
		Shrink:       false,
		MaxDepth:     5,
		Data:         []byte("fake-serialized-lattice"),
	})
	require.NoError(err)

	got, err := latRepo.GetByRequest(ctx, dict.ID, sentence, false, 5)
	require.NoError(err)
	assert.Equal(created.Data, got.Data)

	require.NoError(latRepo.DeleteByDictionary(ctx, dict.ID))

	_, err = latRepo.GetByRequest(ctx, dict.ID, sentence, false, 5)
	assert.ErrorIs(err, dao.ErrNotFound)
}
