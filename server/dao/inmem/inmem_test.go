package inmem_test

import (
	"context"
	"testing"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/server/dao"
	"github.com/dekarrin/parattice/server/dao/inmem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryRepo_CreateGetUpdateDelete(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	store := inmem.NewDatastore()
	repo := store.Dictionaries()

	created, err := repo.Create(ctx, dao.Dictionary{
		Name: "medical",
		Data: parattice.Dictionary{{{"hello"}, {"hi"}}},
	})
	require.NoError(err)
	assert.NotEqual(uuid.Nil, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(err)
	assert.Equal(created.Name, got.Name)

	gotByName, err := repo.GetByName(ctx, "medical")
	require.NoError(err)
	assert.Equal(created.ID, gotByName.ID)

	_, err = repo.Create(ctx, dao.Dictionary{Name: "medical"})
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	updated, err := repo.Update(ctx, created.ID, dao.Dictionary{Name: "medical-v2", Data: created.Data})
	require.NoError(err)
	assert.Equal("medical-v2", updated.Name)
	assert.Equal(created.Created, updated.Created)

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

	store := inmem.NewDatastore()
	repo := store.Lattices()

	dictID := uuid.New()
	sentence := []string{"the", "patient", "improved"}

	_, err := repo.GetByRequest(ctx, dictID, sentence, false, 5)
	assert.ErrorIs(err, dao.ErrNotFound)

	created, err := repo.Create(ctx, dao.Lattice{
		DictionaryID: dictID,
		Sentence:     sentence,
		Shrink:       false,
		MaxDepth:     5,
		Data:         []byte("fake-serialized-lattice"),
	})
	require.NoError(err)

	got, err := repo.GetByRequest(ctx, dictID, sentence, false, 5)
	require.NoError(err)
	assert.Equal(created.Data, got.Data)

	require.NoError(repo.DeleteByDictionary(ctx, dictID))

	_, err = repo.GetByRequest(ctx, dictID, sentence, false, 5)
	assert.ErrorIs(err, dao.ErrNotFound)
}
