package service_test

import (
	"context"
	"testing"

	"github.com/dekarrin/parattice/internal/testdict"
	"github.com/dekarrin/parattice/server/dao/inmem"
	"github.com/dekarrin/parattice/server/serr"
	"github.com/dekarrin/parattice/server/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() service.Service {
	return service.New(inmem.NewDatastore())
}

func TestCreateAndGetDictionary(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	svc := newService()

	created, err := svc.CreateDictionary(ctx, "medical", testdict.Dictionary())
	require.NoError(err)
	assert.Equal("medical", created.Name)

	got, err := svc.GetDictionary(ctx, created.ID)
	require.NoError(err)
	assert.Equal(created.ID, got.ID)
}

func TestCreateDictionary_DuplicateNameFails(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.CreateDictionary(ctx, "medical", testdict.Dictionary())
	require.NoError(t, err)

	_, err = svc.CreateDictionary(ctx, "medical", testdict.Dictionary())
	assert.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func TestCreateDictionary_EmptyNameFails(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.CreateDictionary(ctx, "", testdict.Dictionary())
	assert.ErrorIs(t, err, serr.ErrBadArgument)
}

func TestGetDictionary_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.GetDictionary(ctx, uuid.New())
	assert.ErrorIs(t, err, serr.ErrNotFound)
}

func TestBuildLattice_CachesResult(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	svc := newService()
	created, err := svc.CreateDictionary(ctx, "medical", testdict.Dictionary())
	require.NoError(err)

	sentence := testdict.Sentence()

	first, err := svc.BuildLattice(ctx, created.ID, sentence, false, 5)
	require.NoError(err)
	assert.Greater(first.Size(), 0)

	second, err := svc.BuildLattice(ctx, created.ID, sentence, false, 5)
	require.NoError(err)
	assert.Equal(first.Size(), second.Size())
	assert.Equal(first.CapacityOf(), second.CapacityOf())
}

func TestSearchLattice_FindsPaths(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	svc := newService()
	created, err := svc.CreateDictionary(ctx, "medical", testdict.Dictionary())
	require.NoError(err)

	sentence := testdict.Sentence()
	paths, err := svc.SearchLattice(ctx, created.ID, sentence, false, 5, sentence)
	require.NoError(err)
	assert.NotEmpty(paths)
}

func TestUpdateDictionary_InvalidatesCachedLattice(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	svc := newService()
	created, err := svc.CreateDictionary(ctx, "medical", testdict.Dictionary())
	require.NoError(err)

	sentence := testdict.Sentence()
	_, err = svc.BuildLattice(ctx, created.ID, sentence, false, 5)
	require.NoError(err)

	_, err = svc.UpdateDictionary(ctx, created.ID, "medical-v2", testdict.Dictionary())
	require.NoError(err)

	got, err := svc.GetDictionary(ctx, created.ID)
	require.NoError(err)
	assert.Equal("medical-v2", got.Name)
}

func TestDeleteDictionary(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.CreateDictionary(ctx, "medical", testdict.Dictionary())
	require.NoError(t, err)

	_, err = svc.DeleteDictionary(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.GetDictionary(ctx, created.ID)
	assert.ErrorIs(t, err, serr.ErrNotFound)
}
