package dictconf_test

import (
	"testing"

	"github.com/dekarrin/parattice/internal/dictconf"
	"github.com/dekarrin/parattice/internal/testdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dict := testdict.Dictionary()

	data, err := dictconf.Marshal(dict)
	require.NoError(err)

	got, err := dictconf.Unmarshal(data)
	require.NoError(err)

	assert.Equal(dict, got)
}

func TestUnmarshal_EmptyGroups(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	got, err := dictconf.Unmarshal([]byte(""))
	require.NoError(err)
	assert.Empty(got)
}
