package util_test

import (
	"testing"

	"github.com/dekarrin/parattice/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestMakeTextList(t *testing.T) {
	testCases := []struct {
		name   string
		items  []string
		expect string
	}{
		{name: "empty", items: nil, expect: ""},
		{name: "one", items: []string{"a"}, expect: "a"},
		{name: "two", items: []string{"a", "b"}, expect: "a and b"},
		{name: "three", items: []string{"a", "b", "c"}, expect: "a, b, and c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, util.MakeTextList(tc.items))
		})
	}
}
