package related

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bastiangx/tashbetz/pkg/translit"
)

func TestBuild(t *testing.T) {
	groups := [][]string{
		{"כלב", "כלבה"},
		{"כלב", "ג'ירפה"},
	}
	idx := Build(groups, translit.Default.Translate)

	assert.Equal(t, []int{3, 4, 5}, idx.Lengths())
	assert.Equal(t, []string{"clbh", "jyrph"}, idx[3]["clb"])
	assert.Equal(t, []string{"clb"}, idx[4]["clbh"])
	assert.Equal(t, []string{"clb"}, idx[5]["jyrph"], "keyed by native effective length")
	assert.Equal(t, 5, idx.MaxLength())
}

func TestBuildEmpty(t *testing.T) {
	idx := Build(nil, translit.Default.Translate)
	assert.Empty(t, idx)
	assert.Zero(t, idx.MaxLength())
}
