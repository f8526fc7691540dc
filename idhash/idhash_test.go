package idhash

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dstream-go/structstream/format"
)

func TestFromString_Deterministic(t *testing.T) {
	assert.Equal(t, FromString("container.name"), FromString("container.name"))
}

func TestFromString_DifferentInputsDiffer(t *testing.T) {
	assert.NotEqual(t, FromString("a"), FromString("b"))
}

func TestFromString_NeverProducesInvalidID(t *testing.T) {
	for _, name := range []string{"", "x", "a reasonably long record name used in a container path"} {
		assert.NotEqual(t, format.InvalidID, FromString(name))
	}
}

func TestFromBytes_MatchesFromStringOnSameContent(t *testing.T) {
	assert.Equal(t, FromString("hello"), FromBytes([]byte("hello")))
}

func TestFromBytes_NeverProducesInvalidID(t *testing.T) {
	assert.NotEqual(t, format.InvalidID, FromBytes(nil))
	assert.NotEqual(t, format.InvalidID, FromBytes([]byte{0x01, 0x02, 0x03}))
}
