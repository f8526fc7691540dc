package hashfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
)

func TestNewDefaultRegistry_HasCoreAlgorithms(t *testing.T) {
	reg := NewDefaultRegistry()

	for _, ht := range []format.HashType{format.HTSHA1, format.HTSHA256, format.HTSHA512, format.HTMD5, format.HTCRC32, format.HTApp0} {
		assert.True(t, reg.Has(ht), "expected %s to be registered", ht)
	}
}

func TestRegistry_New_UnregisteredIsError(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.New(format.HTSHA256)
	require.ErrorIs(t, err, errs.ErrUnsupportedHashFunction)
}

func TestRegistry_New_SHA256ProducesCorrectLength(t *testing.T) {
	reg := NewDefaultRegistry()

	h, err := reg.New(format.HTSHA256)
	require.NoError(t, err)
	assert.Equal(t, 32, h.Len())

	h.Feed([]byte("hello"))
	assert.Len(t, h.Finish(), 32)
}

func TestXXHash_Len(t *testing.T) {
	h := NewXXHash()
	assert.Equal(t, 8, h.Len())

	h.Feed([]byte("hello"))
	assert.Len(t, h.Finish(), 8)
}

func TestXXHash_DeterministicAcrossInstances(t *testing.T) {
	a := NewXXHash()
	a.Feed([]byte("the quick brown fox"))

	b := NewXXHash()
	b.Feed([]byte("the quick"))
	b.Feed([]byte(" brown fox"))

	assert.Equal(t, a.Finish(), b.Finish())
}
