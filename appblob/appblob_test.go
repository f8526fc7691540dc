package appblob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
	"github.com/dstream-go/structstream/registry"
)

func TestNoOp_IsIdentity(t *testing.T) {
	val := []byte("passthrough")

	got, err := NoOp{}.Compress(val)
	require.NoError(t, err)
	assert.Equal(t, val, got)

	got, err = NoOp{}.Decompress(val)
	require.NoError(t, err)
	assert.Equal(t, val, got)
}

func TestS2_Roundtrip(t *testing.T) {
	val := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly")

	c := S2{}
	compressed, err := c.Compress(val)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, val, decompressed)
}

func TestS2_EmptyRoundtrip(t *testing.T) {
	c := S2{}
	compressed, err := c.Compress(nil)
	require.NoError(t, err)
	assert.Empty(t, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestLZ4_Roundtrip(t *testing.T) {
	val := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly")

	c := LZ4{}
	compressed, err := c.Compress(val)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, val, decompressed)
}

func TestLZ4_EmptyRoundtrip(t *testing.T) {
	c := LZ4{}
	compressed, err := c.Compress(nil)
	require.NoError(t, err)
	assert.Empty(t, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestZstd_Roundtrip(t *testing.T) {
	val := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly")

	c := Zstd{}
	compressed, err := c.Compress(val)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, val, decompressed)
}

func TestAlgorithm_String(t *testing.T) {
	assert.Equal(t, "none", AlgorithmNone.String())
	assert.Equal(t, "s2", AlgorithmS2.String())
	assert.Equal(t, "lz4", AlgorithmLZ4.String())
	assert.Equal(t, "zstd", AlgorithmZstd.String())
}

func TestGet_UnsupportedAlgorithm(t *testing.T) {
	_, err := Get(Algorithm(0xFF))
	assert.Error(t, err)
}

func TestNewConstructor_RejectsTagOutsideAppBlobRange(t *testing.T) {
	_, err := NewConstructor(format.RTUint32, AlgorithmS2)
	assert.Error(t, err)
}

func TestNewConstructor_BuildsAppBlobNode(t *testing.T) {
	ctor, err := NewConstructor(format.RTAppBlobMin, AlgorithmS2)
	require.NoError(t, err)

	node := ctor(42)
	ab, ok := node.(*leaf.AppBlob)
	require.True(t, ok)
	assert.Equal(t, format.RTAppBlobMin, ab.Tag())
	assert.Equal(t, format.ID(42), ab.ID())
}

func TestRegisterDefaults_WiresThreeAlgorithms(t *testing.T) {
	reg := registry.New()
	require.NoError(t, RegisterDefaults(reg))

	for i, alg := range []Algorithm{AlgorithmS2, AlgorithmLZ4, AlgorithmZstd} {
		tag := format.RTAppBlobMin + format.RecordType(i)
		ctor, ok := reg.Lookup(tag)
		require.True(t, ok, "tag %s should be registered", tag)

		node := ctor(1)
		ab, ok := node.(*leaf.AppBlob)
		require.True(t, ok)
		assert.Equal(t, tag, ab.Tag())
		_ = alg
	}
}
