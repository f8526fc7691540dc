package structstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
	"github.com/dstream-go/structstream/registry"
	"github.com/dstream-go/structstream/tree"
)

func TestDecodeTree_EmptyStreamYieldsEmptyRoot(t *testing.T) {
	// A bare END_OF_CHILDREN closes the synthetic root with no children.
	data := []byte{0x8C}

	root, err := DecodeTree(data, registry.NewDefault())
	require.NoError(t, err)
	assert.Empty(t, root.Children())
}

func TestEncodeTree_DecodeTree_Roundtrip(t *testing.T) {
	b := tree.NewBuilder()
	root := b.Root()

	container, err := b.AddContainer(root, 10)
	require.NoError(t, err)
	require.NoError(t, b.AddLeaf(container, leaf.NewUint32(1, 0xCAFEBABE)))
	require.NoError(t, b.AddLeaf(container, leaf.NewUTF8String(2, "hello structstream")))

	out, err := EncodeTree(root, true)
	require.NoError(t, err)

	decoded, err := DecodeTree(out, registry.NewDefault())
	require.NoError(t, err)

	children := decoded.Children()
	require.Len(t, children, 1)
	assert.Equal(t, format.ID(10), children[0].ID())

	leaves := children[0].Children()
	require.Len(t, leaves, 2)

	n0, ok := leaves[0].Leaf()
	require.True(t, ok)
	assert.Equal(t, uint32(0xCAFEBABE), n0.(interface{ Value() uint32 }).Value())

	n1, ok := leaves[1].Leaf()
	require.True(t, ok)
	assert.Equal(t, "hello structstream", n1.(interface{ Value() string }).Value())
}

func TestEncodeTree_HashedContainerRoundtrips(t *testing.T) {
	b := tree.NewBuilder()
	root := b.Root()

	container, err := b.AddContainer(root, 1)
	require.NoError(t, err)
	require.NoError(t, b.AddLeaf(container, leaf.NewUint32(2, 1)))
	require.NoError(t, b.SetHashAttestation(container, true, format.HTSHA256))

	out, err := EncodeTree(root, true)
	require.NoError(t, err)

	decoded, err := DecodeTree(out, registry.NewDefault())
	require.NoError(t, err)

	hashed, validated, hf := decoded.Children()[0].HashAttestation()
	assert.True(t, hashed)
	assert.True(t, validated)
	assert.Equal(t, format.HTSHA256, hf)
}

func TestEncodeTree_EmptyRootRoundtrips(t *testing.T) {
	b := tree.NewBuilder()
	root := b.Root()

	out, err := EncodeTree(root, true)
	require.NoError(t, err)

	decoded, err := DecodeTree(out, registry.NewDefault())
	require.NoError(t, err)
	assert.Empty(t, decoded.Children())
}
