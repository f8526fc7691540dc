package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
)

func TestBuilder_RootIsSeeded(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	assert.Equal(t, format.ID(TreeRootID), root.ID())
	assert.False(t, root.IsLeaf())
	assert.Empty(t, root.Children())
}

func TestBuilder_AddContainerAndLeaf(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	child, err := b.AddContainer(root, 42)
	require.NoError(t, err)
	assert.Equal(t, format.ID(42), child.ID())

	require.NoError(t, b.AddLeaf(child, leaf.NewUint32(7, 100)))

	children := root.Children()
	require.Len(t, children, 1)
	assert.Equal(t, child, children[0])

	grandchildren := child.Children()
	require.Len(t, grandchildren, 1)
	assert.True(t, grandchildren[0].IsLeaf())

	n, ok := grandchildren[0].Leaf()
	require.True(t, ok)
	assert.Equal(t, format.ID(7), n.ID())
}

func TestContainer_Parent(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	child, err := b.AddContainer(root, 1)
	require.NoError(t, err)

	_, ok := root.Parent()
	assert.False(t, ok, "root has no parent")

	parent, ok := child.Parent()
	require.True(t, ok)
	assert.Equal(t, root, parent)
}

func TestBuilder_AddContainer_RejectsForeignHandle(t *testing.T) {
	b1 := NewBuilder()
	b2 := NewBuilder()

	_, err := b1.AddContainer(b2.Root(), 1)
	assert.Error(t, err)
}

func TestSetHashAttestation(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	child, err := b.AddContainer(root, 1)
	require.NoError(t, err)

	require.NoError(t, b.SetHashAttestation(child, true, format.HTSHA256))

	hashed, validated, hf := child.HashAttestation()
	assert.True(t, hashed)
	assert.True(t, validated)
	assert.Equal(t, format.HTSHA256, hf)
}

func TestFindPath(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	a, err := b.AddContainer(root, 1)
	require.NoError(t, err)
	aa, err := b.AddContainer(a, 2)
	require.NoError(t, err)
	require.NoError(t, b.AddLeaf(aa, leaf.NewUint32(3, 9)))

	found, ok := FindPath(root, 1, 2, 3)
	require.True(t, ok)
	assert.True(t, found.IsLeaf())

	_, ok = FindPath(root, 1, 99)
	assert.False(t, ok)
}

func TestFindPath_FirstMatchWinsOnDuplicateIDs(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	first, err := b.AddContainer(root, 5)
	require.NoError(t, err)
	_, err = b.AddContainer(root, 5)
	require.NoError(t, err)

	found, ok := FindPath(root, 5)
	require.True(t, ok)
	assert.Equal(t, first, found)
}

func TestClone_IsIndependent(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	child, err := b.AddContainer(root, 1)
	require.NoError(t, err)
	require.NoError(t, b.AddLeaf(child, leaf.NewUint32(2, 5)))

	cloned := Clone(root)
	assert.Len(t, cloned.Children(), 1)

	// Mutating the original builder must not affect the clone.
	_, err = b.AddContainer(root, 99)
	require.NoError(t, err)
	assert.Len(t, root.Children(), 2)
	assert.Len(t, cloned.Children(), 1)
}

func TestContainer_String(t *testing.T) {
	b := NewBuilder()
	root := b.Root()

	child, err := b.AddContainer(root, 1)
	require.NoError(t, err)
	require.NoError(t, b.AddLeaf(child, leaf.NewUint32(2, 5)))

	assert.Contains(t, child.String(), "CONTAINER")
	assert.Contains(t, child.Children()[0].String(), "UINT32")
}
