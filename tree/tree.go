// Package tree implements the arena-and-index in-memory tree
// representation recommended by spec §9: a single backing slice of nodes
// where parent/child linkage is stored as indices rather than pointers,
// so the whole tree can be released (and garbage-collected) by dropping
// one Builder. Grounded on
// original_source/src/node_container.cpp's Container (child_add,
// checkin_child/checkout_child, copy).
package tree

import (
	"fmt"

	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
)

const noParent = -1

// node is one arena slot: either a container (has children, carries
// framing/hash metadata) or a leaf (wraps a leaf.Node).
type node struct {
	parent   int
	tag      format.RecordType
	id       format.ID
	children []int // only meaningful when leafNode == nil

	leafNode leaf.Node // nil for containers

	// Container-only hash attestation (spec §3's "validated, hash_function"
	// tuple a consumer learns after decoding a CF_HASHED container).
	hashed       bool
	validated    bool
	hashFunction format.HashType
}

// Builder is the arena backing a tree of Containers. Create one with
// NewBuilder, which seeds the synthetic tree root (spec §4.4's TreeRootID,
// ID 0); the zero value has no root, and its Root handle panics on use.
type Builder struct {
	nodes []node
}

// NewBuilder returns an empty arena with its synthetic root container
// already created at index 0.
func NewBuilder() *Builder {
	b := &Builder{}
	b.nodes = append(b.nodes, node{parent: noParent, tag: format.RTContainer, id: format.ID(TreeRootID)})

	return b
}

// TreeRootID is the synthetic ID of the root container every decode
// produces (spec §4.4's synthetic root frame).
const TreeRootID = 0

// Container is a handle into a Builder's arena: (*Builder, index). It is
// a value type — cheap to pass and compare — not an owning pointer, so a
// Container is only valid for the lifetime of its Builder.
type Container struct {
	b   *Builder
	idx int
}

// Root returns a handle to b's synthetic root container.
func (b *Builder) Root() Container {
	return Container{b: b, idx: 0}
}

// AddContainer creates a new child container under parent and returns its
// handle.
func (b *Builder) AddContainer(parent Container, id format.ID) (Container, error) {
	if parent.b != b {
		return Container{}, errs.ErrNotMyChild
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, node{parent: parent.idx, tag: format.RTContainer, id: id})
	b.nodes[parent.idx].children = append(b.nodes[parent.idx].children, idx)

	return Container{b: b, idx: idx}, nil
}

// AddLeaf attaches n as a new leaf child under parent.
func (b *Builder) AddLeaf(parent Container, n leaf.Node) error {
	if parent.b != b {
		return errs.ErrNotMyChild
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, node{parent: parent.idx, tag: n.Tag(), id: n.ID(), leafNode: n})
	b.nodes[parent.idx].children = append(b.nodes[parent.idx].children, idx)

	return nil
}

// SetHashAttestation records the (validated, hash_function) tuple a
// decoder learns for a CF_HASHED container (spec §3).
func (b *Builder) SetHashAttestation(c Container, validated bool, hf format.HashType) error {
	if c.b != b || c.idx < 0 || c.idx >= len(b.nodes) {
		return errs.ErrInvalidIndex
	}

	b.nodes[c.idx].hashed = true
	b.nodes[c.idx].validated = validated
	b.nodes[c.idx].hashFunction = hf

	return nil
}

func (c Container) check() *node {
	if c.b == nil || c.idx < 0 || c.idx >= len(c.b.nodes) {
		panic("tree: invalid container handle")
	}

	return &c.b.nodes[c.idx]
}

// Tag returns the record type this node was created under (always
// RTContainer for a container node).
func (c Container) Tag() format.RecordType { return c.check().tag }

// ID returns the node's id.
func (c Container) ID() format.ID { return c.check().id }

// IsLeaf reports whether this handle refers to a leaf record rather than
// a container.
func (c Container) IsLeaf() bool { return c.check().leafNode != nil }

// Leaf returns the wrapped leaf.Node and true if this handle is a leaf.
func (c Container) Leaf() (leaf.Node, bool) {
	n := c.check()
	return n.leafNode, n.leafNode != nil
}

// Children returns handles to every direct child, in the order they were
// added (spec §3's "order is observable and preserved" invariant).
func (c Container) Children() []Container {
	n := c.check()
	out := make([]Container, len(n.children))

	for i, idx := range n.children {
		out[i] = Container{b: c.b, idx: idx}
	}

	return out
}

// Parent returns a handle to c's parent, or false if c is the root.
func (c Container) Parent() (Container, bool) {
	n := c.check()
	if n.parent == noParent {
		return Container{}, false
	}

	return Container{b: c.b, idx: n.parent}, true
}

// HashAttestation reports whether this container carried a CF_HASHED
// footer, and if so, what the decoder concluded.
func (c Container) HashAttestation() (hashed, validated bool, hf format.HashType) {
	n := c.check()
	return n.hashed, n.validated, n.hashFunction
}

// FindPath walks from c through successive children matching each id in
// turn, stopping at the first mismatch. This is a non-core convenience
// (grounded on original_source's idpath.hpp) for locating a record by a
// known chain of sibling-unique IDs; it does not assume or require
// uniqueness (spec §3 invariant 5 permits duplicate IDs) — the first
// matching child at each level wins.
func FindPath(root Container, ids ...format.ID) (Container, bool) {
	cur := root

	for _, id := range ids {
		found := false

		for _, child := range cur.Children() {
			if child.ID() == id {
				cur = child
				found = true

				break
			}
		}

		if !found {
			return Container{}, false
		}
	}

	return cur, true
}

// Clone returns a copy of c and everything beneath it, rooted in a new
// Builder (grounded on node_container.cpp's Container::copy). The copy's
// structure is independent of the original; leaf records are not copied,
// so both trees share the same leaf.Node values.
func Clone(c Container) Container {
	nb := &Builder{}
	newIdx := cloneInto(nb, c, noParent)

	return Container{b: nb, idx: newIdx}
}

func cloneInto(nb *Builder, c Container, newParent int) int {
	n := c.check()

	newIdx := len(nb.nodes)
	nb.nodes = append(nb.nodes, node{
		parent:       newParent,
		tag:          n.tag,
		id:           n.id,
		leafNode:     n.leafNode,
		hashed:       n.hashed,
		validated:    n.validated,
		hashFunction: n.hashFunction,
	})

	for _, childIdx := range n.children {
		childNewIdx := cloneInto(nb, Container{b: c.b, idx: childIdx}, newIdx)
		nb.nodes[newIdx].children = append(nb.nodes[newIdx].children, childNewIdx)
	}

	return newIdx
}

// String renders a compact one-line description, useful in test failure
// output and debug logging.
func (c Container) String() string {
	n := c.check()
	if n.leafNode != nil {
		return fmt.Sprintf("%s(id=%d)", n.tag, uint64(n.id))
	}

	return fmt.Sprintf("CONTAINER(id=%d, children=%d)", uint64(n.id), len(n.children))
}
