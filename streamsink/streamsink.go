// Package streamsink implements the streaming event consumers of spec
// §4.7, grounded on original_source/structstream/streaming_sinks.hpp.
//
// Every Sink method returns (bool, error): error for a hard failure, and
// a bool the decoder ignores on every event (it keeps reading either way)
// but a Chain uses to decide whether to keep offering an event to the next
// sink in line (spec §4.4/§5's "sink returns false to mean disinterest").
package streamsink

import (
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
	"github.com/dstream-go/structstream/tree"
)

// ContainerMeta describes a container as it is opened, mirroring
// streaming_sinks.hpp's ContainerMeta{child_count}.
type ContainerMeta struct {
	ID           format.ID
	Flags        format.ContainerFlags
	DeclaredSize int64 // -1 if CF_WITH_SIZE was not set
}

// ContainerFooter describes a container as it closes, mirroring
// streaming_base.hpp's ContainerFooter{validated, hash_function}.
type ContainerFooter struct {
	Hashed       bool
	Validated    bool
	HashFunction format.HashType
}

// Sink consumes the events a streaming.Decoder delivers.
type Sink interface {
	StartContainer(meta ContainerMeta) (bool, error)
	PushNode(n leaf.Node) (bool, error)
	EndContainer(foot ContainerFooter) (bool, error)
	EndOfStream() error
}

// Null discards every event; useful for validating a stream's grammar
// without materializing a tree (grounded on streaming_sinks.hpp's
// NullSink).
type Null struct{}

func (Null) StartContainer(ContainerMeta) (bool, error)  { return true, nil }
func (Null) PushNode(leaf.Node) (bool, error)            { return true, nil }
func (Null) EndContainer(ContainerFooter) (bool, error)  { return true, nil }
func (Null) EndOfStream() error                          { return nil }

// Chain offers every event to each sink in order, stopping early at the
// first one that returns false (grounded on streaming_sinks.hpp's
// SinkChain).
type Chain struct {
	sinks []Sink
}

// NewChain builds a Chain over sinks, in the order events are offered.
func NewChain(sinks ...Sink) *Chain {
	return &Chain{sinks: sinks}
}

func (c *Chain) StartContainer(meta ContainerMeta) (bool, error) {
	for _, s := range c.sinks {
		cont, err := s.StartContainer(meta)
		if err != nil {
			return false, err
		}

		if !cont {
			return false, nil
		}
	}

	return true, nil
}

func (c *Chain) PushNode(n leaf.Node) (bool, error) {
	for _, s := range c.sinks {
		cont, err := s.PushNode(n)
		if err != nil {
			return false, err
		}

		if !cont {
			return false, nil
		}
	}

	return true, nil
}

func (c *Chain) EndContainer(foot ContainerFooter) (bool, error) {
	for _, s := range c.sinks {
		cont, err := s.EndContainer(foot)
		if err != nil {
			return false, err
		}

		if !cont {
			return false, nil
		}
	}

	return true, nil
}

func (c *Chain) EndOfStream() error {
	for _, s := range c.sinks {
		if err := s.EndOfStream(); err != nil {
			return err
		}
	}

	return nil
}

// Tree builds the decoded (or replayed) event stream into a tree.Builder,
// grounded on streaming_sinks.hpp's SinkTree. Unlike the original, Tree
// does not implement "nest" (push a sub-sink that owns one container's
// subtree), and neither does Nesting, which Tree is built on top of:
// Nesting only tracks the stack of open containers.
type Tree struct {
	*Nesting

	builder *tree.Builder
}

// NewTree creates a Tree sink that builds into a fresh tree.Builder,
// rooted at its synthetic root container.
func NewTree() *Tree {
	b := tree.NewBuilder()
	t := &Tree{builder: b}
	t.Nesting = newNesting(t.handleStart, t.handlePush, t.handleEnd)
	t.Nesting.SetRoot(b.Root())

	return t
}

// Root returns a handle to the tree built so far.
func (t *Tree) Root() tree.Container {
	return t.builder.Root()
}

func (t *Tree) handleStart(parent tree.Container, meta ContainerMeta) (tree.Container, error) {
	return t.builder.AddContainer(parent, meta.ID)
}

func (t *Tree) handlePush(parent tree.Container, n leaf.Node) error {
	return t.builder.AddLeaf(parent, n)
}

func (t *Tree) handleEnd(c tree.Container, foot ContainerFooter) error {
	if !foot.Hashed {
		return nil
	}

	return t.builder.SetHashAttestation(c, foot.Validated, foot.HashFunction)
}
