package streamsink

import (
	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/leaf"
	"github.com/dstream-go/structstream/tree"
)

// startFunc creates a new child container under parent and returns its
// handle.
type startFunc func(parent tree.Container, meta ContainerMeta) (tree.Container, error)

// pushFunc attaches a leaf node under parent.
type pushFunc func(parent tree.Container, n leaf.Node) error

// endFunc finalizes a container that is about to be popped off the nest
// stack, recording its footer.
type endFunc func(c tree.Container, foot ContainerFooter) error

// Nesting is the generic "build a subtree as containers open and close"
// base that Tree is built on (grounded on streaming_sinks.hpp's
// SinkTree, minus the tree-specific storage, which the embedder supplies
// via start/push/end).
//
// Nesting tracks the stack of currently-open containers itself so the
// embedder's callbacks only ever see one level at a time — "nest" here
// means every StartContainer implicitly descends, there is no opt-in
// nest() call as in the original; a structstream Sink either always
// builds a tree (Tree) or never does (Null).
type Nesting struct {
	start startFunc
	push  pushFunc
	end   endFunc
	stack []tree.Container
}

func newNesting(start startFunc, push pushFunc, end endFunc) *Nesting {
	return &Nesting{start: start, push: push, end: end}
}

// SetRoot seeds the nest stack with the container that top-level
// StartContainer events attach under. Must be called before the first
// event; Tree calls it with its builder's synthetic root.
func (n *Nesting) SetRoot(root tree.Container) {
	n.stack = []tree.Container{root}
}

func (n *Nesting) StartContainer(meta ContainerMeta) (bool, error) {
	if len(n.stack) == 0 {
		return false, errs.ErrNestMisuse
	}

	parent := n.stack[len(n.stack)-1]

	child, err := n.start(parent, meta)
	if err != nil {
		return false, err
	}

	n.stack = append(n.stack, child)

	return true, nil
}

func (n *Nesting) PushNode(node leaf.Node) (bool, error) {
	if len(n.stack) == 0 {
		return false, errs.ErrNestMisuse
	}

	parent := n.stack[len(n.stack)-1]

	return true, n.push(parent, node)
}

func (n *Nesting) EndContainer(foot ContainerFooter) (bool, error) {
	if len(n.stack) <= 1 {
		return false, errs.ErrNestMisuse
	}

	top := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]

	if err := n.end(top, foot); err != nil {
		return false, err
	}

	return true, nil
}

func (n *Nesting) EndOfStream() error {
	return nil
}
