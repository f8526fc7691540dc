// Package registry implements the record-type constructor lookup (spec
// §4.2), grounded on
// original_source/structstream/registry.hpp's Registry<NodeConstructor>.
package registry

import (
	"fmt"

	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
)

// Constructor builds a fresh leaf.Node for id when the decoder encounters
// its record type on the wire.
type Constructor func(id format.ID) leaf.Node

// Registry maps format.RecordType to a Constructor.
type Registry struct {
	ctors map[format.RecordType]Constructor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{ctors: make(map[format.RecordType]Constructor)}
}

// Register installs ctor under rt, overwriting any previous entry.
func (r *Registry) Register(rt format.RecordType, ctor Constructor) {
	r.ctors[rt] = ctor
}

// Lookup returns the constructor for rt and whether one was found. A miss
// is not itself an error: the decoder reacts to it per spec §4.4 (fatal
// unless a forgiveness bit downgrades it).
func (r *Registry) Lookup(rt format.RecordType) (Constructor, bool) {
	ctor, ok := r.ctors[rt]
	return ctor, ok
}

// New constructs a node for rt/id, returning errs.ErrUnsupportedRecordType
// if rt has no registered constructor.
func (r *Registry) New(rt format.RecordType, id format.ID) (leaf.Node, error) {
	ctor, ok := r.ctors[rt]
	if !ok {
		return nil, fmt.Errorf("%w: tag=%s", errs.ErrUnsupportedRecordType, rt)
	}

	return ctor(id), nil
}

// NewDefault pre-registers every standard tag (spec §6.2) to its leaf
// constructor. Application code registers additional constructors for the
// APPBLOB (0x40-0x5F) and APP_NOSIZE (0x60-0x7F) ranges directly on the
// returned Registry via Register.
func NewDefault() *Registry {
	r := New()

	r.Register(format.RTUint32, func(id format.ID) leaf.Node { return leaf.NewUint32(id, 0) })
	r.Register(format.RTInt32, func(id format.ID) leaf.Node { return leaf.NewInt32(id, 0) })
	r.Register(format.RTUint64, func(id format.ID) leaf.Node { return leaf.NewUint64(id, 0) })
	r.Register(format.RTInt64, func(id format.ID) leaf.Node { return leaf.NewInt64(id, 0) })
	r.Register(format.RTFloat32, func(id format.ID) leaf.Node { return leaf.NewFloat32(id, 0) })
	r.Register(format.RTFloat64, func(id format.ID) leaf.Node { return leaf.NewFloat64(id, 0) })
	r.Register(format.RTBoolTrue, func(id format.ID) leaf.Node { return leaf.NewBool(id, true) })
	r.Register(format.RTBoolFalse, func(id format.ID) leaf.Node { return leaf.NewBool(id, false) })
	r.Register(format.RTUTF8String, func(id format.ID) leaf.Node { return leaf.NewUTF8String(id, "") })
	r.Register(format.RTBlob, func(id format.ID) leaf.Node { return leaf.NewBlob(id, nil) })
	r.Register(format.RTVarUint, func(id format.ID) leaf.Node { return leaf.NewVarUint(id, 0) })
	r.Register(format.RTVarInt, func(id format.ID) leaf.Node { return leaf.NewVarInt(id, 0) })
	r.Register(format.RTRaw128, func(id format.ID) leaf.Node { return leaf.NewRaw128(id, [16]byte{}) })

	return r
}
