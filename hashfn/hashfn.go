// Package hashfn implements the incremental hash plug-in surface used by
// hashed containers (format.CFHashed): the IncrementalHash interface and a
// Registry keyed by format.HashType, grounded on
// original_source/structstream/hashing_base.hpp's IncrementalHash and
// HashRegistry.
package hashfn

import (
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"hash/crc32"

	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
)

// IncrementalHash feeds bytes incrementally and produces a digest once
// Finish is called. A single instance is used for the lifetime of one
// hashed container's byte range; it is not reused across containers.
type IncrementalHash interface {
	// Len reports the digest length this algorithm produces, used by the
	// decoder to sanity-check a container footer's declared digest_len
	// before allocating a read buffer for it.
	Len() int
	// Feed tees another chunk of the container's byte range into the
	// running hash state.
	Feed(data []byte)
	// Finish finalizes the hash and returns the digest. Calling Finish
	// twice on the same instance is a programmer error.
	Finish() []byte
}

// Constructor builds a fresh IncrementalHash instance for one container.
type Constructor func() IncrementalHash

// Registry maps a wire HashType to a Constructor.
type Registry struct {
	ctors map[format.HashType]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[format.HashType]Constructor)}
}

// Register installs ctor under ht, overwriting any previous entry.
func (r *Registry) Register(ht format.HashType, ctor Constructor) {
	r.ctors[ht] = ctor
}

// New constructs a fresh IncrementalHash for ht, or returns
// errs.ErrUnsupportedHashFunction if ht is not registered.
func (r *Registry) New(ht format.HashType) (IncrementalHash, error) {
	ctor, ok := r.ctors[ht]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedHashFunction, ht)
	}

	return ctor(), nil
}

// Has reports whether ht has a registered constructor.
func (r *Registry) Has(ht format.HashType) bool {
	_, ok := r.ctors[ht]
	return ok
}

// NewDefaultRegistry wires every standard hash tag (spec §6.4) to its
// standard-library implementation, plus HTApp0 -> xxhash (hashfn/xxhash.go)
// as the one non-core algorithm this module ships out of the box.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(format.HTSHA1, func() IncrementalHash { return wrapStdHash(sha1.New()) })      //nolint:gosec
	r.Register(format.HTSHA256, func() IncrementalHash { return wrapStdHash(sha256.New()) })
	r.Register(format.HTSHA512, func() IncrementalHash { return wrapStdHash(sha512.New()) })
	r.Register(format.HTMD5, func() IncrementalHash { return wrapStdHash(md5.New()) }) //nolint:gosec
	r.Register(format.HTCRC32, func() IncrementalHash { return wrapStdHash(crc32.NewIEEE()) })
	r.Register(format.HTApp0, NewXXHash)

	return r
}

// stdHash adapts the standard library's hash.Hash into IncrementalHash.
type stdHash struct {
	h hash.Hash
}

func wrapStdHash(h hash.Hash) *stdHash {
	return &stdHash{h: h}
}

func (s *stdHash) Len() int {
	return s.h.Size()
}

func (s *stdHash) Feed(data []byte) {
	s.h.Write(data) //nolint:errcheck // hash.Hash.Write never fails
}

func (s *stdHash) Finish() []byte {
	return s.h.Sum(nil)
}
