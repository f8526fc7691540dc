// Package idhash derives stable format.ID values from human-readable
// names, grounded on internal/hash's xxHash64-based ID helper (itself
// grounded on original_source/structstream/idpath.hpp's need for stable
// path-segment identifiers).
package idhash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/dstream-go/structstream/format"
)

// FromString derives a format.ID from name. The top bit is cleared so the
// result can never collide with format.InvalidID (MaxVarUInt, all bits
// set), keeping every derived ID in the valid range regardless of hash
// value.
func FromString(name string) format.ID {
	h := xxhash.Sum64String(name) & uint64(format.MaxVarUInt>>1)

	return format.ID(h)
}

// FromBytes is FromString for raw bytes.
func FromBytes(data []byte) format.ID {
	h := xxhash.Sum64(data) & uint64(format.MaxVarUInt>>1)

	return format.ID(h)
}
