// Package leaf implements the concrete record types of spec §4.3: one Go
// type per RecordType tag family, each exposing typed accessors plus the
// Reader/Writer I/O surface the streaming decoder/encoder drive.
//
// Fixed-width numeric records are always little-endian on the wire
// (endian.GetLittleEndianEngine byte-swaps on big-endian hosts); Blob and
// UTF8String are varuint-length-prefixed; Bool carries no payload at all,
// its truth value is the tag itself.
package leaf

import (
	"math"

	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/endian"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/varint"
)

// Node is implemented by every leaf record type.
type Node interface {
	Tag() format.RecordType
	ID() format.ID
}

// Reader is implemented by nodes the decoder can populate from a byte
// source. payloadLen is the already-known payload length in bytes for
// length-prefixed tags (Blob, UTF8String), or -1 for fixed-width and
// varint-encoded tags that carry their own framing.
type Reader interface {
	Node
	Read(src bytesio.Source, payloadLen int64) error
}

// Writer is implemented by nodes the encoder can serialize to a byte sink.
type Writer interface {
	Node
	Write(dst bytesio.Sink) error
}

var le = endian.GetLittleEndianEngine()

// Uint32 is RT_UINT32: a fixed 4-byte little-endian unsigned integer.
type Uint32 struct {
	id  format.ID
	val uint32
}

func NewUint32(id format.ID, val uint32) *Uint32 { return &Uint32{id: id, val: val} }
func (n *Uint32) Tag() format.RecordType          { return format.RTUint32 }
func (n *Uint32) ID() format.ID                   { return n.id }
func (n *Uint32) Value() uint32                   { return n.val }
func (n *Uint32) SetValue(v uint32)               { n.val = v }

func (n *Uint32) Read(src bytesio.Source, _ int64) error {
	var buf [4]byte
	if err := src.Read(buf[:]); err != nil {
		return err
	}

	n.val = le.Uint32(buf[:])

	return nil
}

func (n *Uint32) Write(dst bytesio.Sink) error {
	var buf [4]byte
	le.PutUint32(buf[:], n.val)

	return dst.Write(buf[:])
}

// Int32 is RT_INT32: a fixed 4-byte little-endian two's-complement integer.
type Int32 struct {
	id  format.ID
	val int32
}

func NewInt32(id format.ID, val int32) *Int32 { return &Int32{id: id, val: val} }
func (n *Int32) Tag() format.RecordType        { return format.RTInt32 }
func (n *Int32) ID() format.ID                 { return n.id }
func (n *Int32) Value() int32                  { return n.val }
func (n *Int32) SetValue(v int32)              { n.val = v }

func (n *Int32) Read(src bytesio.Source, _ int64) error {
	var buf [4]byte
	if err := src.Read(buf[:]); err != nil {
		return err
	}

	n.val = int32(le.Uint32(buf[:])) //nolint:gosec

	return nil
}

func (n *Int32) Write(dst bytesio.Sink) error {
	var buf [4]byte
	le.PutUint32(buf[:], uint32(n.val)) //nolint:gosec

	return dst.Write(buf[:])
}

// Uint64 is RT_UINT64: a fixed 8-byte little-endian unsigned integer.
type Uint64 struct {
	id  format.ID
	val uint64
}

func NewUint64(id format.ID, val uint64) *Uint64 { return &Uint64{id: id, val: val} }
func (n *Uint64) Tag() format.RecordType          { return format.RTUint64 }
func (n *Uint64) ID() format.ID                   { return n.id }
func (n *Uint64) Value() uint64                   { return n.val }
func (n *Uint64) SetValue(v uint64)               { n.val = v }

func (n *Uint64) Read(src bytesio.Source, _ int64) error {
	var buf [8]byte
	if err := src.Read(buf[:]); err != nil {
		return err
	}

	n.val = le.Uint64(buf[:])

	return nil
}

func (n *Uint64) Write(dst bytesio.Sink) error {
	var buf [8]byte
	le.PutUint64(buf[:], n.val)

	return dst.Write(buf[:])
}

// Int64 is RT_INT64: a fixed 8-byte little-endian two's-complement integer.
type Int64 struct {
	id  format.ID
	val int64
}

func NewInt64(id format.ID, val int64) *Int64 { return &Int64{id: id, val: val} }
func (n *Int64) Tag() format.RecordType        { return format.RTInt64 }
func (n *Int64) ID() format.ID                 { return n.id }
func (n *Int64) Value() int64                  { return n.val }
func (n *Int64) SetValue(v int64)              { n.val = v }

func (n *Int64) Read(src bytesio.Source, _ int64) error {
	var buf [8]byte
	if err := src.Read(buf[:]); err != nil {
		return err
	}

	n.val = int64(le.Uint64(buf[:])) //nolint:gosec

	return nil
}

func (n *Int64) Write(dst bytesio.Sink) error {
	var buf [8]byte
	le.PutUint64(buf[:], uint64(n.val)) //nolint:gosec

	return dst.Write(buf[:])
}

// Float32 is RT_FLOAT32: IEEE-754 binary32, little-endian.
type Float32 struct {
	id  format.ID
	val float32
}

func NewFloat32(id format.ID, val float32) *Float32 { return &Float32{id: id, val: val} }
func (n *Float32) Tag() format.RecordType            { return format.RTFloat32 }
func (n *Float32) ID() format.ID                     { return n.id }
func (n *Float32) Value() float32                    { return n.val }
func (n *Float32) SetValue(v float32)                { n.val = v }

func (n *Float32) Read(src bytesio.Source, _ int64) error {
	var buf [4]byte
	if err := src.Read(buf[:]); err != nil {
		return err
	}

	n.val = math.Float32frombits(le.Uint32(buf[:]))

	return nil
}

func (n *Float32) Write(dst bytesio.Sink) error {
	var buf [4]byte
	le.PutUint32(buf[:], math.Float32bits(n.val))

	return dst.Write(buf[:])
}

// Float64 is RT_FLOAT64: IEEE-754 binary64, little-endian.
type Float64 struct {
	id  format.ID
	val float64
}

func NewFloat64(id format.ID, val float64) *Float64 { return &Float64{id: id, val: val} }
func (n *Float64) Tag() format.RecordType            { return format.RTFloat64 }
func (n *Float64) ID() format.ID                     { return n.id }
func (n *Float64) Value() float64                    { return n.val }
func (n *Float64) SetValue(v float64)                { n.val = v }

func (n *Float64) Read(src bytesio.Source, _ int64) error {
	var buf [8]byte
	if err := src.Read(buf[:]); err != nil {
		return err
	}

	n.val = math.Float64frombits(le.Uint64(buf[:]))

	return nil
}

func (n *Float64) Write(dst bytesio.Sink) error {
	var buf [8]byte
	le.PutUint64(buf[:], math.Float64bits(n.val))

	return dst.Write(buf[:])
}

// Bool is RT_BOOL_TRUE or RT_BOOL_FALSE: a zero-payload record whose truth
// value is encoded entirely in which tag was chosen (spec §4.3).
type Bool struct {
	id  format.ID
	val bool
}

// NewBool picks RTBoolTrue or RTBoolFalse as val dictates.
func NewBool(id format.ID, val bool) *Bool { return &Bool{id: id, val: val} }

func (n *Bool) Tag() format.RecordType {
	if n.val {
		return format.RTBoolTrue
	}

	return format.RTBoolFalse
}

func (n *Bool) ID() format.ID  { return n.id }
func (n *Bool) Value() bool    { return n.val }
func (n *Bool) SetValue(v bool) { n.val = v }

// Read is a no-op: the tag itself already told the registry constructor
// which value to materialize (see registry.NewDefault).
func (n *Bool) Read(_ bytesio.Source, _ int64) error { return nil }

// Write has no payload to emit; the decoder's tag selection carries the
// entire record.
func (n *Bool) Write(_ bytesio.Sink) error { return nil }
