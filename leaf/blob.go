package leaf

import (
	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/varint"
)

// Blob is RT_BLOB: a varuint-length-prefixed byte string. The decoder
// reads the length varuint itself (spec §4.4 step 6) and passes it to
// Read as payloadLen; Write re-derives and emits the length prefix.
type Blob struct {
	id  format.ID
	val []byte
}

// NewBlob constructs a Blob. val is retained, not copied.
func NewBlob(id format.ID, val []byte) *Blob { return &Blob{id: id, val: val} }
func (n *Blob) Tag() format.RecordType        { return format.RTBlob }
func (n *Blob) ID() format.ID                 { return n.id }
func (n *Blob) Value() []byte                 { return n.val }
func (n *Blob) SetValue(v []byte)             { n.val = v }

func (n *Blob) Read(src bytesio.Source, payloadLen int64) error {
	buf := make([]byte, payloadLen)
	if payloadLen > 0 {
		if err := src.Read(buf); err != nil {
			return err
		}
	}

	n.val = buf

	return nil
}

func (n *Blob) Write(dst bytesio.Sink) error {
	if err := varint.WriteVarUint(dst, uint64(len(n.val))); err != nil {
		return err
	}

	if len(n.val) == 0 {
		return nil
	}

	return dst.Write(n.val)
}

// UTF8String is RT_UTF8STRING: a varuint-length-prefixed UTF-8 string,
// stored without an implicit NUL terminator on the wire (spec §9's
// adopted resolution — the length prefix is exact, not
// NUL-terminator-inclusive).
type UTF8String struct {
	id  format.ID
	val string
}

func NewUTF8String(id format.ID, val string) *UTF8String { return &UTF8String{id: id, val: val} }
func (n *UTF8String) Tag() format.RecordType              { return format.RTUTF8String }
func (n *UTF8String) ID() format.ID                       { return n.id }
func (n *UTF8String) Value() string                       { return n.val }
func (n *UTF8String) SetValue(v string)                   { n.val = v }

func (n *UTF8String) Read(src bytesio.Source, payloadLen int64) error {
	buf := make([]byte, payloadLen)
	if payloadLen > 0 {
		if err := src.Read(buf); err != nil {
			return err
		}
	}

	n.val = string(buf)

	return nil
}

func (n *UTF8String) Write(dst bytesio.Sink) error {
	if err := varint.WriteVarUint(dst, uint64(len(n.val))); err != nil {
		return err
	}

	if len(n.val) == 0 {
		return nil
	}

	return dst.Write([]byte(n.val))
}

// VarUint is RT_VARUINT: a record whose entire payload is a single varint
// codec value, delegated to package varint.
type VarUint struct {
	id  format.ID
	val uint64
}

func NewVarUint(id format.ID, val uint64) *VarUint { return &VarUint{id: id, val: val} }
func (n *VarUint) Tag() format.RecordType            { return format.RTVarUint }
func (n *VarUint) ID() format.ID                     { return n.id }
func (n *VarUint) Value() uint64                     { return n.val }
func (n *VarUint) SetValue(v uint64)                 { n.val = v }

func (n *VarUint) Read(src bytesio.Source, _ int64) error {
	v, err := varint.ReadVarUint(src)
	if err != nil {
		return err
	}

	n.val = v

	return nil
}

func (n *VarUint) Write(dst bytesio.Sink) error {
	return varint.WriteVarUint(dst, n.val)
}

// VarInt is RT_VARINT: a record whose entire payload is a single signed
// varint codec value.
type VarInt struct {
	id  format.ID
	val int64
}

func NewVarInt(id format.ID, val int64) *VarInt { return &VarInt{id: id, val: val} }
func (n *VarInt) Tag() format.RecordType          { return format.RTVarInt }
func (n *VarInt) ID() format.ID                   { return n.id }
func (n *VarInt) Value() int64                    { return n.val }
func (n *VarInt) SetValue(v int64)                { n.val = v }

func (n *VarInt) Read(src bytesio.Source, _ int64) error {
	v, err := varint.ReadVarInt(src)
	if err != nil {
		return err
	}

	n.val = v

	return nil
}

func (n *VarInt) Write(dst bytesio.Sink) error {
	return varint.WriteVarInt(dst, n.val)
}

// Raw128 is RT_RAW128: exactly 16 bytes of opaque payload, no length
// prefix (its size is fixed by the tag).
type Raw128 struct {
	id  format.ID
	val [16]byte
}

func NewRaw128(id format.ID, val [16]byte) *Raw128 { return &Raw128{id: id, val: val} }
func (n *Raw128) Tag() format.RecordType            { return format.RTRaw128 }
func (n *Raw128) ID() format.ID                     { return n.id }
func (n *Raw128) Value() [16]byte                   { return n.val }
func (n *Raw128) SetValue(v [16]byte)               { n.val = v }

func (n *Raw128) Read(src bytesio.Source, _ int64) error {
	return src.Read(n.val[:])
}

func (n *Raw128) Write(dst bytesio.Sink) error {
	return dst.Write(n.val[:])
}
