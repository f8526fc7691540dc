package leaf

import (
	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/varint"
)

// BlobCodec compresses/decompresses an AppBlob's payload. Defined here
// (rather than importing package appblob) to avoid a cycle: appblob
// depends on leaf to build registry.Constructor values, not the other
// way around.
type BlobCodec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// AppBlob is a record in the application-defined tag range
// (format.RTAppBlobMin..RTAppBlobMax, spec §4.2/§6.2): a varuint-length-
// prefixed byte string like Blob, but passed through codec on the way on
// and off the wire so the registry can demonstrate a compressed
// application payload.
type AppBlob struct {
	tag   format.RecordType
	id    format.ID
	codec BlobCodec
	val   []byte
}

// NewAppBlob constructs an AppBlob for tag (which must be an APPBLOB
// tag), compressing/decompressing through codec. val is the
// uncompressed payload.
func NewAppBlob(tag format.RecordType, id format.ID, codec BlobCodec, val []byte) *AppBlob {
	return &AppBlob{tag: tag, id: id, codec: codec, val: val}
}

func (n *AppBlob) Tag() format.RecordType { return n.tag }
func (n *AppBlob) ID() format.ID          { return n.id }
func (n *AppBlob) Value() []byte          { return n.val }
func (n *AppBlob) SetValue(v []byte)      { n.val = v }

// Read reads payloadLen compressed bytes and decompresses them through
// codec.
func (n *AppBlob) Read(src bytesio.Source, payloadLen int64) error {
	buf := make([]byte, payloadLen)
	if payloadLen > 0 {
		if err := src.Read(buf); err != nil {
			return err
		}
	}

	val, err := n.codec.Decompress(buf)
	if err != nil {
		return err
	}

	n.val = val

	return nil
}

// Write compresses val through codec and writes its length prefix
// followed by the compressed bytes.
func (n *AppBlob) Write(dst bytesio.Sink) error {
	compressed, err := n.codec.Compress(n.val)
	if err != nil {
		return err
	}

	if err := varint.WriteVarUint(dst, uint64(len(compressed))); err != nil {
		return err
	}

	if len(compressed) == 0 {
		return nil
	}

	return dst.Write(compressed)
}
