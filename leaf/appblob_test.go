package leaf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/internal/pool"
	"github.com/dstream-go/structstream/varint"
)

// reverseCodec is a trivial BlobCodec used to verify AppBlob actually
// routes its payload through the codec on both directions, rather than
// happening to round-trip by coincidence.
type reverseCodec struct{}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}

	return out
}

func (reverseCodec) Compress(data []byte) ([]byte, error)   { return reversed(data), nil }
func (reverseCodec) Decompress(data []byte) ([]byte, error) { return reversed(data), nil }

func TestAppBlob_RoundtripThroughCodec(t *testing.T) {
	tag := format.RTAppBlobMin + 3
	val := []byte("application payload")

	bb := pool.NewByteBuffer(64)
	w := NewAppBlob(tag, 9, reverseCodec{}, val)
	require.NoError(t, w.Write(bytesio.NewMemSink(bb)))

	src := bytesio.NewMemSource(bb.Bytes())
	compressedLen, err := varint.ReadVarUint(src)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(val)), compressedLen, "reverseCodec preserves length")

	got := NewAppBlob(tag, 0, reverseCodec{}, nil)
	require.NoError(t, got.Read(src, int64(compressedLen)))

	assert.Equal(t, val, got.Value())
	assert.Equal(t, tag, got.Tag())
	assert.Equal(t, format.ID(9), w.ID())
}
