package leaf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/internal/pool"
)

func writeThenRead(t *testing.T, w Writer, r Reader, payloadLen int64) {
	t.Helper()

	bb := pool.NewByteBuffer(32)
	require.NoError(t, w.Write(bytesio.NewMemSink(bb)))

	require.NoError(t, r.Read(bytesio.NewMemSource(bb.Bytes()), payloadLen))
}

func TestUint32_Roundtrip(t *testing.T) {
	got := NewUint32(1, 0)
	writeThenRead(t, NewUint32(1, 0xDEADBEEF), got, -1)
	assert.Equal(t, uint32(0xDEADBEEF), got.Value())
}

func TestInt32_Roundtrip_Negative(t *testing.T) {
	got := NewInt32(1, 0)
	writeThenRead(t, NewInt32(1, -12345), got, -1)
	assert.Equal(t, int32(-12345), got.Value())
}

func TestUint64_Roundtrip(t *testing.T) {
	got := NewUint64(1, 0)
	writeThenRead(t, NewUint64(1, 0xFFFFFFFFFFFFFFFF), got, -1)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), got.Value())
}

func TestInt64_Roundtrip_Negative(t *testing.T) {
	got := NewInt64(1, 0)
	writeThenRead(t, NewInt64(1, -9223372036854775808), got, -1)
	assert.Equal(t, int64(-9223372036854775808), got.Value())
}

func TestFloat32_Roundtrip(t *testing.T) {
	got := NewFloat32(1, 0)
	writeThenRead(t, NewFloat32(1, 3.14159), got, -1)
	assert.InDelta(t, float32(3.14159), got.Value(), 1e-6)
}

func TestFloat64_Roundtrip(t *testing.T) {
	got := NewFloat64(1, 0)
	writeThenRead(t, NewFloat64(1, 2.718281828459045), got, -1)
	assert.InDelta(t, 2.718281828459045, got.Value(), 1e-15)
}

func TestBool_TagEncodesValue(t *testing.T) {
	assert.NotEqual(t, NewBool(1, true).Tag(), NewBool(1, false).Tag())

	bb := pool.NewByteBuffer(4)
	require.NoError(t, NewBool(1, true).Write(bytesio.NewMemSink(bb)))
	assert.Equal(t, 0, bb.Len(), "Bool has no payload bytes")
}

func TestBlob_Roundtrip(t *testing.T) {
	val := []byte("some blob content")
	got := NewBlob(1, nil)
	writeThenRead(t, NewBlob(1, val), got, int64(len(val)))
	assert.Equal(t, val, got.Value())
}

func TestBlob_EmptyRoundtrip(t *testing.T) {
	got := NewBlob(1, nil)
	writeThenRead(t, NewBlob(1, nil), got, 0)
	assert.Empty(t, got.Value())
}

func TestUTF8String_Roundtrip(t *testing.T) {
	val := "héllo wörld"
	got := NewUTF8String(1, "")
	writeThenRead(t, NewUTF8String(1, val), got, int64(len(val)))
	assert.Equal(t, val, got.Value())
}

func TestVarUint_Roundtrip(t *testing.T) {
	got := NewVarUint(1, 0)
	writeThenRead(t, NewVarUint(1, 123456789), got, -1)
	assert.Equal(t, uint64(123456789), got.Value())
}

func TestVarInt_Roundtrip_Negative(t *testing.T) {
	got := NewVarInt(1, 0)
	writeThenRead(t, NewVarInt(1, -123456789), got, -1)
	assert.Equal(t, int64(-123456789), got.Value())
}

func TestRaw128_Roundtrip(t *testing.T) {
	var val [16]byte
	for i := range val {
		val[i] = byte(i)
	}

	got := NewRaw128(1, [16]byte{})
	writeThenRead(t, NewRaw128(1, val), got, -1)
	assert.Equal(t, val, got.Value())
}
