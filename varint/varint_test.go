package varint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
)

func roundtripUint(t *testing.T, v uint64) {
	t.Helper()

	var buf []byte
	buf = AppendVarUint(buf, v)

	got, err := ReadVarUint(bytesio.NewMemSource(buf))
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func roundtripInt(t *testing.T, v int64) {
	t.Helper()

	var buf []byte
	buf = AppendVarInt(buf, v)

	got, err := ReadVarInt(bytesio.NewMemSource(buf))
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestRoundtripVarUint_Boundaries(t *testing.T) {
	values := []uint64{
		0, 1, 63, 64, 127, 128,
		1<<7 - 1, 1 << 7,
		1<<14 - 1, 1 << 14,
		1<<21 - 1, 1 << 21,
		1<<28 - 1, 1 << 28,
		1<<35 - 1, 1 << 35,
		1<<42 - 1, 1 << 42,
		1<<49 - 1, 1 << 49,
		format.MaxVarUInt,
		format.MaxVarUInt - 1,
	}

	for _, v := range values {
		roundtripUint(t, v)
	}
}

func TestRoundtripVarInt_Boundaries(t *testing.T) {
	values := []int64{
		0, 1, -1, 63, -63, 64, -64, 127, -127,
		format.MaxVarInt, format.MinVarInt,
		format.MaxVarInt - 1, format.MinVarInt + 1,
	}

	for _, v := range values {
		roundtripInt(t, v)
	}
}

func TestVarInt_NegativeOneIsOneByte(t *testing.T) {
	var buf []byte
	buf = AppendVarInt(buf, -1)

	require.Len(t, buf, 1)
	assert.Equal(t, byte(0xC1), buf[0])
}

func TestVarInt_Negative127MatchesTwoByteEncoding(t *testing.T) {
	var buf []byte
	buf = AppendVarInt(buf, -127)

	require.Equal(t, []byte{0x60, 0x7F}, buf)

	got, err := ReadVarInt(bytesio.NewMemSource(buf))
	require.NoError(t, err)
	assert.Equal(t, int64(-127), got)
}

func TestVarUint_ZeroIsCanonical(t *testing.T) {
	var buf []byte
	buf = AppendVarUint(buf, 0)

	require.Equal(t, []byte{0x80}, buf)
}

func TestVarUint_MaxValueIsEightBytes(t *testing.T) {
	var buf []byte
	buf = AppendVarUint(buf, format.MaxVarUInt)

	require.Equal(t, []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, buf)
}

func TestReadVarUint_LeadingZeroByteIsInvalid(t *testing.T) {
	src := bytesio.NewMemSource([]byte{0x00})

	_, err := ReadVarUint(src)
	require.ErrorIs(t, err, errs.ErrInvalidVarInt)
}

func TestReadVarUint_TruncatedStreamIsEndOfStream(t *testing.T) {
	src := bytesio.NewMemSource([]byte{0x01, 0xFF}) // width 8, only 1 extra byte present

	_, err := ReadVarUint(src)
	require.ErrorIs(t, err, errs.ErrEndOfStream)
}

func TestWriteVarUint_PanicsOnOutOfRange(t *testing.T) {
	assert.Panics(t, func() {
		var buf []byte
		_ = WriteVarUint(bytesioSinkFor(&buf), format.MaxVarUInt+1)
	})
}

func TestWriteVarInt_PanicsOnOutOfRange(t *testing.T) {
	assert.Panics(t, func() {
		var buf []byte
		_ = WriteVarInt(bytesioSinkFor(&buf), format.MinVarInt-1)
	})
}

// bytesioSinkFor adapts a *[]byte into a bytesio.Sink for WriteVarUint/
// WriteVarInt tests that need a Sink rather than AppendVarUint/AppendVarInt.
type sliceSink struct{ buf *[]byte }

func (s sliceSink) Write(p []byte) error {
	*s.buf = append(*s.buf, p...)
	return nil
}

func bytesioSinkFor(buf *[]byte) bytesio.Sink {
	return sliceSink{buf: buf}
}
