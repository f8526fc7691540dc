// Package varint implements structstream's EBML-like variable-length
// integer encoding (spec §4.1), grounded on
// original_source/src/utils.cpp's read_varuint_ex/write_varbuf_ex.
//
// The first byte's leading zero-bit count (from bit 7 down) determines the
// total encoding width w, 1 through 8 bytes: a marker bit at position
// (7-leadingZeros) is set, and every bit below it — in byte 1 and in bytes
// 2..w — is payload, big-endian, for 7*w payload bits total. 0x80 is the
// canonical encoding of zero; a leading 0x00 byte is never valid.
package varint

import (
	"math/bits"

	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
)

// MaxBytes is the widest encoding this package produces or accepts (8
// bytes, 56 payload bits — spec §4.1, format.MaxVarUInt).
const MaxBytes = 8

// readVaruintEx reads one varuint from src and also reports the wire byte
// width w it was encoded in, needed by ReadVarInt to locate the sign bit.
func readVaruintEx(src bytesio.Source) (value uint64, width int, err error) {
	var leading [1]byte
	if err := src.Read(leading[:]); err != nil {
		return 0, 0, err
	}

	lead := leading[0]
	if lead == 0x00 {
		return 0, 0, errs.ErrInvalidVarInt
	}

	if lead == 0x80 {
		return 0, 1, nil
	}

	// Number of extra bytes to read equals the count of leading zero
	// bits in lead (bit 7 downward) before the marker bit.
	extra := bits.LeadingZeros8(lead)

	result := uint64(lead&(0xFF>>(extra+1))) << (extra * 8)

	if extra > 0 {
		var buf [MaxBytes - 1]byte
		if err := src.Read(buf[:extra]); err != nil {
			return 0, 0, err
		}

		for i := 0; i < extra; i++ {
			result |= uint64(buf[i]) << ((extra - i - 1) * 8)
		}
	}

	return result, extra + 1, nil
}

// ReadVarUint reads one varuint from src.
func ReadVarUint(src bytesio.Source) (uint64, error) {
	value, _, err := readVaruintEx(src)
	return value, err
}

// ReadVarInt reads one varint from src, undoing the sign-bit encoding
// described in spec §4.1: bit (7*width-1) of the raw payload is the sign
// bit; if set, the remaining bits are the magnitude and the value is
// negative.
func ReadVarInt(src bytesio.Source) (int64, error) {
	raw, width, err := readVaruintEx(src)
	if err != nil {
		return 0, err
	}

	mask := uint64(1) << (7*width - 1)
	if raw&mask != 0 {
		return -int64(raw &^ mask), nil
	}

	return int64(raw), nil
}

// bitWidth reports how many bits are needed to represent v (0 for v==0).
func bitWidth(v uint64) int {
	return 64 - bits.LeadingZeros64(v)
}

// varuintWidth reports the minimal wire byte width (1..8) needed to encode
// v as an unsigned varint: ceil(bitWidth(v) / 7), with v==0 taking 1 byte
// (the 0x80 shortcut).
func varuintWidth(v uint64) int {
	if v == 0 {
		return 1
	}

	w := (bitWidth(v) + 6) / 7
	if w > MaxBytes {
		w = MaxBytes
	}

	return w
}

// varintWidth reports the minimal wire byte width for a signed value
// already converted to its unsigned magnitude-with-sign-bit-reserved form:
// one extra payload bit beyond varuintWidth's bit count, so the sign bit
// never collides with a magnitude bit (spec §4.1).
func varintWidth(magnitude uint64) int {
	w := (bitWidth(magnitude) + 7) / 7
	if w < 1 {
		w = 1
	}

	if w > MaxBytes {
		w = MaxBytes
	}

	return w
}

// writeVarbufEx writes buf using exactly width bytes on the wire, per
// write_varbuf_ex. Caller guarantees buf fits in width*7 bits.
func writeVarbufEx(dst bytesio.Sink, buf uint64, width int) error {
	if buf == 0 {
		return dst.Write([]byte{0x80})
	}

	var out [MaxBytes]byte

	leading := byte(0x80) >> (width - 1)
	leadingPremask := uint64(0xFF) << ((width - 1) * 8)
	leadingMask := (leadingPremask >> uint(width)) & leadingPremask
	leading |= byte((buf & leadingMask) >> ((width - 1) * 8))
	out[0] = leading

	for i := width - 2; i >= 0; i-- {
		mask := uint64(0xFF) << (i * 8)
		out[width-1-i] = byte((buf & mask) >> (i * 8))
	}

	return dst.Write(out[:width])
}

// WriteVarUint writes v to dst using the minimal encoding width.
func WriteVarUint(dst bytesio.Sink, v uint64) error {
	if v > format.MaxVarUInt {
		panic("varint: value exceeds 56-bit varuint range")
	}

	return writeVarbufEx(dst, v, varuintWidth(v))
}

// WriteVarInt writes v to dst using the minimal encoding width, reserving
// one extra payload bit for the sign (spec §4.1).
func WriteVarInt(dst bytesio.Sink, v int64) error {
	if v < format.MinVarInt || v > format.MaxVarInt {
		panic("varint: value exceeds 56-bit varint range")
	}

	if v < 0 {
		mag := uint64(-v)
		width := varintWidth(mag)
		signBit := uint64(1) << (7*width - 1)

		return writeVarbufEx(dst, mag|signBit, width)
	}

	mag := uint64(v)
	width := varintWidth(mag)

	return writeVarbufEx(dst, mag, width)
}

// AppendVarUint appends v's minimal-width varuint encoding to buf and
// returns the extended slice, mirroring endian.EndianEngine's
// AppendByteOrder fast path for buffer-based encoding without an
// intermediate Sink.
func AppendVarUint(buf []byte, v uint64) []byte {
	if v > format.MaxVarUInt {
		panic("varint: value exceeds 56-bit varuint range")
	}

	return appendVarbufEx(buf, v, varuintWidth(v))
}

// AppendVarInt appends v's minimal-width varint encoding to buf.
func AppendVarInt(buf []byte, v int64) []byte {
	if v < format.MinVarInt || v > format.MaxVarInt {
		panic("varint: value exceeds 56-bit varint range")
	}

	if v < 0 {
		mag := uint64(-v)
		width := varintWidth(mag)
		signBit := uint64(1) << (7*width - 1)

		return appendVarbufEx(buf, mag|signBit, width)
	}

	mag := uint64(v)
	width := varintWidth(mag)

	return appendVarbufEx(buf, mag, width)
}

func appendVarbufEx(buf []byte, val uint64, width int) []byte {
	if val == 0 {
		return append(buf, 0x80)
	}

	leading := byte(0x80) >> (width - 1)
	leadingPremask := uint64(0xFF) << ((width - 1) * 8)
	leadingMask := (leadingPremask >> uint(width)) & leadingPremask
	leading |= byte((val & leadingMask) >> ((width - 1) * 8))

	buf = append(buf, leading)
	for i := width - 2; i >= 0; i-- {
		mask := uint64(0xFF) << (i * 8)
		buf = append(buf, byte((val&mask)>>(i*8)))
	}

	return buf
}
