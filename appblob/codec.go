// Package appblob provides compression codecs for the application-defined
// APPBLOB tag range (format.RTAppBlobMin..RTAppBlobMax), demonstrating the
// registry's extensibility beyond the core record types (spec §4.2/§6.2).
// Grounded on compress/codec.go's Compressor/Decompressor/Codec shape.
package appblob

import "fmt"

// Codec compresses and decompresses an APPBLOB payload before it is
// framed onto (or after it is read off) the wire. Compress/Decompress
// must be safe for concurrent use across different payloads; an
// individual Codec value carries no per-call state.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Algorithm identifies a registered Codec.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmS2
	AlgorithmLZ4
	AlgorithmZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmS2:
		return "s2"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmZstd:
		return "zstd"
	default:
		return fmt.Sprintf("appblob.Algorithm(%d)", uint8(a))
	}
}

// NoOp is the identity Codec, used for APPBLOB payloads that are not
// compressed.
type NoOp struct{}

func (NoOp) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOp) Decompress(data []byte) ([]byte, error) { return data, nil }

var builtin = map[Algorithm]Codec{
	AlgorithmNone: NoOp{},
	AlgorithmS2:   S2{},
	AlgorithmLZ4:  LZ4{},
	AlgorithmZstd: Zstd{},
}

// Get retrieves a built-in Codec for alg.
func Get(alg Algorithm) (Codec, error) {
	c, ok := builtin[alg]
	if !ok {
		return nil, fmt.Errorf("appblob: unsupported algorithm %s", alg)
	}

	return c, nil
}
