// Package structstream implements a binary, self-describing,
// tree-structured record format with a streaming decode/encode engine,
// an optional per-container hashing pipeline, and an extensible
// record-type registry.
//
// # Core Features
//
//   - Self-describing records: every value carries its own type tag and
//     application-chosen numeric id, so a reader never needs an
//     out-of-band schema
//   - Streaming, event-driven decode and encode (package streaming),
//     so large streams never need to fit in memory at once
//   - Nested containers with optional declared child counts, armored
//     (END_OF_CHILDREN-terminated) framing, or both
//   - Optional per-container content hashing (package hashfn) with
//     forgiveness bits (package streaming) to downgrade specific decode
//     failures to warnings instead of aborting the whole stream
//   - An arena-and-index in-memory tree representation (package tree)
//     for callers who want the whole decoded structure at once rather
//     than driving their own sink
//   - A pluggable record-type registry (package registry) and an
//     application-defined compressed-blob tag range (package appblob)
//
// # Basic Usage
//
// Decoding a byte stream into a tree:
//
//	root, err := structstream.DecodeTree(data, registry.NewDefault())
//	if err != nil {
//	    return err
//	}
//	for _, child := range root.Children() {
//	    fmt.Println(child)
//	}
//
// Encoding a tree back to bytes:
//
//	out, err := structstream.EncodeTree(root, true)
//
// For fine-grained control — driving the decoder one record at a time,
// or pushing records without ever materializing a tree — use packages
// streaming and streamsink directly.
package structstream

import (
	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/internal/pool"
	"github.com/dstream-go/structstream/leaf"
	"github.com/dstream-go/structstream/registry"
	"github.com/dstream-go/structstream/streaming"
	"github.com/dstream-go/structstream/streamsink"
	"github.com/dstream-go/structstream/tree"
)

// DecodeTree decodes data and materializes the result as a tree, rooted
// at the synthetic container every decode produces. reg resolves record
// tags to leaf constructors; pass registry.NewDefault() for the standard
// tag set, registering any application-specific (APPBLOB) constructors
// on it first.
func DecodeTree(data []byte, reg *registry.Registry, opts ...streaming.DecoderOption) (tree.Container, error) {
	src := bytesio.NewMemSource(data)
	sink := streamsink.NewTree()

	dec := streaming.NewDecoder(src, reg, sink, opts...)
	if err := dec.ReadAll(); err != nil {
		return tree.Container{}, err
	}

	return sink.Root(), nil
}

// EncodeTree replays root (and everything beneath it) through an
// Encoder, returning the resulting bytes. armor sets the encoder's
// default armor setting. The replay declares no child counts, so the
// encoder armors every container whatever armor says, and both values
// produce the same bytes. root itself is never emitted (root is the synthetic
// wrapper the grammar requires, spec'd identically on both the decode
// and encode sides).
func EncodeTree(root tree.Container, armor bool) ([]byte, error) {
	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	dst := bytesio.NewMemSink(buf)

	enc := streaming.NewEncoder(dst)
	enc.SetDefaultArmor(armor)

	if err := replayChildren(enc, root); err != nil {
		return nil, err
	}

	if err := enc.EndOfStream(); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func replayChildren(enc *streaming.Encoder, c tree.Container) error {
	for _, child := range c.Children() {
		if leafNode, ok := child.Leaf(); ok {
			writer, ok := leafNode.(leaf.Writer)
			if !ok {
				continue
			}

			if err := enc.PushNode(writer); err != nil {
				return err
			}

			continue
		}

		var opts []streaming.ContainerOption
		if hashed, _, hf := child.HashAttestation(); hashed {
			opts = append(opts, streaming.WithHashFunction(hf))
		}

		if err := enc.StartContainer(child.ID(), opts...); err != nil {
			return err
		}

		if err := replayChildren(enc, child); err != nil {
			return err
		}

		if err := enc.EndContainer(); err != nil {
			return err
		}
	}

	return nil
}
