// Package streaming implements the event-driven decode/encode engine of
// spec §4.4-§4.6: Decoder turns bytes into Sink events, Encoder/
// HashingEncoder turn Sink-shaped calls back into bytes. Grounded on
// original_source/structstream/streaming_bitstream.hpp's FromBitstream /
// ToBitstream / ToBitstreamHashing.
package streaming

import (
	"bytes"
	"fmt"

	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/hashfn"
	"github.com/dstream-go/structstream/internal/options"
	"github.com/dstream-go/structstream/registry"
	"github.com/dstream-go/structstream/streamsink"
	"github.com/dstream-go/structstream/varint"
)

// frame describes one currently-open container (spec §4.4's frame stack).
type frame struct {
	declaredCount int64 // -1 if CF_WITH_SIZE not set
	readCount     int64
	armored       bool
	hasHash       bool
	hashFn        format.HashType

	// hashSrc is the installed hash pipe for this frame's byte range, or
	// nil if the frame is unhashed. Restoring "the prior source" on pop
	// needs no bookkeeping beyond this: curSource uses the hashSrc of the
	// innermost frame that has one, so once a frame is popped, reads fall
	// back to the enclosing frame's pipe (or the raw source).
	hashSrc *bytesio.HashSource
}

func (f *frame) activeSource(fallback bytesio.Source) bytesio.Source {
	if f.hashSrc != nil {
		return f.hashSrc
	}

	return fallback
}

// DecoderOption configures a Decoder at construction time.
type DecoderOption = options.Option[*Decoder]

// WithHashRegistry overrides the default hash-function registry
// (hashfn.NewDefaultRegistry()) a Decoder uses to verify CF_HASHED
// containers.
func WithHashRegistry(reg *hashfn.Registry) DecoderOption {
	return options.NoError(func(d *Decoder) { d.hashReg = reg })
}

// WithForgivenessMask sets the initial forgiveness mask (spec §7),
// equivalent to calling SetForgivenessMask after construction.
func WithForgivenessMask(mask ForgivenessMask) DecoderOption {
	return options.NoError(func(d *Decoder) { d.mask = mask })
}

// Decoder turns a byte stream into events delivered to a streamsink.Sink.
// Not safe for concurrent use on one instance (spec §5).
type Decoder struct {
	src     bytesio.Source
	reg     *registry.Registry
	hashReg *hashfn.Registry
	sink    streamsink.Sink
	mask    ForgivenessMask

	stack []*frame
}

// NewDecoder constructs a Decoder reading from src, resolving tags
// through reg, and delivering events to sink. A synthetic root frame
// (declared_count=-1, armored=true, no hash) wraps the top-level stream.
func NewDecoder(src bytesio.Source, reg *registry.Registry, sink streamsink.Sink, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		src:     src,
		reg:     reg,
		hashReg: hashfn.NewDefaultRegistry(),
		sink:    sink,
	}

	_ = options.Apply(d, opts...) // NoError options never fail

	d.stack = []*frame{{declaredCount: -1, armored: true}}

	return d
}

// SetForgivenessMask installs mask, replacing any previous mask.
func (d *Decoder) SetForgivenessMask(mask ForgivenessMask) {
	d.mask = mask
}

// top returns the currently-open frame (always non-nil while the stack
// has not fully unwound).
func (d *Decoder) top() *frame {
	return d.stack[len(d.stack)-1]
}

// curSource returns the hash pipe of the innermost open frame that has one,
// or the raw source when none does, so every enclosing digest also sees the
// bytes of nested unhashed containers.
func (d *Decoder) curSource() bytesio.Source {
	src := d.src
	for _, f := range d.stack {
		src = f.activeSource(src)
	}

	return src
}

// ReadAll repeatedly decodes records until the root frame closes.
func (d *Decoder) ReadAll() error {
	for len(d.stack) > 0 {
		if err := d.readNext(); err != nil {
			return err
		}
	}

	return nil
}

// ReadNext decodes exactly one top-level step of the grammar: either a
// leaf record, a container open/close, or the terminal end-of-stream.
// Returns errs.ErrEndOfStream once the root frame has closed.
func (d *Decoder) ReadNext() error {
	if len(d.stack) == 0 {
		return errs.ErrEndOfStream
	}

	return d.readNext()
}

func (d *Decoder) readNext() error {
	if len(d.stack) == 0 {
		return nil
	}

	src := d.curSource()

	rt, err := varint.ReadVarUint(src)
	if err != nil {
		return err
	}

	tag := format.RecordType(rt)

	if tag == format.RTEndOfChildren {
		f := d.top()
		if f.armored && (f.declaredCount == -1 || f.declaredCount == f.readCount) {
			return d.endOfContainer()
		}

		if d.mask.Has(PrematureEndOfContainer) {
			return d.endOfContainer()
		}

		return fmt.Errorf("%w: declared=%d read=%d armored=%v", errs.ErrUnexpectedEndOfChildren, f.declaredCount, f.readCount, f.armored)
	}

	f := d.top()
	if f.armored && f.declaredCount != -1 && f.readCount >= f.declaredCount {
		return fmt.Errorf("%w: expected END_OF_CHILDREN after %d children", errs.ErrMissingEndOfChildren, f.declaredCount)
	}

	idRaw, err := varint.ReadVarUint(src)
	if err != nil {
		return err
	}

	id := format.ID(idRaw)
	if id == format.InvalidID {
		return errs.ErrInvalidID
	}

	if tag == format.RTContainer {
		if err := d.startContainer(id); err != nil {
			return err
		}

		return d.checkEndOfContainer()
	}

	ctor, ok := d.reg.Lookup(tag)
	if !ok {
		if tag.IsAppBlob() && d.mask.Has(UnknownAppblobs) {
			return d.skipAppBlob(src)
		}

		return fmt.Errorf("%w: tag=%s", errs.ErrUnsupportedRecordType, tag)
	}

	node := ctor(id)

	payloadLen := int64(-1)
	if tag == format.RTBlob || tag == format.RTUTF8String || tag.IsAppBlob() {
		n, err := varint.ReadVarUint(src)
		if err != nil {
			return err
		}

		payloadLen = int64(n)
	}

	reader, ok := node.(interface {
		Read(src bytesio.Source, payloadLen int64) error
	})
	if !ok {
		return fmt.Errorf("%w: tag=%s does not implement Read", errs.ErrUnsupportedRecordType, tag)
	}

	if err := reader.Read(src, payloadLen); err != nil {
		return err
	}

	if _, err := d.sink.PushNode(node); err != nil {
		return err
	}

	d.top().readCount++

	return d.checkEndOfContainer()
}

// skipAppBlob discards an unrecognized APPBLOB payload under the
// UnknownAppblobs forgiveness bit.
func (d *Decoder) skipAppBlob(src bytesio.Source) error {
	n, err := varint.ReadVarUint(src)
	if err != nil {
		return err
	}

	// Read and discard rather than Skip: a HashSource does not feed skipped
	// bytes to its digest, and this payload may lie in a hashed container.
	var buf [512]byte
	for n > 0 {
		k := min(n, uint64(len(buf)))
		if err := src.Read(buf[:k]); err != nil {
			return err
		}

		n -= k
	}

	d.top().readCount++

	return d.checkEndOfContainer()
}

func (d *Decoder) startContainer(id format.ID) error {
	src := d.curSource()

	flagsRaw, err := varint.ReadVarUint(src)
	if err != nil {
		return err
	}

	flags := format.ContainerFlags(flagsRaw)

	f := &frame{declaredCount: -1}

	if flags&format.CFWithSize != 0 {
		count, err := varint.ReadVarInt(src)
		if err != nil {
			return err
		}

		f.declaredCount = count
	}

	if flags&format.CFArmored != 0 {
		f.armored = true
	}

	if f.declaredCount == -1 && !f.armored {
		return errs.ErrIllegalCombinationOfFlags
	}

	if flags&format.CFHashed != 0 {
		htRaw, err := varint.ReadVarInt(src)
		if err != nil {
			return err
		}

		f.hasHash = true
		f.hashFn = format.HashType(htRaw)
	}

	if unknown := flags.Unknown(); unknown != 0 && !d.mask.Has(UnknownContainerFlags) {
		return fmt.Errorf("%w: 0x%x", errs.ErrUnsupportedContainerFlags, uint64(unknown))
	}

	if f.hasHash {
		h, err := d.hashReg.New(f.hashFn)
		if err != nil {
			if !d.mask.Has(UnknownHashFunction) {
				return err
			}
			// Proceed unverified: no hash pipe installed, f.hashSrc stays
			// nil so bytes simply pass through uninstrumented.
		} else {
			f.hashSrc = bytesio.NewHashSource(src, h)
		}
	}

	declaredSize := f.declaredCount
	cont, err := d.sink.StartContainer(streamsink.ContainerMeta{ID: id, Flags: flags, DeclaredSize: declaredSize})
	if err != nil {
		return err
	}

	_ = cont // sink's own "disinterest" bool is informational (spec §4.4/§5)

	d.stack = append(d.stack, f)

	return nil
}

// endOfContainer pops the current frame, verifying its digest if hashed,
// then reports the footer to the sink and cascades check-end-of-container
// to the (now current) parent frame.
//
// Popping the synthetic root frame (stack becomes empty) is the
// end-of-stream condition: the root was never announced to the sink via
// StartContainer, so it is not announced via EndContainer either — the
// sink instead receives EndOfStream.
func (d *Decoder) endOfContainer() error {
	f := d.top()
	d.stack = d.stack[:len(d.stack)-1]

	if len(d.stack) == 0 {
		return d.sink.EndOfStream()
	}

	foot := streamsink.ContainerFooter{Hashed: f.hasHash, HashFunction: f.hashFn}

	if f.hasHash {
		validated, err := d.verifyDigest(f)
		if err != nil {
			return err
		}

		foot.Validated = validated
	}

	if _, err := d.sink.EndContainer(foot); err != nil {
		return err
	}

	d.top().readCount++

	return d.checkEndOfContainer()
}

// verifyDigest uninstalls f's hash pipe (if one was installed), reads the
// trailing digest, and compares it against the accumulated hash. The
// digest_len/digest bytes themselves are read through whatever source is
// now current (the parent frame's, after f was popped) so that an outer
// hashed container — if f is nested inside one — still sees them fed
// into its own digest.
func (d *Decoder) verifyDigest(f *frame) (validated bool, err error) {
	src := d.curSource()

	digestLen, err := varint.ReadVarUint(src)
	if err != nil {
		return false, err
	}

	if digestLen > format.MaxDigestLength {
		return false, fmt.Errorf("%w: digest_len=%d exceeds max %d", errs.ErrMalformedHash, digestLen, format.MaxDigestLength)
	}

	if f.hashSrc == nil {
		// UnknownHashFunction forgiveness path: no pipe was installed, so
		// there is nothing to compare against; consume the digest bytes
		// as raw and report unvalidated.
		digest := make([]byte, digestLen)
		if digestLen > 0 {
			if err := src.Read(digest); err != nil {
				return false, err
			}
		}

		return false, nil
	}

	want := f.hashSrc.Finish()
	if uint64(len(want)) != digestLen {
		return false, fmt.Errorf("%w: digest_len=%d, algorithm produces %d", errs.ErrMalformedHash, digestLen, len(want))
	}

	got := make([]byte, digestLen)
	if digestLen > 0 {
		if err := src.Read(got); err != nil {
			return false, err
		}
	}

	if !bytes.Equal(want, got) {
		if d.mask.Has(ChecksumErrors) {
			return false, nil
		}

		return false, errs.ErrHashCheckError
	}

	return true, nil
}

// checkEndOfContainer triggers end-of-container when the current frame is
// non-armored and has reached its declared count (spec §4.4).
func (d *Decoder) checkEndOfContainer() error {
	if len(d.stack) == 0 {
		return nil
	}

	f := d.top()
	if !f.armored && f.declaredCount == f.readCount {
		return d.endOfContainer()
	}

	return nil
}
