package streaming

import (
	"github.com/dstream-go/structstream/bytesio"
	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/hashfn"
	"github.com/dstream-go/structstream/internal/options"
	"github.com/dstream-go/structstream/leaf"
	"github.com/dstream-go/structstream/varint"
)

// writeFrame mirrors the decoder's frame, tracked on the encoder side
// while a container is open for writing (spec §4.5).
type writeFrame struct {
	armored       bool
	declaredCount int64 // -1 if unknown
	hashed        bool
	hashFn        format.HashType

	hashSink *bytesio.HashSink
}

func (f *writeFrame) activeSink(fallback bytesio.Sink) bytesio.Sink {
	if f.hashSink != nil {
		return f.hashSink
	}

	return fallback
}

// ContainerOption configures one StartContainer call.
type ContainerOption = options.Option[*containerSpec]

type containerSpec struct {
	declaredCount int64 // -1 means unknown/unset
	armor         *bool // nil means "use the encoder's default"
	hashFn        *format.HashType
}

// WithDeclaredSize tells the encoder exactly how many children this
// container will have, enabling CF_WITH_SIZE.
func WithDeclaredSize(n int64) ContainerOption {
	return options.NoError(func(c *containerSpec) { c.declaredCount = n })
}

// WithArmor overrides the encoder's default armor setting for one
// container (CF_ARMORED, i.e. terminate with END_OF_CHILDREN).
func WithArmor(armor bool) ContainerOption {
	return options.NoError(func(c *containerSpec) { c.armor = &armor })
}

// WithHashFunction requests a CF_HASHED container digested with ht, on
// either Encoder or HashingEncoder. HashingEncoder additionally applies
// its (tag,id) selection map when no explicit WithHashFunction is given.
func WithHashFunction(ht format.HashType) ContainerOption {
	return options.NoError(func(c *containerSpec) { c.hashFn = &ht })
}

// Encoder is a push-driven sink that serializes start_container/
// push_node/end_container/end_of_stream calls to bytes (spec §4.5). The
// base Encoder hashes only containers opened with WithHashFunction;
// HashingEncoder adds a (tag,id)->HashType selection map.
type Encoder struct {
	dst          bytesio.Sink
	defaultArmor bool
	stack        []*writeFrame
	hashReg      *hashfn.Registry
	closed       bool
}

// NewEncoder constructs an Encoder writing to dst.
func NewEncoder(dst bytesio.Sink) *Encoder {
	return &Encoder{
		dst:     dst,
		hashReg: hashfn.NewDefaultRegistry(),
		stack:   []*writeFrame{{armored: true, declaredCount: -1}},
	}
}

// SetDefaultArmor sets whether containers are armored (CF_ARMORED) when
// neither WithArmor nor a declared size settles the question.
func (e *Encoder) SetDefaultArmor(armor bool) {
	e.defaultArmor = armor
}

// SetHashRegistry overrides the default hash-function registry used to
// construct digests for hashed containers.
func (e *Encoder) SetHashRegistry(reg *hashfn.Registry) {
	e.hashReg = reg
}

func (e *Encoder) top() *writeFrame {
	return e.stack[len(e.stack)-1]
}

func (e *Encoder) curSink() bytesio.Sink {
	return e.sinkFor(e.stack)
}

// sinkFor returns the hash sink of the innermost hashed frame in frames, or
// dst when none is hashed, so every enclosing digest also covers the bytes
// of nested unhashed containers.
func (e *Encoder) sinkFor(frames []*writeFrame) bytesio.Sink {
	dst := e.dst
	for _, f := range frames {
		dst = f.activeSink(dst)
	}

	return dst
}

func (e *Encoder) resolveHashFn(id format.ID, spec *containerSpec) (format.HashType, bool) {
	if spec.hashFn != nil {
		return *spec.hashFn, true
	}

	return 0, false
}

// StartContainer opens a new container, deriving its flags per spec
// §4.5: CF_ARMORED when the default armor setting is on (or overridden
// via WithArmor) or the declared size is unknown; CF_WITH_SIZE when a
// declared size is given; CF_HASHED when a hash function was selected.
func (e *Encoder) StartContainer(id format.ID, opts ...ContainerOption) error {
	if e.closed {
		return errs.ErrAlreadyClosed
	}

	spec := &containerSpec{declaredCount: -1}
	_ = options.Apply(spec, opts...)

	armored := e.defaultArmor || spec.declaredCount < 0
	if spec.armor != nil {
		armored = *spec.armor
	}

	if spec.declaredCount < 0 && !armored {
		return errs.ErrIllegalCombinationOfFlags
	}

	var flags format.ContainerFlags
	if spec.declaredCount >= 0 {
		flags |= format.CFWithSize
	}

	if armored {
		flags |= format.CFArmored
	}

	hashFn, hashed := e.resolveHashFn(id, spec)
	if hashed {
		flags |= format.CFHashed
	}

	dst := e.curSink()

	if err := varint.WriteVarUint(dst, uint64(format.RTContainer)); err != nil {
		return err
	}

	if err := varint.WriteVarUint(dst, uint64(id)); err != nil {
		return err
	}

	if err := varint.WriteVarUint(dst, uint64(flags)); err != nil {
		return err
	}

	if spec.declaredCount >= 0 {
		if err := varint.WriteVarInt(dst, spec.declaredCount); err != nil {
			return err
		}
	}

	f := &writeFrame{armored: armored, declaredCount: spec.declaredCount}

	if hashed {
		if err := varint.WriteVarInt(dst, int64(hashFn)); err != nil {
			return err
		}

		h, err := e.hashReg.New(hashFn)
		if err != nil {
			return err
		}

		f.hashed = true
		f.hashFn = hashFn
		f.hashSink = bytesio.NewHashSink(dst, h)
	}

	e.stack = append(e.stack, f)

	return nil
}

// PushNode writes one leaf record: its tag, id, and (for Blob/UTF8String/
// APPBLOB tags) a length prefix, then its payload.
func (e *Encoder) PushNode(n leaf.Writer) error {
	if e.closed {
		return errs.ErrAlreadyClosed
	}

	dst := e.curSink()

	if err := varint.WriteVarUint(dst, uint64(n.Tag())); err != nil {
		return err
	}

	if err := varint.WriteVarUint(dst, uint64(n.ID())); err != nil {
		return err
	}

	if err := n.Write(dst); err != nil {
		return err
	}

	e.top().declaredCount = bumpReadCount(e.top().declaredCount)

	return nil
}

// bumpReadCount is a no-op placeholder kept distinct from declaredCount's
// "target" meaning; the encoder does not need a separate read_count since
// it is the producer, not the consumer, of the child sequence — present
// only so PushNode's bookkeeping step is visible at the call site.
func bumpReadCount(n int64) int64 { return n }

// EndContainer closes the current container: writes END_OF_CHILDREN if
// armored, finalizes and writes the digest if hashed.
//
// A hashed container's digest covers its children up to and including its
// own END_OF_CHILDREN marker (spec §3.4), so that marker must still be
// written through f.hashSink before the frame is popped and the digest
// finalized, not through the parent's sink afterward.
func (e *Encoder) EndContainer() error {
	if e.closed {
		return errs.ErrAlreadyClosed
	}

	if len(e.stack) <= 1 {
		return errs.ErrNestMisuse
	}

	f := e.top()
	parentSink := e.sinkFor(e.stack[:len(e.stack)-1])

	if f.armored {
		if err := varint.WriteVarUint(f.activeSink(parentSink), uint64(format.RTEndOfChildren)); err != nil {
			return err
		}
	}

	e.stack = e.stack[:len(e.stack)-1]

	if f.hashed {
		digest := f.hashSink.Finish()

		if err := varint.WriteVarUint(parentSink, uint64(len(digest))); err != nil {
			return err
		}

		if len(digest) > 0 {
			if err := parentSink.Write(digest); err != nil {
				return err
			}
		}
	}

	return nil
}

// EndOfStream writes the final END_OF_CHILDREN closing the synthetic
// root frame and marks the encoder closed.
func (e *Encoder) EndOfStream() error {
	if e.closed {
		return errs.ErrAlreadyClosed
	}

	if len(e.stack) != 1 {
		return errs.ErrNestMisuse
	}

	if err := varint.WriteVarUint(e.dst, uint64(format.RTEndOfChildren)); err != nil {
		return err
	}

	e.closed = true

	return nil
}

// HashingEncoder embeds Encoder and adds a (RecordType, ID) -> HashType
// selection map (spec §4.5's "specialized encoder variant"), grounded on
// ToBitstreamHashing.
type HashingEncoder struct {
	*Encoder

	byKey map[hashKey]format.HashType
}

type hashKey struct {
	tag format.RecordType
	id  format.ID
}

// NewHashingEncoder constructs a HashingEncoder writing to dst.
func NewHashingEncoder(dst bytesio.Sink) *HashingEncoder {
	return &HashingEncoder{
		Encoder: NewEncoder(dst),
		byKey:   make(map[hashKey]format.HashType),
	}
}

// SelectHash registers ht as the hash function for the container
// identified by (tag, id); StartContainer for that pair then implicitly
// sets CF_HASHED unless overridden by an explicit WithHashFunction
// option.
func (e *HashingEncoder) SelectHash(tag format.RecordType, id format.ID, ht format.HashType) {
	e.byKey[hashKey{tag: tag, id: id}] = ht
}

// StartContainer behaves like Encoder.StartContainer but consults the
// (tag,id) hash-selection map when no WithHashFunction option is given.
func (e *HashingEncoder) StartContainer(id format.ID, opts ...ContainerOption) error {
	spec := &containerSpec{declaredCount: -1}
	_ = options.Apply(spec, opts...)

	if spec.hashFn == nil {
		if ht, ok := e.byKey[hashKey{tag: format.RTContainer, id: id}]; ok {
			spec.hashFn = &ht
		}
	}

	rebuilt := make([]ContainerOption, 0, len(opts)+1)
	rebuilt = append(rebuilt, opts...)

	if spec.hashFn != nil {
		rebuilt = append(rebuilt, WithHashFunction(*spec.hashFn))
	}

	if spec.declaredCount >= 0 {
		rebuilt = append(rebuilt, WithDeclaredSize(spec.declaredCount))
	}

	if spec.armor != nil {
		rebuilt = append(rebuilt, WithArmor(*spec.armor))
	}

	return e.Encoder.StartContainer(id, rebuilt...)
}
