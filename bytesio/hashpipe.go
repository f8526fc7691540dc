package bytesio

import "github.com/dstream-go/structstream/hashfn"

// HashSource tees every byte read through the wrapped Source into an
// IncrementalHash, grounded on
// original_source/structstream/io_hash.hpp's HashPipe<HP_READ>. The
// decoder installs one when it opens a CF_HASHED container and uninstalls
// it (calling Finish) when the container's byte range ends.
type HashSource struct {
	src  Source
	hash hashfn.IncrementalHash
}

// NewHashSource wraps src, feeding every successfully read byte to hash.
func NewHashSource(src Source, hash hashfn.IncrementalHash) *HashSource {
	return &HashSource{src: src, hash: hash}
}

// Read implements Source, feeding p into the hash only after a full,
// successful read (a short/failed read must not corrupt the digest).
func (h *HashSource) Read(p []byte) error {
	if err := h.src.Read(p); err != nil {
		return err
	}

	h.hash.Feed(p)

	return nil
}

// Skip implements Source. Skipped bytes are never fed to the hash, so
// callers must not Skip within a hashed container's byte range.
func (h *HashSource) Skip(n int) error {
	return h.src.Skip(n)
}

// Finish finalizes and returns the underlying hash's digest. Finish must
// be called exactly once, after the container's last byte has been read
// through this HashSource.
func (h *HashSource) Finish() []byte {
	return h.hash.Finish()
}

// HashSink tees every byte written through the wrapped Sink into an
// IncrementalHash, grounded on io_hash.hpp's HashPipe<HP_WRITE>.
type HashSink struct {
	dst  Sink
	hash hashfn.IncrementalHash
}

// NewHashSink wraps dst, feeding every successfully written byte to hash.
func NewHashSink(dst Sink, hash hashfn.IncrementalHash) *HashSink {
	return &HashSink{dst: dst, hash: hash}
}

// Write implements Sink.
func (h *HashSink) Write(p []byte) error {
	if err := h.dst.Write(p); err != nil {
		return err
	}

	h.hash.Feed(p)

	return nil
}

// Finish finalizes and returns the underlying hash's digest.
func (h *HashSink) Finish() []byte {
	return h.hash.Finish()
}
