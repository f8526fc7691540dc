package hashfn

import "github.com/cespare/xxhash/v2"

// xxHash adapts cespare/xxhash/v2's Digest into IncrementalHash. It is
// registered under format.HTApp0 by NewDefaultRegistry: a fast,
// non-cryptographic option for containers where checksum-grade
// corruption detection is enough and collision resistance is not a goal.
type xxHash struct {
	d *xxhash.Digest
}

// NewXXHash constructs an IncrementalHash backed by xxhash.New().
func NewXXHash() IncrementalHash {
	return &xxHash{d: xxhash.New()}
}

func (x *xxHash) Len() int {
	return 8
}

func (x *xxHash) Feed(data []byte) {
	x.d.Write(data) //nolint:errcheck // xxhash.Digest.Write never fails
}

func (x *xxHash) Finish() []byte {
	sum := x.d.Sum64()

	return []byte{
		byte(sum >> 56), byte(sum >> 48), byte(sum >> 40), byte(sum >> 32),
		byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum),
	}
}
