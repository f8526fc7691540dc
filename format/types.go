package format

// RecordType is the tag that precedes every record on the wire. It is
// encoded as a varuint (package varint) but the single-byte range 0x00-0x7F
// covers every tag this package defines.
type RecordType uint64

// ID is an application-chosen identifier, encoded as a varuint. Two
// sibling records may share an ID; duplicates are permitted.
type ID uint64

// Standard record type tags (spec §6.2). Values 0x00-0x3F are reserved for
// the core format; 0x40-0x5F are the APPBLOB range (length-prefixed,
// skippable by a forgiving decoder); 0x60-0x7F are APP_NOSIZE (no length
// prefix, never skippable).
const (
	RTReserved        RecordType = 0x00
	RTContainer       RecordType = 0x01
	RTUint32          RecordType = 0x02
	RTInt32           RecordType = 0x03
	RTUint64          RecordType = 0x04
	RTInt64           RecordType = 0x05
	RTBoolTrue        RecordType = 0x06
	RTBoolFalse       RecordType = 0x07
	RTFloat32         RecordType = 0x08
	RTFloat64         RecordType = 0x09
	RTUTF8String      RecordType = 0x0A
	RTBlob            RecordType = 0x0B
	RTEndOfChildren   RecordType = 0x0C
	RTVarUint         RecordType = 0x0D
	RTVarInt          RecordType = 0x0E
	RTRaw128          RecordType = 0x0F
	RTAppBlobMin      RecordType = 0x40
	RTAppBlobMax      RecordType = 0x5F
	RTAppNoSizeMin    RecordType = 0x60
	RTAppNoSizeMax    RecordType = 0x7F
)

// IsAppBlob reports whether rt lies in the length-prefixed application tag
// range (0x40-0x5F). An unrecognized tag in this range may be skipped by a
// decoder running with the UnknownAppblobs forgiveness bit set.
func (rt RecordType) IsAppBlob() bool {
	return rt >= RTAppBlobMin && rt <= RTAppBlobMax
}

// IsAppNoSize reports whether rt lies in the non-skippable application tag
// range (0x60-0x7F).
func (rt RecordType) IsAppNoSize() bool {
	return rt >= RTAppNoSizeMin && rt <= RTAppNoSizeMax
}

func (rt RecordType) String() string {
	switch rt {
	case RTReserved:
		return "RESERVED"
	case RTContainer:
		return "CONTAINER"
	case RTUint32:
		return "UINT32"
	case RTInt32:
		return "INT32"
	case RTUint64:
		return "UINT64"
	case RTInt64:
		return "INT64"
	case RTBoolTrue:
		return "BOOL_TRUE"
	case RTBoolFalse:
		return "BOOL_FALSE"
	case RTFloat32:
		return "FLOAT32"
	case RTFloat64:
		return "FLOAT64"
	case RTUTF8String:
		return "UTF8STRING"
	case RTBlob:
		return "BLOB"
	case RTEndOfChildren:
		return "END_OF_CHILDREN"
	case RTVarUint:
		return "VARUINT"
	case RTVarInt:
		return "VARINT"
	case RTRaw128:
		return "RAW128"
	default:
		switch {
		case rt.IsAppBlob():
			return "APPBLOB"
		case rt.IsAppNoSize():
			return "APP_NOSIZE"
		default:
			return "UNKNOWN"
		}
	}
}

// Varint value bounds (spec §4.1): an 8-byte encoding carries 56 payload
// bits, so the unsigned range is [0, 2^56-1]. A signed value reserves one
// of those bits for its sign (the writer's w = ceil((bitcount(|v|)+1)/7)
// rule), so the largest magnitude that still fits in 8 bytes is 2^55-1.
const (
	MaxVarUInt uint64 = 0x00ff_ffff_ffff_ffff
	MinVarUInt uint64 = 0

	MaxVarInt int64 = 0x007f_ffff_ffff_ffff
	MinVarInt int64 = -0x007f_ffff_ffff_ffff
)

// MaxID is the largest representable ID; InvalidID is the reserved
// sentinel that a decoder must reject.
const (
	MaxID     ID = ID(MaxVarUInt)
	InvalidID ID = MaxID
)

// ContainerFlags is the varuint bitfield following a CONTAINER tag's id
// (spec §6.3).
type ContainerFlags uint64

const (
	CFWithSize ContainerFlags = 0x0001
	CFHashed   ContainerFlags = 0x0002
	CFArmored  ContainerFlags = 0x0004
	cfReserved ContainerFlags = 0x0008

	CFApp0 ContainerFlags = 0x0010
	CFApp1 ContainerFlags = 0x0020
	CFApp2 ContainerFlags = 0x0040

	CFApp3 ContainerFlags = 0x1000
	CFApp4 ContainerFlags = 0x2000
)

// knownContainerFlags is every bit this package understands; anything else
// is subject to UnsupportedContainerFlags (or UnknownContainerFlags
// forgiveness). The reserved bit (0x08) and the application-defined bits
// (0x10-0x40, 0x1000-0x2000) are deliberately excluded: per spec §6.3
// they are unknown by default, regardless of whether this package names
// them as wire positions.
const knownContainerFlags = CFWithSize | CFHashed | CFArmored

// Unknown reports whether flags carries any bit this package does not
// define.
func (f ContainerFlags) Unknown() ContainerFlags {
	return f &^ knownContainerFlags
}

// HashType selects the incremental hash algorithm used by a CF_HASHED
// container (spec §6.4). The plug-in surface (the IncrementalHash
// interface and its registry) lives in package hashfn; this type is just
// the wire tag.
type HashType uint64

const (
	HTNone   HashType = 0x00
	HTSHA1   HashType = 0x01
	HTSHA256 HashType = 0x02
	HTSHA512 HashType = 0x03
	HTCRC32  HashType = 0x04
	HTMD5    HashType = 0x05
	HTApp0   HashType = 0x40
	HTInvalid HashType = 0x7F
)

func (h HashType) String() string {
	switch h {
	case HTNone:
		return "NONE"
	case HTSHA1:
		return "SHA1"
	case HTSHA256:
		return "SHA256"
	case HTSHA512:
		return "SHA512"
	case HTCRC32:
		return "CRC32"
	case HTMD5:
		return "MD5"
	case HTApp0:
		return "APP0"
	case HTInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// MaxDigestLength caps the digest_len field read from the wire (spec §4.4,
// §9): a decoder must refuse to allocate more than this many bytes for a
// container footer's digest, regardless of what the declared hash function
// would normally produce.
const MaxDigestLength = 1024
