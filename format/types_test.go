package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordType_IsAppBlob(t *testing.T) {
	assert.True(t, RTAppBlobMin.IsAppBlob())
	assert.True(t, RTAppBlobMax.IsAppBlob())
	assert.False(t, RTContainer.IsAppBlob())
	assert.False(t, RTAppNoSizeMin.IsAppBlob())
}

func TestRecordType_IsAppNoSize(t *testing.T) {
	assert.True(t, RTAppNoSizeMin.IsAppNoSize())
	assert.True(t, RTAppNoSizeMax.IsAppNoSize())
	assert.False(t, RTAppBlobMax.IsAppNoSize())
}

func TestRecordType_String(t *testing.T) {
	assert.Equal(t, "CONTAINER", RTContainer.String())
	assert.Equal(t, "APPBLOB", RTAppBlobMin.String())
	assert.Equal(t, "APP_NOSIZE", RTAppNoSizeMax.String())
	assert.Equal(t, "UNKNOWN", RecordType(0x3F).String())
}

func TestContainerFlags_Unknown(t *testing.T) {
	known := CFWithSize | CFHashed | CFArmored
	assert.Equal(t, ContainerFlags(0), known.Unknown())

	withJunk := known | ContainerFlags(0x4000)
	assert.Equal(t, ContainerFlags(0x4000), withJunk.Unknown())
}

func TestVarintBounds_SignedMagnitudeIsHalfOfUnsigned(t *testing.T) {
	// The sign bit reserves one of the 56 payload bits available in an
	// 8-byte encoding, so the signed range is exactly half the unsigned
	// range's magnitude (spec §4.1).
	assert.Equal(t, uint64(MaxVarInt), MaxVarUInt>>1)
	assert.Equal(t, int64(-MaxVarInt), MinVarInt)
}

func TestHashType_String(t *testing.T) {
	assert.Equal(t, "SHA256", HTSHA256.String())
	assert.Equal(t, "UNKNOWN", HashType(0x7E).String())
}
