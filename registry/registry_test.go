package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstream-go/structstream/errs"
	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
)

func TestNewDefault_CoversStandardTags(t *testing.T) {
	reg := NewDefault()

	tags := []format.RecordType{
		format.RTUint32, format.RTInt32, format.RTUint64, format.RTInt64,
		format.RTFloat32, format.RTFloat64, format.RTBoolTrue, format.RTBoolFalse,
		format.RTUTF8String, format.RTBlob, format.RTVarUint, format.RTVarInt, format.RTRaw128,
	}

	for _, tag := range tags {
		_, ok := reg.Lookup(tag)
		assert.True(t, ok, "expected %s to be registered", tag)
	}
}

func TestRegistry_New_UnregisteredTagIsError(t *testing.T) {
	reg := New()

	_, err := reg.New(format.RTUint32, 1)
	require.ErrorIs(t, err, errs.ErrUnsupportedRecordType)
}

func TestRegistry_New_ConstructsFreshNode(t *testing.T) {
	reg := NewDefault()

	n, err := reg.New(format.RTUint32, format.ID(7))
	require.NoError(t, err)

	u, ok := n.(*leaf.Uint32)
	require.True(t, ok)
	assert.Equal(t, format.ID(7), u.ID())
	assert.Equal(t, uint32(0), u.Value())
}

func TestRegistry_Register_Overwrites(t *testing.T) {
	reg := New()
	reg.Register(format.RTUint32, func(id format.ID) leaf.Node { return leaf.NewUint32(id, 1) })
	reg.Register(format.RTUint32, func(id format.ID) leaf.Node { return leaf.NewUint32(id, 2) })

	ctor, ok := reg.Lookup(format.RTUint32)
	require.True(t, ok)
	assert.Equal(t, uint32(2), ctor(0).(*leaf.Uint32).Value())
}
