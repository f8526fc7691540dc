package appblob

import (
	"fmt"

	"github.com/dstream-go/structstream/format"
	"github.com/dstream-go/structstream/leaf"
	"github.com/dstream-go/structstream/registry"
)

// NewConstructor returns a registry.Constructor that builds leaf.AppBlob
// records for tag, compressed/decompressed with the Codec for alg. tag
// must lie in format.RTAppBlobMin..RTAppBlobMax.
func NewConstructor(tag format.RecordType, alg Algorithm) (registry.Constructor, error) {
	if !tag.IsAppBlob() {
		return nil, fmt.Errorf("appblob: tag %s is outside the APPBLOB range", tag)
	}

	codec, err := Get(alg)
	if err != nil {
		return nil, err
	}

	return func(id format.ID) leaf.Node {
		return leaf.NewAppBlob(tag, id, codec, nil)
	}, nil
}

// RegisterDefaults wires one APPBLOB tag per built-in algorithm into reg:
// RTAppBlobMin+0 -> S2, +1 -> LZ4, +2 -> Zstd. This mirrors the teacher's
// multi-backend compressor selection (compress/codec.go's CreateCodec)
// applied to the registry's extensibility point instead of mebo's
// payload-level compression setting.
func RegisterDefaults(reg *registry.Registry) error {
	assignments := []struct {
		tag format.RecordType
		alg Algorithm
	}{
		{format.RTAppBlobMin, AlgorithmS2},
		{format.RTAppBlobMin + 1, AlgorithmLZ4},
		{format.RTAppBlobMin + 2, AlgorithmZstd},
	}

	for _, a := range assignments {
		ctor, err := NewConstructor(a.tag, a.alg)
		if err != nil {
			return err
		}

		reg.Register(a.tag, ctor)
	}

	return nil
}
