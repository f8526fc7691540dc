package appblob

import "github.com/klauspost/compress/s2"

// S2 compresses APPBLOB payloads with S2, grounded on compress/s2.go.
type S2 struct{}

func (S2) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (S2) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
