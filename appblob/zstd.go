package appblob

// Zstd compresses APPBLOB payloads with Zstandard. Its Compress/
// Decompress methods are implemented in zstd_cgo.go (cgo build,
// valyala/gozstd) or zstd_pure.go (pure-Go fallback,
// klauspost/compress/zstd), selected by build tag exactly as the
// teacher's compress/zstd_cgo.go / zstd_pure.go split does.
type Zstd struct{}
