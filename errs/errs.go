// Package errs defines the sentinel errors returned by structstream.
//
// Call sites wrap these with fmt.Errorf("%w: ...", errs.ErrXxx, ...) to add
// context; callers match on the sentinel with errors.Is.
package errs

import "errors"

// Format errors: the byte stream does not follow the wire grammar.
var (
	ErrInvalidVarInt             = errors.New("structstream: invalid varint encoding")
	ErrInvalidID                 = errors.New("structstream: invalid id")
	ErrMissingEndOfChildren      = errors.New("structstream: missing end-of-children marker")
	ErrUnexpectedEndOfChildren   = errors.New("structstream: unexpected end-of-children marker")
	ErrIllegalCombinationOfFlags = errors.New("structstream: illegal combination of container flags")
	ErrMalformedHash             = errors.New("structstream: malformed container digest")
)

// Unsupported-input errors: the stream is well-formed but uses a feature
// this decoder does not understand.
var (
	ErrUnsupportedRecordType     = errors.New("structstream: unsupported record type")
	ErrUnsupportedContainerFlags = errors.New("structstream: unsupported container flags")
	ErrUnsupportedHashFunction   = errors.New("structstream: unsupported hash function")
	ErrHashCheckError            = errors.New("structstream: container digest mismatch")
)

// I/O errors.
var (
	ErrEndOfStream = errors.New("structstream: end of stream")
	ErrIO          = errors.New("structstream: io error")
)

// Programmer errors: misuse of the API, not a property of any byte stream.
var (
	ErrAlreadyOpen      = errors.New("structstream: already open")
	ErrAlreadyClosed    = errors.New("structstream: already closed")
	ErrParentAlreadySet = errors.New("structstream: node already has a parent")
	ErrNotMyChild       = errors.New("structstream: node is not a child of this container")
	ErrNestMisuse       = errors.New("structstream: nest() called outside of a plain-state start_container handler")
	ErrHashAlreadyDone  = errors.New("structstream: hash already finalized")
)

// Tree errors (package tree, not part of the core wire format).
var (
	ErrInvalidIndex = errors.New("structstream: invalid tree node index")
	ErrNodeReleased = errors.New("structstream: tree node has been released")
)
