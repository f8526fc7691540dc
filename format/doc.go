// Package format defines the wire-level constants of the structstream
// binary record format: record type tags, container flag bits, and hash
// function tags. It carries no behavior beyond String() helpers — the
// engines that interpret these constants live in varint, leaf, registry,
// hashfn, and streaming.
package format
