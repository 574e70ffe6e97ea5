package parattice

import "errors"

// Sentinel errors for the failure surfaces described by the engine: a
// malformed paraphrase dictionary, a malformed serialized lattice, and an
// invalid path given to a trunk-projection call. Use errors.Is to check
// a returned error against these.
var (
	ErrEmptyGroup  = errors.New("paraphrase group has no phrases")
	ErrEmptyPhrase = errors.New("phrase has no tokens")

	ErrTruncatedData      = errors.New("serialized lattice data is truncated")
	ErrInconsistentCounts = errors.New("serialized lattice has inconsistent edge counts")
	ErrInvalidUTF8        = errors.New("serialized lattice contains invalid UTF-8")
	ErrNodeOutOfRange     = errors.New("serialized lattice references a node ID out of range")

	ErrEmptyPath = errors.New("path has no edges")
)
