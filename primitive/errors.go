package primitive

import "errors"

var (
	// ErrPrimitiveRestart is returned by operations that cannot work on index
	// data split into runs by a restart index.
	ErrPrimitiveRestart = errors.New("primitive: not supported with primitive restart enabled")

	// ErrUnsupportedTopology is returned when an operation is not defined
	// for the set's topology.
	ErrUnsupportedTopology = errors.New("primitive: unsupported topology")

	// ErrIndexOutOfRange is returned by DrawRangeElements.Validate when an
	// index falls outside the declared vertex range.
	ErrIndexOutOfRange = errors.New("primitive: index outside declared range")
)
