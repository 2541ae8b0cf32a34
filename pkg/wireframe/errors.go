package wireframe

import (
	"errors"
	"fmt"
)

// Processing errors.
var (
	ErrInvalidTopology     = errors.New("invalid mesh topology")
	ErrMalformedRecord     = errors.New("malformed processed mesh record")
	ErrMissingRecord       = errors.New("no processed mesh record attached")
	ErrMissingRenderTarget = errors.New("owner cannot hold a mesh")
	ErrResourceLeak        = errors.New("generated mesh resource still live")
)

// TopologyError reports the triangle that made a source mesh unusable.
type TopologyError struct {
	Triangle int // Triangle number, or -1 when the index list itself is malformed
	Index    int // Offending vertex index
	Reason   string
}

func (e *TopologyError) Error() string {
	if e.Triangle < 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidTopology, e.Reason)
	}
	return fmt.Sprintf("%v: triangle %d: %s (index %d)", ErrInvalidTopology, e.Triangle, e.Reason, e.Index)
}

// Unwrap lets errors.Is match ErrInvalidTopology.
func (e *TopologyError) Unwrap() error {
	return ErrInvalidTopology
}
