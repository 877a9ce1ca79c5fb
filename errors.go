package topology

import (
	"fmt"

	"github.com/paulmach/orb"
)

// TopologyError signals that noding or ring assembly could not produce a
// consistent topology, usually due to floating-point robustness limits. It is
// the recoverable failure kind: the buffer precision ladder and the
// common-bits retry catch it and try again on a coarser grid. Invalid
// arguments are not TopologyErrors; those panic.
type TopologyError struct {
	Msg   string
	Coord orb.Point
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("%s at [%g %g]", e.Msg, e.Coord[0], e.Coord[1])
}

func topologyErr(msg string, pt orb.Point) *TopologyError {
	return &TopologyError{Msg: msg, Coord: pt}
}
