package netlist

import "fmt"

const (
	ReasonUnrecognized = "unrecognized"
	ReasonUnsupported  = "unsupported"
)

// ClassificationError aborts a parse on a line the dialect cannot place.
type ClassificationError struct {
	Dialect string
	Line    string
	N       int
	Reason  string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s: %s identifier at statement %d: %q", e.Dialect, e.Reason, e.N, e.Line)
}
