package markers

import (
	"fmt"
)

// InvalidMarkerError reports a marker that was skipped during classification.
type InvalidMarkerError struct {
	Index int
	Err   error
}

func (e *InvalidMarkerError) Error() string {
	return fmt.Sprintf("marker %d: %v", e.Index, e.Err)
}

func (e *InvalidMarkerError) Unwrap() error {
	return e.Err
}
