package surface

import (
	"fmt"
	"strings"
)

// DecodeError reports a history entry or snapshot that could not be turned
// back into pixels. The surface is left untouched when it is returned.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode snapshot: %s: %v", e.Reason, e.Err)
	}
	return "decode snapshot: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidGeometryError reports non-finite coordinates or widths. Nothing is
// drawn when it is returned.
type InvalidGeometryError struct {
	Op     string
	Values []float64
}

func (e *InvalidGeometryError) Error() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s: invalid geometry (%s)", e.Op, strings.Join(parts, ", "))
}
