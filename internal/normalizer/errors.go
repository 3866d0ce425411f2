package normalizer

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input contains no header row.
var ErrEmptyInput = errors.New("normalizer: empty input")

// ErrNoTimestampColumn is returned when no call time column can be located
// in the header.
var ErrNoTimestampColumn = errors.New("normalizer: no call time column found")

// BatchUnparseableError is returned when the call time column could not be
// parsed by any strategy for any row. Per-row parse failures are absorbed
// into the dropped count; this error only fires when every row failed.
type BatchUnparseableError struct {
	Rows   int    // rows that failed to parse
	Sample string // one of the offending values, for diagnostics
}

func (e *BatchUnparseableError) Error() string {
	return fmt.Sprintf("normalizer: call time column unparseable for all %d rows (sample value %q)", e.Rows, e.Sample)
}
