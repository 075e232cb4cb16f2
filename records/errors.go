package records

import (
	"errors"
	"fmt"
)

// Kinds of record files
const (
	KindCandidate = "candidate"
	KindElector   = "elector"
)

// ErrFormat matches every *FormatError with errors.Is
var ErrFormat = errors.New("record form in text file is not correct")

// FormatError reports the first line of a batch that broke its grammar
type FormatError struct {
	Kind   string
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s form in text file is not correct, line %d %q: %s", e.Kind, e.Line, e.Text, e.Reason)
}

// Is makes errors.Is(err, ErrFormat) hold for format errors
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
