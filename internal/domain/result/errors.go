package result

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// ErrInvalidResult matches every InvalidResultError through errors.Is.
var ErrInvalidResult = crerr.New("invalid result")

// InvalidResultError reports a malformed result rejected before storage.
type InvalidResultError struct {
	Reason string
}

func (e *InvalidResultError) Error() string {
	return "invalid result: " + e.Reason
}

func (e *InvalidResultError) Is(target error) bool {
	return target == ErrInvalidResult
}

func newInvalidResult(format string, args ...any) error {
	return crerr.WithStack(&InvalidResultError{Reason: fmt.Sprintf(format, args...)})
}
