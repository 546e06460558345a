package esp

import (
	"errors"
	"fmt"
)

// ErrFormat is wrapped by every format violation. IO failures never wrap it.
var ErrFormat = errors.New("esp: format violation")

var (
	ErrUnexpectedTag    = fmt.Errorf("%w: unexpected tag", ErrFormat)
	ErrUnknownGroup     = fmt.Errorf("%w: unsupported top-level group", ErrFormat)
	ErrUnknownSubrecord = fmt.Errorf("%w: unexpected subrecord", ErrFormat)
	ErrDuplicateGroup   = fmt.Errorf("%w: duplicate top-level group", ErrFormat)
	ErrInvalidString    = fmt.Errorf("%w: invalid zstring", ErrFormat)
	ErrBudgetOverrun    = fmt.Errorf("%w: scope size mismatch", ErrFormat)
	ErrTrailingData     = fmt.Errorf("%w: trailing data", ErrFormat)
	ErrInvalidPayload   = fmt.Errorf("%w: invalid payload", ErrFormat)
	ErrLimitExceeded    = fmt.Errorf("%w: limit exceeded", ErrFormat)
)

// IsFormatError reports whether err is a format violation rather than an IO failure.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}
