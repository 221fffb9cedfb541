package header

import "github.com/ghettovoice/sipwire/internal/errorutil"

type Error = errorutil.Error

const (
	// ErrEmptyInput is returned when an address is parsed from empty or whitespace-only input.
	ErrEmptyInput = errorutil.ErrEmptyInput
)
