package isup

import "github.com/ghettovoice/sipwire/internal/errorutil"

type Error = errorutil.Error

const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrInvalidDigit is returned when a digit or a nibble is outside of the 0-9 range.
	ErrInvalidDigit Error = "invalid digit"
)

func newInvalidDigitErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidDigit, args...) //errtrace:skip
}
