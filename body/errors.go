package body

import "github.com/ghettovoice/sipwire/internal/errorutil"

type Error = errorutil.Error

const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrMalformedMultipart is returned when a multipart payload can not be split into parts.
	ErrMalformedMultipart Error = "malformed multipart body"
)

func newMalformedMultipartErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedMultipart, args...) //errtrace:skip
}
