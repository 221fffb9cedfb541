package sip

import (
	"fmt"

	"github.com/ghettovoice/sipwire/internal/errorutil"
)

type Error = errorutil.Error

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrEmptyInput is returned when a message is parsed from empty or whitespace-only input.
	ErrEmptyInput = errorutil.ErrEmptyInput
)

// Parsing errors.
const (
	// ErrUnrecognizedMessageType is returned when the start line is neither a request line
	// of a known method nor a status line.
	ErrUnrecognizedMessageType Error = "unrecognized message type"
	// ErrMalformedHeaderLine is returned when a header line has no colon or an invalid name.
	ErrMalformedHeaderLine Error = "malformed header line"
	// ErrMissingHeader is returned when a required header is absent.
	ErrMissingHeader Error = "missing header"
)

func newUnrecognizedMessageTypeErr(args ...any) error {
	return errorutil.NewWrapperError(ErrUnrecognizedMessageType, args...) //errtrace:skip
}

func newMalformedHeaderLineErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedHeaderLine, args...) //errtrace:skip
}

func newMissingHeaderErr(name string) error {
	return errorutil.NewWrapperError(ErrMissingHeader, "%q", name) //errtrace:skip
}

// ParseError represents an error that occurred during parsing.
//
// It contains the error that occurred, the current parsing state and the bytes that caused the error.
type ParseError struct {
	Err   error
	State ParseState
	Buf   []byte
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %v", err.State, err.Err)
}

func (err *ParseError) Unwrap() error { return err.Err }

func (*ParseError) Grammar() bool { return true }

type ParseState int

const (
	ParseStateStart   ParseState = iota // parsing message start line
	ParseStateHeaders                   // parsing message headers
	ParseStateBody                      // parsing message body
)

func (s ParseState) String() string {
	switch s {
	case ParseStateStart:
		return "start line"
	case ParseStateHeaders:
		return "headers"
	case ParseStateBody:
		return "body"
	default:
		return fmt.Sprintf("ParseState(%d)", int(s))
	}
}
