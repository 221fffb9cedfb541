// Package grammar contains the ABNF rules used to validate lexical elements
// of the SIP wire format and of ISUP digit strings.
package grammar

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/sipwire/internal/constraints"
)

func char(c byte) abnf.Operator { return abnf.Range(string(c), []byte{c}, []byte{c}) }

// RFC 3261 Section 25.1.
var (
	digit = abnf.Range("DIGIT", []byte("0"), []byte("9"))
	alpha = abnf.AltFirst(
		"ALPHA",
		abnf.Range("%x41-5A", []byte("A"), []byte("Z")),
		abnf.Range("%x61-7A", []byte("a"), []byte("z")),
	)
	tokenChar = abnf.AltFirst(
		"token-char",
		alpha, digit,
		char('-'), char('.'), char('!'), char('%'), char('*'),
		char('_'), char('+'), char('`'), char('\''), char('~'),
	)
	token      = abnf.Concat("token", tokenChar, abnf.Repeat0Inf("token-tail", tokenChar))
	statusCode = abnf.Concat("Status-Code", digit, digit, digit)
	digits     = abnf.Concat("digits", digit, abnf.Repeat0Inf("digits-tail", digit))
)

func match[T constraints.Byteseq](op abnf.Operator, s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsToken reports whether s is an RFC 3261 token, e.g. a header name or a request method.
func IsToken[T constraints.Byteseq](s T) bool { return match(token, s) }

// IsStatusCode reports whether s is exactly three decimal digits.
func IsStatusCode[T constraints.Byteseq](s T) bool { return match(statusCode, s) }

// IsDigits reports whether s is a non-empty sequence of decimal digits.
func IsDigits[T constraints.Byteseq](s T) bool { return match(digits, s) }
