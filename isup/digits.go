// Package isup implements the digit encoding of ISUP number parameters
// (Called Party Number, Calling Party Number and alike).
//
// Digits are packed two per byte in nibble-swapped BCD: the first digit of a pair
// goes to the low nibble, the second one to the high nibble. An odd number of digits
// leaves the high nibble of the last byte filled with [Filler]. The encoding does not
// carry its own parity, the odd/even indicator travels out of band and must be passed
// to [DecodeDigits].
package isup

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipwire/internal/errorutil"
	"github.com/ghettovoice/sipwire/internal/grammar"
)

// Filler is the value of the unused high nibble of the last byte of an odd-length number.
const Filler byte = 0x0

// Digits is a string of decimal digits.
type Digits string

// Odd reports whether the number of digits is odd.
func (d Digits) Odd() bool { return IsOdd(string(d)) }

// Encode packs the digits, see [EncodeDigits].
func (d Digits) Encode() ([]byte, error) { return errtrace.Wrap2(EncodeDigits(string(d))) }

// IsValid checks whether d is a non-empty sequence of decimal digits.
func (d Digits) IsValid() bool { return grammar.IsDigits(d) }

// IsOdd reports whether the number of digits is odd.
// This is the value of the ISUP odd/even indicator.
func IsOdd(digits string) bool { return len(digits)%2 == 1 }

// EncodeDigits packs the decimal digits into nibble-swapped BCD.
//
// Example:
//
//	EncodeDigits("1549")  // 0x51 0x94
//	EncodeDigits("15499") // 0x51 0x94 0x09
func EncodeDigits(digits string) ([]byte, error) {
	return errtrace.Wrap2(AppendDigits(make([]byte, 0, (len(digits)+1)/2), digits))
}

// AppendDigits appends the packed digits to buf and returns the extended buffer.
// On error buf is returned unchanged.
func AppendDigits(buf []byte, digits string) ([]byte, error) {
	if len(digits) > 0 && !grammar.IsDigits(digits) {
		i := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' })
		return buf, errtrace.Wrap(newInvalidDigitErr("%q at position %d", digits[i], i))
	}

	for i := 0; i < len(digits); i += 2 {
		lo, hi := digits[i]-'0', Filler
		if i+1 < len(digits) {
			hi = digits[i+1] - '0'
		}
		buf = append(buf, hi<<4|lo)
	}
	return buf, nil
}

// DecodeDigits unpacks nibble-swapped BCD digits from b starting at offset.
// If odd is true, the high nibble of the last byte is a filler and is dropped.
//
// Example:
//
//	DecodeDigits([]byte{0x51, 0x94}, 0, false)       // "1549"
//	DecodeDigits([]byte{0x51, 0x94, 0x09}, 0, true)  // "15499"
func DecodeDigits(b []byte, offset int, odd bool) (string, error) {
	if offset < 0 || offset > len(b) {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("offset %d is out of range [0, %d]", offset, len(b)))
	}

	b = b[offset:]
	out := make([]byte, 0, 2*len(b))
	for i, v := range b {
		lo, hi := v&0x0f, v>>4
		if lo > 9 {
			return "", errtrace.Wrap(newInvalidDigitErr("nibble 0x%x at byte %d", lo, offset+i))
		}
		out = append(out, '0'+lo)
		if odd && i == len(b)-1 {
			break
		}
		if hi > 9 {
			return "", errtrace.Wrap(newInvalidDigitErr("nibble 0x%x at byte %d", hi, offset+i))
		}
		out = append(out, '0'+hi)
	}
	return string(out), nil
}
