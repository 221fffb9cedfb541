package header

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/cespare/xxhash/v2"

	"github.com/ghettovoice/sipwire/internal/constraints"
	"github.com/ghettovoice/sipwire/internal/ioutil"
	"github.com/ghettovoice/sipwire/internal/util"
)

// DefaultScheme is rendered when an address has no explicit scheme.
const DefaultScheme = "sip"

// RenderOptions controls the textual form of an [Address].
type RenderOptions struct {
	// AddrSpec renders the address without angle brackets.
	// By default, the bracketed name-addr form is rendered.
	AddrSpec bool `json:"addr_spec,omitempty"`
}

func (o *RenderOptions) brackets() bool { return o == nil || !o.AddrSpec }

var addrSpecOpts = &RenderOptions{AddrSpec: true}

// Address represents the value of the To, From and Contact headers:
// an optional display name, an optional scheme, the host/port part and two lists of parameters.
// Parameters are bound to the bracketed address, trailing parameters follow the closing bracket
// and belong to the whole header value (e.g. the dialog tag).
//
// Address is immutable, use [NewAddress] or [ParseAddress] to build it.
type Address struct {
	name     string
	scheme   string
	hostPort string
	params   Params
	trailing Params
}

// NewAddress builds an address from its parts.
//
// If addr contains a colon, the text after the first colon is inspected:
// when it is a 32-bit integer, the colon separates host and port and addr is kept as is,
// otherwise the text before the colon is taken as the scheme and stripped from addr.
//
// Display name is stored verbatim, surrounding quotes are part of it.
func NewAddress(addr, name string, params, trailing Params) Address {
	a := Address{
		name:     name,
		hostPort: addr,
		params:   params.Clone(),
		trailing: trailing.Clone(),
	}
	if i := strings.IndexByte(addr, ':'); i >= 0 {
		if _, err := strconv.ParseInt(addr[i+1:], 10, 32); err != nil {
			a.scheme = addr[:i]
			a.hostPort = addr[i+1:]
		}
	}
	return a
}

// ParseAddress parses an address from the given input s (string or []byte).
//
// Returns [ErrEmptyInput] if s is empty or consists of white space only.
// Malformed parameters are silently dropped, so parsing never fails on non-empty input.
//
// An unquoted display name ends at the first space, so a bare address followed by white space,
// e.g. "sip:a@b ", is taken as a display name with an empty address.
func ParseAddress[T constraints.Byteseq](s T) (Address, error) {
	if util.IsBlank(s) {
		return Address{}, errtrace.Wrap(ErrEmptyInput)
	}

	str := strings.TrimLeft(string(s), " \t\r\n")

	var name string
	if str[0] == '"' {
		if i := strings.IndexByte(str[1:], '"'); i >= 0 {
			name, str = str[:i+2], str[i+2:]
		}
	} else if i := strings.IndexByte(str, ' '); i > 0 && !strings.ContainsAny(str[:i], "<;") {
		name, str = str[:i], str[i+1:]
	}
	str = strings.TrimLeft(str, " \t")

	var trailing Params
	if lt := strings.IndexByte(str, '<'); lt >= 0 {
		if gt := strings.IndexByte(str[lt:], '>'); gt >= 0 {
			gt += lt
			trailing = parseParams(str[gt+1:])
			str = str[lt+1 : gt]
		}
	}

	var params Params
	if i := strings.IndexByte(str, ';'); i >= 0 {
		params = parseParams(str[i+1:])
		str = str[:i]
	}

	return NewAddress(util.TrimSP(str), name, params, trailing), nil
}

// DisplayName returns the display name as it was given, including quotes.
func (a Address) DisplayName() string { return a.name }

// Scheme returns the address scheme or empty string if the address has no scheme.
func (a Address) Scheme() string { return a.scheme }

// HostPort returns the address without the scheme prefix.
func (a Address) HostPort() string { return a.hostPort }

// Params returns a copy of the address parameters.
func (a Address) Params() Params { return a.params.Clone() }

// TrailingParams returns a copy of the parameters following the closing bracket.
func (a Address) TrailingParams() Params { return a.trailing.Clone() }

// Tag returns the value of the "tag" parameter.
// The trailing parameters are looked up first.
func (a Address) Tag() (string, bool) {
	if v, ok := a.trailing.Get("tag"); ok {
		return v, true
	}
	return a.params.Get("tag")
}

// IsZero checks whether the address is empty.
func (a Address) IsZero() bool {
	return a.name == "" && a.scheme == "" && a.hostPort == "" && len(a.params) == 0 && len(a.trailing) == 0
}

// RenderTo writes the address to the provided writer.
func (a Address) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if !util.IsBlank(a.name) {
		cw.Fprint(a.name, " ")
	}
	if opts.brackets() {
		cw.Fprint("<")
	}
	scheme := a.scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	cw.Fprint(scheme, ":", a.hostPort)
	if len(a.params) > 0 {
		cw.Fprint(";").Call(a.params.renderTo)
	}
	if opts.brackets() {
		cw.Fprint(">")
	}
	if len(a.trailing) > 0 {
		cw.Fprint(";").Call(a.trailing.renderTo)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the textual form of the address.
// Nil options render the bracketed form.
func (a Address) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	a.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the bracketed form of the address.
func (a Address) String() string { return a.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the address.
// The "+" flag selects the addr-spec form for the 's' and 'q' verbs.
func (a Address) Format(f fmt.State, verb rune) {
	var opts *RenderOptions
	if f.Flag('+') {
		opts = addrSpecOpts
	}
	switch verb {
	case 's':
		fmt.Fprint(f, a.Render(opts))
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.Render(opts)))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, a.String())
			return
		}

		type hideMethods Address
		type Address hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Address(a))
		return
	}
}

// Equal compares the address with another value.
//
// Two addresses are equal if their bracketed forms are equal.
// A string is compared with the bracketed form if it contains "<" or ">",
// otherwise with the addr-spec form.
// Any other value is never equal.
//
// Note that two addresses equal to the same addr-spec string are not guaranteed
// to have equal [Address.Hash] values.
func (a Address) Equal(val any) bool {
	switch v := val.(type) {
	case Address:
		return a.String() == v.String()
	case *Address:
		return v != nil && a.String() == v.String()
	case string:
		var opts *RenderOptions
		if !strings.ContainsAny(v, "<>") {
			opts = addrSpecOpts
		}
		return a.Render(opts) == v
	default:
		return false
	}
}

// Hash returns a hash of the bracketed form of the address.
func (a Address) Hash() uint64 { return xxhash.Sum64String(a.String()) }

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(data []byte) error {
	addr, err := ParseAddress(data)
	if err != nil {
		*a = Address{}
		return errtrace.Wrap(err)
	}
	*a = addr
	return nil
}

// LogValue implements [slog.LogValuer].
func (a Address) LogValue() slog.Value {
	return slog.StringValue(a.String())
}
