// Package header implements the textual codec of SIP address header values
// (To, From, Contact and alike).
//
// # Parsing
//
// [ParseAddress] accepts both the bracketed and the bare forms of an address:
//
//	addr, err := header.ParseAddress(`"john doe" <sip:11992971271@10.0.5.25:5060;user=phone>;tag=7831-C733`)
//	addr.DisplayName()    // `"john doe"`
//	addr.Scheme()         // "sip"
//	addr.HostPort()       // "11992971271@10.0.5.25:5060"
//	addr.Params()         // user=phone
//	addr.TrailingParams() // tag=7831-C733
//
// The display name is kept verbatim, including quotes. Parameters that do not
// have the key=value form are dropped without an error.
//
// # Scheme and port
//
// The text before the first colon of the address is a scheme unless the text after
// that colon is an integer, in which case the colon separates host and port.
// The rule is applied by [NewAddress], so it holds for addresses built in code too.
//
// # Rendering
//
// [Address.Render] with nil options returns the bracketed form, [RenderOptions.AddrSpec]
// switches to the form without angle brackets. Addresses without a scheme are rendered
// with [DefaultScheme].
//
// # Equality
//
// [Address.Equal] compares rendered forms. When compared with a string, the form is chosen
// by the presence of angle brackets in that string. [Address.Hash] always hashes the
// bracketed form.
package header
