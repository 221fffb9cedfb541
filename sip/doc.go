// Package sip implements framing of SIP messages: the start line, the ordered header
// collection and single or multipart bodies.
//
// Messages are parsed with [Parse] or a configured [Parser] and rendered with
// [Message.RenderTo] or [Message.Serialize]:
//
//	msg, err := sip.Parse(data)
//	if err != nil {
//		var perr *sip.ParseError
//		if errors.As(err, &perr) {
//			// perr.State tells where parsing stopped
//		}
//		return err
//	}
//	to, err := msg.To()
//
// Header values are kept as received until an address header is read through
// [Message.To], [Message.From], [Message.Contact] or [Headers.Address]; the parsed
// address then replaces the raw text in the header slot.
//
// Body payloads are opaque to this package. A [BodyParser] injected into the [Parser]
// turns the payload into typed [Body] values, see the body package for the default one.
package sip
