// Package body provides typed message bodies and a [Registry] that turns message payloads into them.
//
// The registry implements [sip.BodyParser] and is meant to be injected into [sip.Parser]:
//
//	p := &sip.Parser{Bodies: body.NewRegistry()}
//	msg, err := p.Parse(data)
//	if b, ok := msg.Body(body.SDPType); ok {
//		sd, err := b.(*body.SDP).Session()
//		// ...
//	}
//
// Multipart payloads are split into parts, each part is decoded by the decoder registered
// for its media type. Parts of unknown types are kept as [sip.BasicBody].
package body
