package sip

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipwire/header"
	"github.com/ghettovoice/sipwire/internal/errorutil"
	"github.com/ghettovoice/sipwire/internal/ioutil"
	"github.com/ghettovoice/sipwire/internal/util"
)

// Proto is the protocol token of request and status lines.
const Proto = "SIP/2.0"

// DefaultBoundary is the multipart boundary used when [RenderOptions.Boundary] is empty.
const DefaultBoundary = "unique-boundary-1"

// RenderOptions controls message rendering.
type RenderOptions struct {
	// Boundary is the multipart boundary token.
	// If empty, [DefaultBoundary] is used.
	Boundary string `json:"boundary,omitempty"`
}

func (o *RenderOptions) boundary() string {
	if o == nil || o.Boundary == "" {
		return DefaultBoundary
	}
	return o.Boundary
}

var addrSpecOpts = &header.RenderOptions{AddrSpec: true}

// Message is a SIP request or response.
//
// Requests have a non-empty Method, responses have a non-zero StatusCode.
// The zero Message is not valid, use [NewRequest], [NewResponse] or [Parse] to build one.
type Message struct {
	// Method is the request method.
	Method string
	// Target is the raw request target of a parsed request line.
	Target string
	// StatusCode is the response status code.
	StatusCode int
	// Reason is the response reason phrase.
	Reason string
	// Headers is the ordered header collection.
	Headers *Headers

	bodies []Body

	targetMu   sync.Mutex
	targetRaw  string
	targetAddr header.Address
}

// NewRequest creates a new request with the given method and To address.
// The request starts with the Allow header listing [Methods], followed by To.
func NewRequest(method string, to header.Address) *Message {
	msg := &Message{Method: method, Headers: NewHeaders()}
	msg.Headers.
		SetText("Allow", strings.Join(Methods, ", ")).
		SetAddress("To", to)
	return msg
}

// NewResponse creates a new response with the given status code and reason phrase.
func NewResponse(code int, reason string) *Message {
	return &Message{StatusCode: code, Reason: reason, Headers: NewHeaders()}
}

// IsResponse reports whether the message is a response.
func (msg *Message) IsResponse() bool { return msg.Method == "" && msg.StatusCode != 0 }

func (msg *Message) headers() *Headers {
	if msg.Headers == nil {
		msg.Headers = NewHeaders()
	}
	return msg.Headers
}

// To returns the To header address.
// The header is resolved on first access, see [Headers.Address].
// A parsed request without the To header falls back to the request target,
// the parsed target is kept until Target changes.
func (msg *Message) To() (header.Address, error) {
	if !msg.Headers.Has("To") && msg.Target != "" {
		return errtrace.Wrap2(msg.targetAddress())
	}
	return errtrace.Wrap2(msg.Headers.Address("To"))
}

func (msg *Message) targetAddress() (header.Address, error) {
	msg.targetMu.Lock()
	defer msg.targetMu.Unlock()
	if msg.targetRaw != "" && msg.targetRaw == msg.Target {
		return msg.targetAddr, nil
	}
	addr, err := header.ParseAddress(msg.Target)
	if err != nil {
		return header.Address{}, errtrace.Wrap(err)
	}
	msg.targetRaw, msg.targetAddr = msg.Target, addr
	return addr, nil
}

// From returns the From header address.
// The header is resolved on first access, see [Headers.Address].
func (msg *Message) From() (header.Address, error) {
	return errtrace.Wrap2(msg.Headers.Address("From"))
}

// Contact returns the Contact header address.
// The header is resolved on first access, see [Headers.Address].
func (msg *Message) Contact() (header.Address, error) {
	return errtrace.Wrap2(msg.Headers.Address("Contact"))
}

// Bodies returns the message bodies in rendering order.
func (msg *Message) Bodies() []Body { return slices.Clone(msg.bodies) }

// Body returns the body with the given media type, see [MediaType].
func (msg *Message) Body(mediaType string) (Body, bool) {
	i := msg.bodyIndex(mediaType)
	if i < 0 {
		return nil, false
	}
	return msg.bodies[i], true
}

// SetBody sets the body into the slot of its media type.
// A body of the same media type is replaced, otherwise the body is appended.
func (msg *Message) SetBody(b Body) {
	if i := msg.bodyIndex(b.ContentType()); i >= 0 {
		msg.bodies[i] = b
		return
	}
	msg.bodies = append(msg.bodies, b)
}

// RemoveBody removes the body with the given media type.
func (msg *Message) RemoveBody(mediaType string) {
	if i := msg.bodyIndex(mediaType); i >= 0 {
		msg.bodies = slices.Delete(msg.bodies, i, i+1)
	}
}

func (msg *Message) bodyIndex(contentType string) int {
	mt := MediaType(contentType)
	return slices.IndexFunc(msg.bodies, func(b Body) bool { return MediaType(b.ContentType()) == mt })
}

// RenderTo writes the message to the provided writer.
//
// Rendering updates the Content-Type and Content-Length headers when the message has bodies.
// A single body sets Content-Type to its own type, several bodies are rendered as
// multipart/mixed with the boundary from opts. Each line ends with CRLF.
func (msg *Message) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	start, err := msg.startLine()
	if err != nil {
		return 0, errtrace.Wrap(err)
	}

	body, err := msg.renderBody(opts.boundary())
	if err != nil {
		return 0, errtrace.Wrap(err)
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Line(start)
	for name, val := range msg.headers().All() {
		cw.Line(name, ": ", val)
	}
	if len(body) > 0 {
		cw.Write(body) //nolint:errcheck
	} else {
		cw.Line()
	}
	return errtrace.Wrap2(cw.Result())
}

func (msg *Message) startLine() (string, error) {
	if msg.IsResponse() {
		return fmt.Sprint(Proto, " ", msg.StatusCode, " ", msg.Reason), nil
	}
	if msg.Method == "" {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("message has neither method nor status code"))
	}

	to, err := msg.To()
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return msg.Method + " " + to.Render(addrSpecOpts) + " " + Proto, nil
}

// renderBody assembles the body section and updates the body-related headers.
// The section starts with the blank line that ends the header section,
// Content-Length does not count it.
func (msg *Message) renderBody(boundary string) ([]byte, error) {
	if len(msg.bodies) == 0 {
		return nil, nil
	}

	multi := len(msg.bodies) > 1
	if multi {
		msg.headers().SetText("Content-Type", "multipart/mixed;boundary="+boundary)
	} else {
		msg.headers().SetText("Content-Type", msg.bodies[0].ContentType())
	}

	var buf bytes.Buffer
	cw := ioutil.NewCountingWriter(&buf)
	if multi {
		cw.Line().Line("--", boundary)
	}
	for _, b := range msg.bodies {
		if multi {
			cw.Line("Content-Type: ", b.ContentType())
		}
		for _, f := range b.Fields() {
			cw.Line(f.Name, ": ", f.Value)
		}
		cw.Line().Line(b.Content())
		if multi {
			cw.Line("--", boundary)
		}
	}
	if err := cw.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	buf.Truncate(buf.Len() - len(ioutil.CRLF))
	if multi {
		buf.WriteString("--" + ioutil.CRLF)
	}

	msg.headers().SetText("Content-Length", strconv.Itoa(buf.Len()-len(ioutil.CRLF)))
	return buf.Bytes(), nil
}

// Render renders the message to a string.
func (msg *Message) Render(opts *RenderOptions) (string, error) {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := msg.RenderTo(sb, opts); err != nil {
		return "", errtrace.Wrap(err)
	}
	return sb.String(), nil
}

// Serialize renders the message to bytes.
func (msg *Message) Serialize(opts *RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := msg.RenderTo(&buf, opts); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return buf.Bytes(), nil
}

// LogValue implements [slog.LogValuer] for structured logging.
// Header values are logged as stored, without resolving them.
func (msg *Message) LogValue() slog.Value {
	if msg == nil {
		return slog.Value{}
	}

	attrs := make([]slog.Attr, 0, 6)
	if msg.IsResponse() {
		attrs = append(attrs, slog.Int("status", msg.StatusCode), slog.String("reason", msg.Reason))
	} else {
		attrs = append(attrs, slog.String("method", msg.Method))
	}
	for _, name := range []string{"To", "From", "Call-ID"} {
		if v, ok := msg.Headers.Text(name); ok {
			attrs = append(attrs, slog.String(name, v))
		}
	}
	attrs = append(attrs, slog.Int("bodies", len(msg.bodies)))
	return slog.GroupValue(attrs...)
}
