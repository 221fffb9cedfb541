package sip

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/textproto"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipwire/internal/grammar"
	"github.com/ghettovoice/sipwire/internal/log"
	"github.com/ghettovoice/sipwire/internal/util"
)

// Methods is the list of request methods known by default.
var Methods = []string{
	"INVITE", "ACK", "PRACK", "CANCEL", "BYE", "OPTIONS", "MESSAGE",
	"NOTIFY", "UPDATE", "REGISTER", "INFO", "REFER", "SUBSCRIBE", "PUBLISH",
}

// RequestFactory creates a request for the parsed request line.
// The method is given in upper case, the target is the raw request target.
type RequestFactory func(method, target string) *Message

// ResponseFactory creates a response for the parsed status line.
type ResponseFactory func(code int, reason string) *Message

// NewRequestFromLine is the default [RequestFactory].
func NewRequestFromLine(method, target string) *Message {
	return &Message{Method: method, Target: target, Headers: NewHeaders()}
}

// DefaultFactories returns a factory registry with [NewRequestFromLine] registered for each of [Methods].
func DefaultFactories() map[string]RequestFactory {
	fs := make(map[string]RequestFactory, len(Methods))
	for _, m := range Methods {
		fs[m] = NewRequestFromLine
	}
	return fs
}

var defFactories = DefaultFactories()

// Parser parses SIP messages.
//
// The zero Parser is ready to use: it knows [Methods], builds responses with [NewResponse],
// keeps the payload as a single [BasicBody] and logs to [log.Default].
type Parser struct {
	// Factories maps upper-case request methods to request factories.
	// If nil, [DefaultFactories] is used.
	Factories map[string]RequestFactory
	// NewResponse creates responses. If nil, [NewResponse] is used.
	NewResponse ResponseFactory
	// Bodies parses message payloads. If nil, the payload is kept as a single [BasicBody].
	Bodies BodyParser
	// StrictHeaderNames enables validation of header names.
	StrictHeaderNames bool
	// Log is the logger used by the parser. If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (p *Parser) factories() map[string]RequestFactory {
	if p == nil || p.Factories == nil {
		return defFactories
	}
	return p.Factories
}

func (p *Parser) newResponse(code int, reason string) *Message {
	if p == nil || p.NewResponse == nil {
		return NewResponse(code, reason)
	}
	return p.NewResponse(code, reason)
}

func (p *Parser) bodyParser() BodyParser {
	if p == nil || p.Bodies == nil {
		return BodyParserFunc(parseBasicBody)
	}
	return p.Bodies
}

func (p *Parser) log() *slog.Logger {
	if p == nil || p.Log == nil {
		return log.Default()
	}
	return p.Log
}

func parseBasicBody(contentType string, data []byte) ([]Body, error) {
	return []Body{&BasicBody{Type: contentType, Text: string(data)}}, nil
}

var defParser = &Parser{}

// Parse parses a single SIP message from b using the default parser.
// See [Parser.Parse] for details.
func Parse(b []byte) (*Message, error) { return errtrace.Wrap2(defParser.Parse(b)) }

// Parse parses a single SIP message from b.
//
// The start line selects the message factory: "SIP/2.0" followed by a three-digit status code
// makes a response, a registered method makes a request, anything else fails with
// [ErrUnrecognizedMessageType]. Header lines are read up to the first blank line,
// a repeated header overwrites the previous value. If the Content-Length header is present and
// is not "0", the rest of b is passed to the body parser together with the Content-Type value.
// Parsed bodies fill the message body slots, the first body of each media type wins.
//
// In case of error the returned error is a [*ParseError], the message is returned incomplete if
// the start line was parsed.
func (p *Parser) Parse(b []byte) (*Message, error) {
	if util.IsBlank(b) {
		return nil, errtrace.Wrap(&ParseError{ErrEmptyInput, ParseStateStart, nil})
	}

	br := bufio.NewReader(bytes.NewReader(b))
	tr := textproto.NewReader(br)

	line, err := tr.ReadLine()
	if err != nil {
		return nil, errtrace.Wrap(&ParseError{err, ParseStateStart, nil})
	}
	msg, err := p.parseStartLine(line)
	if err != nil {
		return nil, errtrace.Wrap(&ParseError{err, ParseStateStart, []byte(line)})
	}

	for {
		line, err := tr.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// no blank line, no body
				return msg, nil
			}
			return msg, errtrace.Wrap(&ParseError{err, ParseStateHeaders, nil})
		}
		if line == "" {
			break
		}
		if util.IsBlank(line) {
			continue
		}
		if err := p.parseHeader(msg.Headers, line); err != nil {
			return msg, errtrace.Wrap(&ParseError{err, ParseStateHeaders, []byte(line)})
		}
	}

	if cl, ok := msg.Headers.Text("Content-Length"); !ok || cl == "0" {
		return msg, nil
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return msg, errtrace.Wrap(&ParseError{err, ParseStateBody, nil})
	}
	ct, _ := msg.Headers.Text("Content-Type")
	bodies, err := p.bodyParser().ParseBody(ct, data)
	if err != nil {
		return msg, errtrace.Wrap(&ParseError{err, ParseStateBody, data})
	}
	for _, body := range bodies {
		if _, ok := msg.Body(body.ContentType()); ok {
			p.log().Debug("duplicate body dropped",
				slog.String("content_type", body.ContentType()),
				slog.Any("body", log.FmtValue(body, false)),
				slog.Any("message", msg),
			)
			continue
		}
		msg.bodies = append(msg.bodies, body)
	}
	return msg, nil
}

func (p *Parser) parseStartLine(line string) (*Message, error) {
	tok, rest, ok := strings.Cut(line, " ")
	if !ok || tok == "" {
		return nil, errtrace.Wrap(newUnrecognizedMessageTypeErr("%q", line))
	}

	if util.EqFold(tok, Proto) {
		if len(rest) < 3 || !grammar.IsStatusCode(rest[:3]) || (len(rest) > 3 && rest[3] != ' ') {
			return nil, errtrace.Wrap(newUnrecognizedMessageTypeErr("response code not understood: %q", rest))
		}
		code, _ := strconv.Atoi(rest[:3])
		reason := strings.TrimPrefix(rest[3:], " ")
		return p.initMessage(p.newResponse(code, reason)), nil
	}

	method := util.UCase(tok)
	factory, ok := p.factories()[method]
	if !ok {
		p.log().Debug("unknown request method", slog.String("method", tok), slog.Any("line", log.StringValue(line)))
		return nil, errtrace.Wrap(newUnrecognizedMessageTypeErr("unknown method %q", tok))
	}

	i := strings.LastIndexByte(rest, ' ')
	if i < 0 || !util.EqFold(rest[i+1:], Proto) || util.IsBlank(rest[:i]) {
		return nil, errtrace.Wrap(newUnrecognizedMessageTypeErr("malformed request line %q", line))
	}
	return p.initMessage(factory(method, util.TrimSP(rest[:i]))), nil
}

func (*Parser) initMessage(msg *Message) *Message {
	msg.headers()
	return msg
}

func (p *Parser) parseHeader(hs *Headers, line string) error {
	name, val, ok := strings.Cut(line, ":")
	if !ok {
		return errtrace.Wrap(newMalformedHeaderLineErr("%q", line))
	}
	if p != nil && p.StrictHeaderNames && !grammar.IsToken(name) {
		return errtrace.Wrap(newMalformedHeaderLineErr("invalid header name %q", name))
	}
	hs.SetText(name, strings.TrimLeft(val, " "))
	return nil
}
