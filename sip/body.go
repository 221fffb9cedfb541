package sip

import (
	"mime"
	"strings"

	"github.com/ghettovoice/sipwire/internal/util"
)

// Field is a single "Name: Value" line that belongs to a body.
type Field struct {
	Name  string
	Value string
}

// Body is a message body payload.
type Body interface {
	// ContentType returns the body content type, parameters included.
	ContentType() string
	// Fields returns body-specific headers, e.g. Content-Disposition.
	// Content-Type is not a part of the list.
	Fields() []Field
	// Content returns the body payload.
	Content() string
}

//go:generate go tool mockgen -destination=mock_body_parser_test.go -package=sip_test . BodyParser

// BodyParser builds bodies from the message payload.
//
// Any implementations must satisfy the following contract:
//   - contentType is the value of the message Content-Type header, possibly empty;
//   - data is everything after the blank line that ends the header section;
//   - a multipart payload yields one body per part.
type BodyParser interface {
	ParseBody(contentType string, data []byte) ([]Body, error)
}

// BodyParserFunc is an adapter to allow the use of ordinary functions as [BodyParser].
type BodyParserFunc func(contentType string, data []byte) ([]Body, error)

func (fn BodyParserFunc) ParseBody(contentType string, data []byte) ([]Body, error) {
	return fn(contentType, data)
}

// BasicBody is a generic [Body] implementation.
type BasicBody struct {
	Type   string
	Header []Field
	Text   string
}

func (b *BasicBody) ContentType() string { return b.Type }

func (b *BasicBody) Fields() []Field { return b.Header }

func (b *BasicBody) Content() string { return b.Text }

// MediaType returns the lowercased media type of the content type without parameters,
// e.g. "application/isup" for "application/ISUP;version=nxv3;base=etsi121".
func MediaType(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(contentType, ";")
	return util.LCase(util.TrimSP(mt))
}
