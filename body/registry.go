package body

import (
	"bytes"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipwire/internal/log"
	"github.com/ghettovoice/sipwire/internal/syncutil"
	"github.com/ghettovoice/sipwire/internal/util"
	"github.com/ghettovoice/sipwire/sip"
)

// Decoder builds a body from a single payload.
// contentType is the full content type of the payload, fields are the part headers
// other than Content-Type, if the payload is a multipart part.
type Decoder func(contentType string, fields []sip.Field, data []byte) (sip.Body, error)

// Registry maps media types to body decoders.
// It implements [sip.BodyParser] and is safe for concurrent use.
type Registry struct {
	// Log is the logger used by the registry. If nil, the [log.Default] is used.
	Log *slog.Logger

	decs syncutil.RWMap[string, Decoder]
}

// NewRegistry creates a registry with decoders for [SDPType] and [ISUPType].
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(SDPType, DecodeSDP)
	r.Register(ISUPType, DecodeISUP)
	return r
}

func (r *Registry) log() *slog.Logger {
	if r.Log == nil {
		return log.Default()
	}
	return r.Log
}

// Register sets the decoder for the media type. A nil decoder removes the registration.
func (r *Registry) Register(mediaType string, dec Decoder) *Registry {
	mt := sip.MediaType(mediaType)
	if dec == nil {
		r.decs.Del(mt)
	} else {
		r.decs.Set(mt, dec)
	}
	return r
}

// Decoder returns the decoder registered for the media type of the content type.
func (r *Registry) Decoder(contentType string) (Decoder, bool) {
	return r.decs.Get(sip.MediaType(contentType))
}

// MediaTypes returns the sorted list of registered media types.
func (r *Registry) MediaTypes() []string { return slices.Sorted(r.decs.Keys()) }

// ParseBody implements [sip.BodyParser].
//
// A multipart/* payload yields one body per part in the order of appearance,
// any other payload yields a single body.
func (r *Registry) ParseBody(contentType string, data []byte) ([]sip.Body, error) {
	if !strings.HasPrefix(sip.MediaType(contentType), "multipart/") {
		b, err := r.decode(contentType, nil, data)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []sip.Body{b}, nil
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, errtrace.Wrap(newMalformedMultipartErr(err))
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, errtrace.Wrap(newMalformedMultipartErr("missing boundary in %q", contentType))
	}

	var bodies []sip.Body
	mr := multipart.NewReader(bytes.NewReader(data), boundary)
	for {
		part, err := mr.NextRawPart()
		if err == io.EOF { //nolint:errorlint
			// a wrapped io.EOF means no closing delimiter
			break
		}
		if err != nil {
			return nil, errtrace.Wrap(newMalformedMultipartErr(err))
		}

		content, err := io.ReadAll(part)
		part.Close() //nolint:errcheck
		if err != nil {
			return nil, errtrace.Wrap(newMalformedMultipartErr(err))
		}

		ct := part.Header.Get("Content-Type")
		fields := make([]sip.Field, 0, len(part.Header))
		for name, vals := range part.Header {
			if name == "Content-Type" {
				continue
			}
			for _, v := range vals {
				fields = append(fields, sip.Field{Name: name, Value: v})
			}
		}
		slices.SortStableFunc(fields, func(a, b sip.Field) int { return strings.Compare(a.Name, b.Name) })

		b, err := r.decode(ct, fields, content)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func (r *Registry) decode(contentType string, fields []sip.Field, data []byte) (sip.Body, error) {
	dec, ok := r.Decoder(contentType)
	if !ok {
		r.log().Debug("no body decoder, keep raw body",
			slog.String("content_type", contentType),
			slog.Int("size", len(data)),
			slog.Any("data", log.StringValue(data)),
		)
		return &sip.BasicBody{Type: contentType, Header: fields, Text: string(data)}, nil
	}
	return errtrace.Wrap2(dec(contentType, fields, data))
}

// Field returns the value of the first field with the given name, names are compared case-insensitively.
func Field(fields []sip.Field, name string) (string, bool) {
	for _, f := range fields {
		if util.EqFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}
