package body

import (
	"mime"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipwire/internal/util"
	"github.com/ghettovoice/sipwire/isup"
	"github.com/ghettovoice/sipwire/sip"
)

// ISUPType is the media type of encapsulated ISUP messages (RFC 3204).
const ISUPType = "application/ISUP"

// DefaultISUPDisposition is the Content-Disposition of ISUP bodies built by [NewISUP].
const DefaultISUPDisposition = "signal;handling=optional"

// ISUP is an encapsulated ISUP message body.
type ISUP struct {
	// Version is the "version" parameter of the content type, e.g. "nxv3".
	Version string
	// Base is the "base" parameter of the content type, e.g. "etsi121".
	Base string
	// Disposition is the Content-Disposition field value, omitted if empty.
	Disposition string
	// Data is the binary ISUP message.
	Data []byte
}

// NewISUP creates an ISUP body with [DefaultISUPDisposition].
func NewISUP(version, base string, data []byte) *ISUP {
	return &ISUP{Version: version, Base: base, Disposition: DefaultISUPDisposition, Data: data}
}

// DecodeISUP is the [Decoder] of [ISUPType] payloads.
func DecodeISUP(contentType string, fields []sip.Field, data []byte) (sip.Body, error) {
	b := &ISUP{Data: data}
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		b.Version = params["version"]
		b.Base = params["base"]
	}
	b.Disposition, _ = Field(fields, "Content-Disposition")
	return b, nil
}

func (b *ISUP) ContentType() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(ISUPType)
	if b.Version != "" {
		sb.WriteString(";version=" + b.Version)
	}
	if b.Base != "" {
		sb.WriteString(";base=" + b.Base)
	}
	return sb.String()
}

func (b *ISUP) Fields() []sip.Field {
	if b.Disposition == "" {
		return nil
	}
	return []sip.Field{{Name: "Content-Disposition", Value: b.Disposition}}
}

func (b *ISUP) Content() string { return string(b.Data) }

// Digits decodes semi-octet digits of the message starting at offset.
// See [isup.DecodeDigits].
func (b *ISUP) Digits(offset int, odd bool) (string, error) {
	return errtrace.Wrap2(isup.DecodeDigits(b.Data, offset, odd))
}
