package body

import (
	"braces.dev/errtrace"
	"github.com/pion/sdp/v3"

	"github.com/ghettovoice/sipwire/internal/errorutil"
	"github.com/ghettovoice/sipwire/sip"
)

// SDPType is the content type of session descriptions.
const SDPType = "application/sdp"

// SDP is a session description body.
// The payload is kept as received and parsed on demand by [SDP.Session].
type SDP struct {
	Header []sip.Field
	Data   []byte
}

// NewSDP creates a body from the session description.
func NewSDP(sd *sdp.SessionDescription) (*SDP, error) {
	if sd == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil session description"))
	}
	data, err := sd.Marshal()
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return &SDP{Data: data}, nil
}

// DecodeSDP is the [Decoder] of [SDPType] payloads.
// It does not validate the payload, see [SDP.Session].
func DecodeSDP(_ string, fields []sip.Field, data []byte) (sip.Body, error) {
	return &SDP{Header: fields, Data: data}, nil
}

func (*SDP) ContentType() string { return SDPType }

func (b *SDP) Fields() []sip.Field { return b.Header }

func (b *SDP) Content() string { return string(b.Data) }

// Session parses the payload.
func (b *SDP) Session() (*sdp.SessionDescription, error) {
	var sd sdp.SessionDescription
	if err := sd.Unmarshal(b.Data); err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return &sd, nil
}
