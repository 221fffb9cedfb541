package body_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipwire/body"
	"github.com/ghettovoice/sipwire/sip"
)

func TestISUP(t *testing.T) {
	t.Parallel()

	b := body.NewISUP("nxv3", "etsi121", []byte{0x01, 0x51, 0x94, 0x09})
	if got, want := b.ContentType(), "application/ISUP;version=nxv3;base=etsi121"; got != want {
		t.Errorf("b.ContentType() = %q, want %q", got, want)
	}
	want := []sip.Field{{Name: "Content-Disposition", Value: "signal;handling=optional"}}
	if diff := cmp.Diff(b.Fields(), want); diff != "" {
		t.Errorf("b.Fields() = %v, want %v\ndiff (-got +want):\n%v", b.Fields(), want, diff)
	}
	if got, err := b.Digits(1, true); err != nil || got != "15499" {
		t.Errorf("b.Digits(1, true) = %q, %v, want \"15499\", nil", got, err)
	}

	bare := &body.ISUP{Data: []byte{0x01}}
	if bare.ContentType() != body.ISUPType {
		t.Errorf("bare.ContentType() = %q, want %q", bare.ContentType(), body.ISUPType)
	}
	if bare.Fields() != nil {
		t.Errorf("bare.Fields() = %v, want nil", bare.Fields())
	}
}

func TestDecodeISUP(t *testing.T) {
	t.Parallel()

	got, err := body.DecodeISUP(
		"application/isup; version=itu-t92+; base=itu-t92+",
		[]sip.Field{{Name: "content-disposition", Value: "signal;handling=required"}},
		[]byte{0x01},
	)
	if err != nil {
		t.Fatalf("body.DecodeISUP() error = %v, want nil", err)
	}
	want := &body.ISUP{
		Version:     "itu-t92+",
		Base:        "itu-t92+",
		Disposition: "signal;handling=required",
		Data:        []byte{0x01},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("body.DecodeISUP() = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
}
