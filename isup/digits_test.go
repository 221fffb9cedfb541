package isup_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipwire/isup"
)

func TestEncodeDigits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"empty", "", "", nil},
		{"single", "7", "07", nil},
		{"even", "1549", "5194", nil},
		{"odd", "15499", "519409", nil},
		{"msisdn", "11992971721", "119992172701", nil},
		{"letter", "15a9", "", isup.ErrInvalidDigit},
		{"plus", "+5511", "", isup.ErrInvalidDigit},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := isup.EncodeDigits(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("isup.EncodeDigits(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if err != nil {
				return
			}
			if h := hex.EncodeToString(got); h != c.want {
				t.Errorf("isup.EncodeDigits(%q) = %s, want %s", c.in, h, c.want)
			}
		})
	}
}

func TestDecodeDigits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		offset  int
		odd     bool
		want    string
		wantErr error
	}{
		{"empty", "", 0, false, "", nil},
		{"even", "5194", 0, false, "1549", nil},
		{"odd", "519409", 0, true, "15499", nil},
		{"odd filler not checked", "5194f9", 0, true, "15499", nil},
		{"offset", "83905194", 2, false, "1549", nil},
		{"offset at end", "5194", 2, false, "", nil},
		{"bad low nibble", "5a94", 0, false, "", isup.ErrInvalidDigit},
		{"bad high nibble", "51f4", 0, false, "", isup.ErrInvalidDigit},
		{"negative offset", "5194", -1, false, "", isup.ErrInvalidArgument},
		{"offset out of range", "5194", 3, false, "", isup.ErrInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			b, err := hex.DecodeString(c.in)
			if err != nil {
				t.Fatalf("hex.DecodeString(%q) error = %v", c.in, err)
			}

			got, err := isup.DecodeDigits(b, c.offset, c.odd)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("isup.DecodeDigits(%s, %d, %v) error = %v, want %v\ndiff (-got +want):\n%v",
					c.in, c.offset, c.odd, err, c.wantErr, diff)
			}
			if got != c.want {
				t.Errorf("isup.DecodeDigits(%s, %d, %v) = %q, want %q", c.in, c.offset, c.odd, got, c.want)
			}
		})
	}
}

func TestDigits_RoundTrip(t *testing.T) {
	t.Parallel()

	const src = "11992971721549904321"
	for n := 1; n <= 20; n++ {
		d := isup.Digits(src[:n])

		b, err := d.Encode()
		if err != nil {
			t.Fatalf("isup.Digits(%q).Encode() error = %v, want nil", d, err)
		}
		if want := (n + 1) / 2; len(b) != want {
			t.Errorf("len(isup.Digits(%q).Encode()) = %d, want %d", d, len(b), want)
		}

		got, err := isup.DecodeDigits(b, 0, d.Odd())
		if err != nil {
			t.Fatalf("isup.DecodeDigits(%x, 0, %v) error = %v, want nil", b, d.Odd(), err)
		}
		if got != string(d) {
			t.Errorf("isup.DecodeDigits(%x, 0, %v) = %q, want %q", b, d.Odd(), got, d)
		}
	}
}

func TestAppendDigits(t *testing.T) {
	t.Parallel()

	buf := []byte{0x83, 0x90}
	got, err := isup.AppendDigits(buf, "15499")
	if err != nil {
		t.Fatalf("isup.AppendDigits() error = %v, want nil", err)
	}
	if h := hex.EncodeToString(got); h != "8390519409" {
		t.Errorf("isup.AppendDigits() = %s, want %s", h, "8390519409")
	}

	got, err = isup.AppendDigits(buf, "12#")
	if err == nil || !strings.Contains(err.Error(), "position 2") {
		t.Errorf("isup.AppendDigits(buf, %q) error = %v, want invalid digit at position 2", "12#", err)
	}
	if len(got) != len(buf) {
		t.Errorf("isup.AppendDigits() on error returned %d bytes, want %d", len(got), len(buf))
	}
}

func TestDigits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in        isup.Digits
		wantOdd   bool
		wantValid bool
	}{
		{"", false, false},
		{"1", true, true},
		{"1549", false, true},
		{"15499", true, true},
		{"15*99", true, false},
	}

	for _, c := range cases {
		if got := c.in.Odd(); got != c.wantOdd {
			t.Errorf("isup.Digits(%q).Odd() = %v, want %v", c.in, got, c.wantOdd)
		}
		if got := c.in.IsValid(); got != c.wantValid {
			t.Errorf("isup.Digits(%q).IsValid() = %v, want %v", c.in, got, c.wantValid)
		}
		if got := isup.IsOdd(string(c.in)); got != c.wantOdd {
			t.Errorf("isup.IsOdd(%q) = %v, want %v", c.in, got, c.wantOdd)
		}
	}
}
