package sip_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipwire/sip"
)

func TestLoadOptions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    sip.Options
		wantErr error
	}{
		{name: "empty", in: "", want: sip.Options{}},
		{
			name: "full",
			in: `boundary = "sep-1"
strict_header_names = true
methods = ["X-PING", "notify"]
`,
			want: sip.Options{Boundary: "sep-1", StrictHeaderNames: true, Methods: []string{"X-PING", "notify"}},
		},
		{name: "bad toml", in: `boundary = `, wantErr: sip.ErrInvalidArgument},
		{name: "wrong type", in: `strict_header_names = "yes"`, wantErr: sip.ErrInvalidArgument},
		{name: "bad method", in: `methods = ["NOT A TOKEN"]`, wantErr: sip.ErrInvalidArgument},
		{name: "long boundary", in: `boundary = "` + strings.Repeat("b", 71) + `"`, wantErr: sip.ErrInvalidArgument},
		{name: "boundary with newline", in: `boundary = "a\nb"`, wantErr: sip.ErrInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := sip.LoadOptions(strings.NewReader(c.in))
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("sip.LoadOptions(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("sip.LoadOptions(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestOptions_NewParser(t *testing.T) {
	t.Parallel()

	opts := sip.Options{Boundary: "sep-1", StrictHeaderNames: true, Methods: []string{"x-ping"}}
	p := opts.NewParser(nil, testLogger())

	msg, err := p.Parse([]byte("X-PING sip:bob@b.example.com SIP/2.0\r\n\r\n"))
	if err != nil {
		t.Fatalf("p.Parse(X-PING) error = %v, want nil", err)
	}
	if msg.Method != "X-PING" {
		t.Errorf("msg.Method = %q, want %q", msg.Method, "X-PING")
	}

	if _, err := p.Parse([]byte("INVITE sip:bob@b.example.com SIP/2.0\r\n\r\n")); err != nil {
		t.Errorf("p.Parse(INVITE) error = %v, want nil", err)
	}

	_, err = p.Parse([]byte("SIP/2.0 200 OK\r\nBad Name: x\r\n\r\n"))
	if diff := cmp.Diff(err, sip.ErrMalformedHeaderLine, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("p.Parse() error = %v, want %v\ndiff (-got +want):\n%v", err, sip.ErrMalformedHeaderLine, diff)
	}

	msg.SetBody(&sip.BasicBody{Type: "text/plain", Text: "a"})
	msg.SetBody(&sip.BasicBody{Type: "text/html", Text: "b"})
	msg.Headers.SetText("To", "<sip:bob@b.example.com>")
	out, err := msg.Render(opts.RenderOptions())
	if err != nil {
		t.Fatalf("msg.Render() error = %v, want nil", err)
	}
	if !strings.Contains(out, "Content-Type: multipart/mixed;boundary=sep-1\r\n") || !strings.HasSuffix(out, "--sep-1--\r\n") {
		t.Errorf("msg.Render() = %q, want boundary sep-1", out)
	}
}
