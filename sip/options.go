package sip

import (
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/BurntSushi/toml"

	"github.com/ghettovoice/sipwire/internal/errorutil"
	"github.com/ghettovoice/sipwire/internal/grammar"
	"github.com/ghettovoice/sipwire/internal/util"
)

// Options is the framing configuration that can be loaded from a TOML document:
//
//	boundary = "unique-boundary-1"
//	strict_header_names = true
//	methods = ["X-CUSTOM"]
type Options struct {
	// Boundary is the multipart boundary token, see [RenderOptions.Boundary].
	Boundary string `toml:"boundary"`
	// StrictHeaderNames enables validation of header names, see [Parser.StrictHeaderNames].
	StrictHeaderNames bool `toml:"strict_header_names"`
	// Methods are extra request methods recognized in addition to [Methods].
	Methods []string `toml:"methods"`
}

// LoadOptions decodes and validates options from a TOML document.
func LoadOptions(r io.Reader) (Options, error) {
	var opts Options
	if _, err := toml.NewDecoder(r).Decode(&opts); err != nil {
		return Options{}, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	if err := opts.Validate(); err != nil {
		return Options{}, errtrace.Wrap(err)
	}
	return opts, nil
}

// Validate checks the options.
func (o Options) Validate() error {
	// RFC 2046 Section 5.1.1.
	if len(o.Boundary) > 70 || strings.ContainsAny(o.Boundary, "\r\n") || strings.HasSuffix(o.Boundary, " ") {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid boundary %q", o.Boundary))
	}
	for _, m := range o.Methods {
		if !grammar.IsToken(m) {
			return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid method %q", m))
		}
	}
	return nil
}

// NewParser creates a parser configured by the options.
func (o Options) NewParser(bodies BodyParser, logger *slog.Logger) *Parser {
	fs := DefaultFactories()
	for _, m := range o.Methods {
		fs[util.UCase(m)] = NewRequestFromLine
	}
	return &Parser{
		Factories:         fs,
		Bodies:            bodies,
		StrictHeaderNames: o.StrictHeaderNames,
		Log:               logger,
	}
}

// RenderOptions returns the rendering options.
func (o Options) RenderOptions() *RenderOptions {
	return &RenderOptions{Boundary: o.Boundary}
}
