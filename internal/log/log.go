// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/sipwire/internal/constraints"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(b []byte) slog.Value {
		return slog.StringValue(string(b))
	}),
)

// NewConsoleHandler returns a human-readable handler writing to w.
func NewConsoleHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return newHandler(console.NewHandler(w, &console.HandlerOptions{
		AddSource:  true,
		Level:      lvl,
		TimeFormat: time.RFC3339Nano,
	}))
}

// NewDevHandler returns a verbose developer handler writing to w.
func NewDevHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return newHandler(devslog.NewHandler(w, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
		},
		SortKeys:   true,
		TimeFormat: time.RFC3339Nano,
	}))
}

// Def is a default logger.
var Def = slog.New(NewConsoleHandler(os.Stdout, slog.LevelDebug))

// Dev is a developer logger.
var Dev = slog.New(NewDevHandler(os.Stdout, slog.LevelDebug))

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// Default returns the process-wide [slog.Default] logger.
func Default() *slog.Logger { return slog.Default() }

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
