package header

import (
	"io"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipwire/internal/ioutil"
	"github.com/ghettovoice/sipwire/internal/util"
)

// Param is a single key=value parameter of an address.
type Param struct {
	Name  string
	Value string
}

// String returns the "name=value" form of the parameter.
func (p Param) String() string { return p.Name + "=" + p.Value }

// Params is an ordered list of parameters.
// The order is preserved on rendering, repeated names are kept as is.
type Params []Param

// Get returns the value of the first parameter with the given name.
// Names are compared case-insensitively.
func (ps Params) Get(name string) (string, bool) {
	i := slices.IndexFunc(ps, func(p Param) bool { return util.EqFold(p.Name, name) })
	if i < 0 {
		return "", false
	}
	return ps[i].Value, true
}

// Has checks whether a parameter with the given name is in the list.
func (ps Params) Has(name string) bool {
	_, ok := ps.Get(name)
	return ok
}

// Clone returns a copy of the list.
func (ps Params) Clone() Params {
	if len(ps) == 0 {
		return nil
	}
	return slices.Clone(ps)
}

// String returns parameters joined with ";".
func (ps Params) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ps.renderTo(sb) //nolint:errcheck
	return sb.String()
}

func (ps Params) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, p := range ps {
		if i > 0 {
			cw.Fprint(";")
		}
		cw.Fprint(p.Name, "=", p.Value)
	}
	return errtrace.Wrap2(cw.Result())
}

// parseParams splits s by ";" into key=value pairs.
// Tokens that do not consist of exactly one key and one value are skipped.
func parseParams(s string) Params {
	var ps Params
	for tok := range strings.SplitSeq(s, ";") {
		kv := strings.Split(tok, "=")
		if len(kv) != 2 {
			continue
		}
		ps = append(ps, Param{kv[0], kv[1]})
	}
	return ps
}
