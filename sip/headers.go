package sip

import (
	"iter"
	"sync"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipwire/header"
)

// HeaderValue is the value stored in a header slot.
// It is either a [RawValue] as received from the wire or an [AddressValue]
// resolved from it.
type HeaderValue interface {
	String() string
	headerValue()
}

// RawValue is a header value kept as text.
type RawValue string

func (v RawValue) String() string { return string(v) }

func (RawValue) headerValue() {}

// AddressValue is a header value resolved to an address.
// It renders in the bracketed form.
type AddressValue struct {
	header.Address
}

func (AddressValue) headerValue() {}

type headerEntry struct {
	name string
	val  HeaderValue
}

// Headers is an ordered collection of message headers.
//
// Header names are case-sensitive and kept as given. Setting a name that already exists
// replaces the value in place, so the collection keeps the position of the first insertion.
// Headers is safe for concurrent use.
type Headers struct {
	mu      sync.Mutex
	entries []headerEntry
	index   map[string]int
}

// NewHeaders creates an empty header collection.
func NewHeaders() *Headers {
	return &Headers{index: make(map[string]int)}
}

// Set sets the header value. A nil value deletes the header.
func (hs *Headers) Set(name string, val HeaderValue) *Headers {
	if val == nil {
		return hs.Del(name)
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.set(name, val)
	return hs
}

func (hs *Headers) set(name string, val HeaderValue) {
	if hs.index == nil {
		hs.index = make(map[string]int)
	}
	if i, ok := hs.index[name]; ok {
		hs.entries[i].val = val
		return
	}
	hs.index[name] = len(hs.entries)
	hs.entries = append(hs.entries, headerEntry{name, val})
}

// SetText is a shorthand for Set(name, RawValue(val)).
func (hs *Headers) SetText(name, val string) *Headers { return hs.Set(name, RawValue(val)) }

// SetAddress is a shorthand for Set(name, AddressValue{addr}).
func (hs *Headers) SetAddress(name string, addr header.Address) *Headers {
	return hs.Set(name, AddressValue{addr})
}

// Get returns the header value as it is stored.
func (hs *Headers) Get(name string) (HeaderValue, bool) {
	if hs == nil {
		return nil, false
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	i, ok := hs.index[name]
	if !ok {
		return nil, false
	}
	return hs.entries[i].val, true
}

// Text returns the textual form of the header value.
// It never resolves the stored value.
func (hs *Headers) Text(name string) (string, bool) {
	v, ok := hs.Get(name)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// Has checks whether the header is in the collection.
func (hs *Headers) Has(name string) bool {
	_, ok := hs.Get(name)
	return ok
}

// Address returns the header value resolved to an address.
//
// A raw value is parsed on the first access and the slot is replaced with the resulting
// [AddressValue], so subsequent calls return the stored address without parsing.
// If the value fails to parse, the slot keeps the raw value.
func (hs *Headers) Address(name string) (header.Address, error) {
	if hs == nil {
		return header.Address{}, errtrace.Wrap(newMissingHeaderErr(name))
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	i, ok := hs.index[name]
	if !ok {
		return header.Address{}, errtrace.Wrap(newMissingHeaderErr(name))
	}

	switch v := hs.entries[i].val.(type) {
	case AddressValue:
		return v.Address, nil
	default:
		addr, err := header.ParseAddress(v.String())
		if err != nil {
			return header.Address{}, errtrace.Wrap(err)
		}
		hs.entries[i].val = AddressValue{addr}
		return addr, nil
	}
}

// Del deletes the header.
func (hs *Headers) Del(name string) *Headers {
	if hs == nil {
		return hs
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	i, ok := hs.index[name]
	if !ok {
		return hs
	}
	hs.entries = append(hs.entries[:i], hs.entries[i+1:]...)
	delete(hs.index, name)
	for j := i; j < len(hs.entries); j++ {
		hs.index[hs.entries[j].name] = j
	}
	return hs
}

// Len returns the number of headers.
func (hs *Headers) Len() int {
	if hs == nil {
		return 0
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	return len(hs.entries)
}

// All returns an iterator over the headers in insertion order.
// The iterator works on a snapshot, so the collection may be modified during iteration.
func (hs *Headers) All() iter.Seq2[string, HeaderValue] {
	entries := hs.snapshot()
	return func(yield func(string, HeaderValue) bool) {
		for _, e := range entries {
			if !yield(e.name, e.val) {
				return
			}
		}
	}
}

// Keys returns an iterator over the header names in insertion order.
func (hs *Headers) Keys() iter.Seq[string] {
	entries := hs.snapshot()
	return func(yield func(string) bool) {
		for _, e := range entries {
			if !yield(e.name) {
				return
			}
		}
	}
}

func (hs *Headers) snapshot() []headerEntry {
	if hs == nil {
		return nil
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	entries := make([]headerEntry, len(hs.entries))
	copy(entries, hs.entries)
	return entries
}

// Clone returns a copy of the collection.
func (hs *Headers) Clone() *Headers {
	hs2 := NewHeaders()
	for _, e := range hs.snapshot() {
		hs2.set(e.name, e.val)
	}
	return hs2
}
