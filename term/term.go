// Package term implements the richer, dynamically-typed term algebra
// (spec.md §3.2) that the bridge package losslessly embeds into Thrift
// structs. A Term is a closed sum type: Binary, Integer, Float, Bool,
// Atom, String, List, PropList, Tuple, or Record.
package term

import "fmt"

// Term is implemented by exactly the ten variants below. The
// unexported method seals the set, the way wire.Value's unexported
// fields seal its own tagged union: callers type-switch on a Term, they
// never add new implementations from outside the package.
type Term interface {
	isTerm()
}

// Binary is an opaque byte string, distinct from String (spec.md §3.2).
type Binary []byte

func (Binary) isTerm() {}

// Integer is a signed integer term. The wire encoding (bridge package,
// sentinel $N) carries it as a Thrift i64; values are chosen to be
// int64-backed here rather than arbitrary precision (spec.md §3.2 says
// "arbitrary-precision in principle" but "≥64-bit signed on the wire").
// Encoding a value that doesn't fit
// i64 is impossible by construction since Integer already is an int64.
type Integer int64

func (Integer) isTerm() {}

// Float is an IEEE-754 double term.
type Float float64

func (Float) isTerm() {}

// Bool is a boolean term.
type Bool bool

func (Bool) isTerm() {}

// Atom is an interned symbolic name. In safe mode (see AtomTable), only
// names already known to the runtime may be decoded; encoding an Atom
// never touches the table, since the name already exists in memory by
// construction.
type Atom string

func (Atom) isTerm() {}

// String is a sequence of Unicode code points, distinct from Binary. Go
// strings already carry that distinction at the type level; the caller
// is responsible for ensuring the text is valid UTF-8 (bridge.Decode
// validates this when it reconstructs a String term from wire bytes).
type String string

func (String) isTerm() {}

// List is an ordered, homogeneous-in-spirit-but-not-enforced sequence of
// terms.
type List []Term

func (List) isTerm() {}

// PropEntry is one key/value pair of a PropList. Keys and values may be
// arbitrary terms (spec.md §3.2), so PropList cannot be a Go map.
type PropEntry struct {
	Key   Term
	Value Term
}

// PropList is an ordered association list.
type PropList []PropEntry

func (PropList) isTerm() {}

// Tuple is a positional, heterogeneous sequence.
type Tuple []Term

func (Tuple) isTerm() {}

// Record is a named tuple whose field order is determined by a schema
// lookup (contract.Registry) keyed by (Name, len(Fields)).
type Record struct {
	Name   string
	Fields []Term
}

func (Record) isTerm() {}

// Equal reports whether a and b are the same term, recursively. It
// exists mainly for round-trip tests (spec.md §8's universal
// properties); production code that needs to compare terms for RPC
// dispatch purposes should prefer comparing the narrower Go types
// directly.
func Equal(a, b Term) bool {
	switch av := a.(type) {
	case Binary:
		bv, ok := b.(Binary)
		return ok && string(av) == string(bv)
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Atom:
		bv, ok := b.(Atom)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		return ok && equalSlice(av, bv)
	case Tuple:
		bv, ok := b.(Tuple)
		return ok && equalSlice(av, bv)
	case PropList:
		bv, ok := b.(PropList)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i].Key, bv[i].Key) || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	case Record:
		bv, ok := b.(Record)
		return ok && av.Name == bv.Name && equalSlice(av.Fields, bv.Fields)
	default:
		panic(fmt.Sprintf("term: unreachable variant %T", a))
	}
}

func equalSlice(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
