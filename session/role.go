// Package session implements the role-aware wrapping described in
// spec.md §4.5: deciding, for a given logical connection, whether a
// top-level Thrift message should be surfaced as-is or unwrapped into
// (or wrapped from) a term via the sentinel envelope.
package session

// Side is which end of a connection this session represents.
type Side int8

const (
	Client Side = iota
	Server
)

func (s Side) String() string {
	if s == Server {
		return "server"
	}
	return "client"
}

// Framing is whether messages on this session carry an outer 32-bit
// length prefix, applied by a framing collaborator outside this module
// (spec.md §1 "Out of scope ... framing layer").
type Framing int8

const (
	Unframed Framing = iota
	Framed
)

func (f Framing) String() string {
	if f == Framed {
		return "framed"
	}
	return "unframed"
}

// Role is the explicit parameter spec.md §9 asks for in place of
// process-dictionary-scoped role resolution: every wrap/unwrap decision
// takes a Role value rather than consulting ambient per-process state.
type Role struct {
	Side    Side
	Framing Framing
}
