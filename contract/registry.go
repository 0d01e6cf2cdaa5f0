// Package contract describes the schema/plugin registry collaborator
// that the bridge package consults to map Record terms onto and off of
// Thrift structs (spec.md §1 "contract system", §6.3).
//
// The registry itself — how records get declared, where the mapping
// lives, how it's kept current — is explicitly out of scope for this
// module (spec.md §1: "specify only their contract with the core, not
// their internals"); this package only fixes the narrow lookup
// interface the bridge depends on, plus one concrete, file-backed
// implementation for tests and the example CLI.
package contract

// RecordKey identifies a record schema by name and field count, the way
// spec.md §4.4 keys a record lookup by "(record_name, arity)".
type RecordKey struct {
	Name  string
	Arity int
}

// Registry is the read-only collaborator contract from spec.md §6.3.
// Implementations must support concurrent readers (spec.md §5); nothing
// in this package ever mutates a Registry.
type Registry interface {
	// Records lists every declared (name, arity) pair.
	Records() []RecordKey

	// RecordFields returns the ordered field-name list for (name,
	// arity), or ok=false if no such record is declared. The bridge
	// falls back to tuple encoding, or fails record decoding, when ok
	// is false (spec.md §4.4).
	RecordFields(name string, arity int) (fields []string, ok bool)
}
