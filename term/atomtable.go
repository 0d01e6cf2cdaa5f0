package term

import (
	"sync"

	"go.uber.org/atomic"
)

// AtomTable tracks the set of atom names known to the runtime and gates
// decoding new ones behind safe mode (spec.md §3.2, §4.4, GLOSSARY "Safe
// mode"). It is read-mostly and safe for concurrent use by multiple
// decoders (spec.md §5: "concurrent readers must be supported").
//
// A zero AtomTable is usable, starting empty.
type AtomTable struct {
	mu    sync.RWMutex
	known map[Atom]struct{}

	// interns counts names newly added by Intern; exported only through
	// Interned, it exists so callers (and tests) can observe table
	// growth without taking the lock, the way go.uber.org/yarpc's peer
	// lists expose atomic counters alongside mutex-guarded state.
	interns atomic.Uint64
}

// NewAtomTable returns an AtomTable seeded with the given known names.
func NewAtomTable(known ...Atom) *AtomTable {
	t := &AtomTable{known: make(map[Atom]struct{}, len(known))}
	for _, a := range known {
		t.known[a] = struct{}{}
	}
	return t
}

// Known reports whether name is already in the table.
func (t *AtomTable) Known(name Atom) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.known[name]
	return ok
}

// Intern adds name to the table unconditionally, returning the interned
// Atom. Used outside safe mode, where unknown names are admitted
// (spec.md §4.4 "otherwise the name is interned").
func (t *AtomTable) Intern(name Atom) Atom {
	t.mu.Lock()
	if t.known == nil {
		t.known = make(map[Atom]struct{})
	}
	if _, ok := t.known[name]; !ok {
		t.known[name] = struct{}{}
		t.interns.Inc()
	}
	t.mu.Unlock()
	return name
}

// Resolve looks up name under the table's mode: in safe mode, an unknown
// name is an error (spec.md §3.2 invariant, §4.4); otherwise it is
// interned on the fly.
func (t *AtomTable) Resolve(name Atom, safe bool) (Atom, error) {
	if safe {
		if !t.Known(name) {
			return "", &UnknownAtomError{Name: name}
		}
		return name, nil
	}
	return t.Intern(name), nil
}

// Interned returns the number of distinct names admitted via Intern
// since creation (names seeded via NewAtomTable are not counted).
func (t *AtomTable) Interned() uint64 {
	return t.interns.Load()
}

// UnknownAtomError is returned by Resolve in safe mode for a name the
// table has never seen.
type UnknownAtomError struct {
	Name Atom
}

func (e *UnknownAtomError) Error() string {
	return "term: unknown atom in safe mode: " + string(e.Name)
}
