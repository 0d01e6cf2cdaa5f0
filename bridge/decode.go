package bridge

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/multierr"

	"github.com/hibari/ubfthrift/contract"
	"github.com/hibari/ubfthrift/term"
	"github.com/hibari/ubfthrift/wire"
)

// SchemaError reports a Struct whose shape does not match any sentinel,
// or whose shape matches a sentinel but violates that sentinel's
// invariants (spec.md §4.4: "any deviation ... fails with badrecord or
// equivalent"). Multiple independent violations on a single Record or
// PropList are aggregated with go.uber.org/multierr, the way
// go.uber.org/yarpc's transport config validation reports every bad
// field at once rather than stopping at the first.
type SchemaError struct {
	Sentinel Sentinel
	Reason   string
}

func (e *SchemaError) Error() string {
	if e.Sentinel == "" {
		return fmt.Sprintf("bridge: not a recognized term struct: %s", e.Reason)
	}
	return fmt.Sprintf("bridge: %s: %s", e.Sentinel, e.Reason)
}

// Decode reconstructs the Term a sentinel Struct represents. registry
// resolves Record field order; atoms and safe gate Atom interning the
// way protocol/binary gates container sizes — both are spec.md §3.2/§4.4
// concerns, not wire-format ones, which is why they live in this layer
// rather than in package wire or protocol.
func Decode(s wire.Struct, registry contract.Registry, atoms *term.AtomTable, safe bool) (term.Term, error) {
	sentinel, ok := sentinelOf(s)
	if !ok {
		return nil, &SchemaError{Reason: "no field matches any known sentinel shape"}
	}

	f := s.Fields[0]
	switch sentinel {
	case SentinelBinary:
		return term.Binary(append([]byte(nil), f.Data.GetBinary()...)), nil
	case SentinelNumber:
		if f.Data.Type == wire.TI64 {
			return term.Integer(f.Data.GetI64()), nil
		}
		return term.Float(f.Data.GetDouble()), nil
	case SentinelBool:
		return term.Bool(f.Data.GetBool()), nil
	case SentinelAtom:
		return decodeAtom(f.Data.GetBinary(), atoms, safe)
	case SentinelString:
		return decodeString(f.Data.GetBinary())
	case SentinelList:
		items, err := decodeSeq(f.Data.GetList(), registry, atoms, safe, sentinel)
		if err != nil {
			return nil, err
		}
		return term.List(items), nil
	case SentinelTuple:
		items, err := decodeSeq(f.Data.GetList(), registry, atoms, safe, sentinel)
		if err != nil {
			return nil, err
		}
		return term.Tuple(items), nil
	case SentinelPropList:
		return decodePropList(f.Data.GetMap(), registry, atoms, safe)
	case SentinelRecord:
		return decodeRecord(f.Data.GetMap(), registry, atoms, safe)
	default:
		return nil, &SchemaError{Sentinel: sentinel, Reason: "unhandled sentinel"}
	}
}

func decodeAtom(raw []byte, atoms *term.AtomTable, safe bool) (term.Term, error) {
	if !utf8.Valid(raw) {
		return nil, &SchemaError{Sentinel: SentinelAtom, Reason: "name is not valid UTF-8"}
	}
	name := term.Atom(raw)
	if atoms == nil {
		return name, nil
	}
	resolved, err := atoms.Resolve(name, safe)
	if err != nil {
		return nil, &SchemaError{Sentinel: SentinelAtom, Reason: err.Error()}
	}
	return resolved, nil
}

func decodeString(raw []byte) (term.Term, error) {
	if !utf8.Valid(raw) {
		return nil, &SchemaError{Sentinel: SentinelString, Reason: "text is not valid UTF-8"}
	}
	return term.String(raw), nil
}

func decodeSeq(l wire.List, registry contract.Registry, atoms *term.AtomTable, safe bool, sentinel Sentinel) ([]term.Term, error) {
	if l.ValueType != wire.TSTRUCT {
		return nil, &SchemaError{Sentinel: sentinel, Reason: "element type is not STRUCT"}
	}
	items := make([]term.Term, len(l.Values))
	var errs error
	for i, v := range l.Values {
		item, err := Decode(v.GetStruct(), registry, atoms, safe)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		items[i] = item
	}
	if errs != nil {
		return nil, errs
	}
	return items, nil
}

func decodePropList(m wire.Map, registry contract.Registry, atoms *term.AtomTable, safe bool) (term.Term, error) {
	if m.KeyType != wire.TSTRUCT || m.ValueType != wire.TSTRUCT {
		return nil, &SchemaError{Sentinel: SentinelPropList, Reason: "key/value type is not STRUCT"}
	}
	entries := make(term.PropList, len(m.Entries))
	var errs error
	for i, e := range m.Entries {
		k, err := Decode(e.Key.GetStruct(), registry, atoms, safe)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d key: %w", i, err))
			continue
		}
		v, err := Decode(e.Value.GetStruct(), registry, atoms, safe)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d value: %w", i, err))
			continue
		}
		entries[i] = term.PropEntry{Key: k, Value: v}
	}
	if errs != nil {
		return nil, errs
	}
	return entries, nil
}

// decodeRecord resolves a $R map against the registry: one reserved ""
// entry carries the record name (as an Atom), every other entry is keyed
// by field name. The schema lookup by (name, arity) fixes field order;
// an unknown schema, a missing field, or an unexpected extra field are
// all reported (aggregated where independent) rather than silently
// tolerated (spec.md §4.4).
func decodeRecord(m wire.Map, registry contract.Registry, atoms *term.AtomTable, safe bool) (term.Term, error) {
	if m.KeyType != wire.TBINARY || m.ValueType != wire.TSTRUCT {
		return nil, &SchemaError{Sentinel: SentinelRecord, Reason: "key/value type is not BINARY/STRUCT"}
	}

	byName := make(map[string]wire.Value, len(m.Entries))
	var nameValue (*wire.Value)
	for _, e := range m.Entries {
		key := string(e.Key.GetBinary())
		if key == reservedRecordNameKey {
			v := e.Value
			nameValue = &v
			continue
		}
		byName[key] = e.Value
	}
	if nameValue == nil {
		return nil, &SchemaError{Sentinel: SentinelRecord, Reason: "missing reserved name entry"}
	}

	nameTerm, err := Decode(nameValue.GetStruct(), registry, atoms, safe)
	if err != nil {
		return nil, multierr.Append(&SchemaError{Sentinel: SentinelRecord, Reason: "name entry"}, err)
	}
	name, ok := nameTerm.(term.Atom)
	if !ok {
		return nil, &SchemaError{Sentinel: SentinelRecord, Reason: "name entry is not an atom"}
	}

	if registry == nil {
		return nil, &SchemaError{Sentinel: SentinelRecord, Reason: "no registry configured"}
	}
	arity := len(byName)
	fieldNames, ok := registry.RecordFields(string(name), arity)
	if !ok {
		return nil, &SchemaError{Sentinel: SentinelRecord, Reason: fmt.Sprintf("no schema for %s/%d", name, arity)}
	}

	var errs error
	fields := make([]term.Term, len(fieldNames))
	seen := make(map[string]bool, len(fieldNames))
	for i, fname := range fieldNames {
		seen[fname] = true
		v, ok := byName[fname]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("missing field %q", fname))
			continue
		}
		decoded, err := Decode(v.GetStruct(), registry, atoms, safe)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("field %q: %w", fname, err))
			continue
		}
		fields[i] = decoded
	}
	for fname := range byName {
		if !seen[fname] {
			errs = multierr.Append(errs, fmt.Errorf("unexpected field %q", fname))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return term.Record{Name: string(name), Fields: fields}, nil
}
