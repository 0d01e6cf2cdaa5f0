package bridge

import (
	"github.com/hibari/ubfthrift/contract"
	"github.com/hibari/ubfthrift/term"
	"github.com/hibari/ubfthrift/wire"
)

// Encode maps a Term onto its sentinel Struct (spec.md §3.3, §4.4). It is
// total: every Term value, including deeply nested ones, has a Struct
// representation. registry may be nil, in which case every Record falls
// back to tuple encoding (spec.md §4.4).
func Encode(t term.Term, registry contract.Registry) wire.Struct {
	switch v := t.(type) {
	case term.Binary:
		return oneField(SentinelBinary, fieldIDPrimary, wire.NewValueBinary([]byte(v)))
	case term.Integer:
		return oneField(SentinelNumber, fieldIDPrimary, wire.NewValueI64(int64(v)))
	case term.Float:
		return oneField(SentinelNumber, fieldIDPrimary, wire.NewValueDouble(float64(v)))
	case term.Bool:
		return oneField(SentinelBool, fieldIDPrimary, wire.NewValueBool(bool(v)))
	case term.Atom:
		return oneField(SentinelAtom, fieldIDAtom, wire.NewValueBinary([]byte(v)))
	case term.String:
		return oneField(SentinelString, fieldIDString, wire.NewValueBinary([]byte(v)))
	case term.List:
		return encodeSeq(SentinelList, fieldIDPrimary, []term.Term(v), registry)
	case term.Tuple:
		return encodeSeq(SentinelTuple, fieldIDTuple, []term.Term(v), registry)
	case term.PropList:
		return encodePropList(v, registry)
	case term.Record:
		return encodeRecord(v, registry)
	default:
		panic("bridge: unreachable term variant")
	}
}

func oneField(name Sentinel, id int16, v wire.Value) wire.Struct {
	return wire.Struct{
		Name:   string(name),
		Fields: []wire.Field{{ID: id, Data: v}},
	}
}

func encodeSeq(name Sentinel, id int16, items []term.Term, registry contract.Registry) wire.Struct {
	values := make([]wire.Value, len(items))
	for i, item := range items {
		values[i] = wire.NewValueStruct(Encode(item, registry))
	}
	l := wire.List{ValueType: wire.TSTRUCT, Values: values}
	return oneField(name, id, wire.NewValueList(l))
}

func encodePropList(pl term.PropList, registry contract.Registry) wire.Struct {
	entries := make([]wire.MapEntry, len(pl))
	for i, e := range pl {
		entries[i] = wire.MapEntry{
			Key:   wire.NewValueStruct(Encode(e.Key, registry)),
			Value: wire.NewValueStruct(Encode(e.Value, registry)),
		}
	}
	m := wire.Map{KeyType: wire.TSTRUCT, ValueType: wire.TSTRUCT, Entries: entries}
	return oneField(SentinelPropList, fieldIDPrimary, wire.NewValueMap(m))
}

// encodeRecord looks the record up by (Name, arity); on a hit, fields are
// keyed by their registered names. On a miss — no registry, or no entry
// for this (name, arity) — the tuple fallback applies (spec.md §4.4):
// the record's identity is dropped and its fields are encoded as a
// plain Tuple.
func encodeRecord(r term.Record, registry contract.Registry) wire.Struct {
	var names []string
	if registry != nil {
		if fields, ok := registry.RecordFields(r.Name, len(r.Fields)); ok {
			names = fields
		}
	}
	if names == nil {
		return encodeSeq(SentinelTuple, fieldIDTuple, r.Fields, registry)
	}

	entries := make([]wire.MapEntry, 0, len(r.Fields)+1)
	entries = append(entries, wire.MapEntry{
		Key:   wire.NewValueBinary([]byte(reservedRecordNameKey)),
		Value: wire.NewValueStruct(Encode(term.Atom(r.Name), registry)),
	})
	for i, field := range r.Fields {
		entries = append(entries, wire.MapEntry{
			Key:   wire.NewValueBinary([]byte(names[i])),
			Value: wire.NewValueStruct(Encode(field, registry)),
		})
	}
	m := wire.Map{KeyType: wire.TBINARY, ValueType: wire.TSTRUCT, Entries: entries}
	return oneField(SentinelRecord, fieldIDPrimary, wire.NewValueMap(m))
}
