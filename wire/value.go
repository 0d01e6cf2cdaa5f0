package wire

// Value is a tagged union over every shape a Field's payload, or a
// Map/Set/List element, can take on the wire. Exactly one accessor is
// meaningful for a given Value, determined by its Type.
//
// Value is deliberately a plain struct rather than an interface: the
// decoder builds these bottom-up on an explicit stack (see
// protocol/binary) and an interface would force a heap allocation per
// scalar. Construct one with the NewValueXxx helpers below; the zero
// Value is not valid.
type Value struct {
	Type FieldType

	boolValue   bool
	i8Value     int8
	i16Value    int16
	i32Value    int32
	i64Value    int64
	u64Value    uint64
	doubleValue float64
	bytesValue  []byte // BINARY payload, or the single byte behind a BYTE-tagged scalar

	mapValue    Map
	setValue    Set
	listValue   List
	structValue Struct
}

func NewValueBool(b bool) Value     { return Value{Type: TBOOL, boolValue: b} }
func NewValueByte(b byte) Value     { return Value{Type: TBYTE, bytesValue: []byte{b}} }
func NewValueI08(n int8) Value      { return Value{Type: TI08, i8Value: n} }
func NewValueI16(n int16) Value     { return Value{Type: TI16, i16Value: n} }
func NewValueI32(n int32) Value     { return Value{Type: TI32, i32Value: n} }
func NewValueU64(n uint64) Value    { return Value{Type: TU64, u64Value: n} }
func NewValueI64(n int64) Value     { return Value{Type: TI64, i64Value: n} }
func NewValueDouble(f float64) Value { return Value{Type: TDOUBLE, doubleValue: f} }
func NewValueBinary(b []byte) Value { return Value{Type: TBINARY, bytesValue: b} }
func NewValueStruct(s Struct) Value { return Value{Type: TSTRUCT, structValue: s} }
func NewValueMap(m Map) Value       { return Value{Type: TMAP, mapValue: m} }
func NewValueSet(s Set) Value       { return Value{Type: TSET, setValue: s} }
func NewValueList(l List) Value     { return Value{Type: TLIST, listValue: l} }

func (v Value) GetBool() bool        { return v.boolValue }
func (v Value) GetByte() byte {
	if len(v.bytesValue) == 0 {
		return 0
	}
	return v.bytesValue[0]
}
func (v Value) GetI08() int8        { return v.i8Value }
func (v Value) GetI16() int16       { return v.i16Value }
func (v Value) GetI32() int32       { return v.i32Value }
func (v Value) GetU64() uint64      { return v.u64Value }
func (v Value) GetI64() int64       { return v.i64Value }
func (v Value) GetDouble() float64  { return v.doubleValue }
func (v Value) GetBinary() []byte   { return v.bytesValue }
func (v Value) GetStruct() Struct   { return v.structValue }
func (v Value) GetMap() Map         { return v.mapValue }
func (v Value) GetSet() Set         { return v.setValue }
func (v Value) GetList() List       { return v.listValue }

// Field is a single named, typed, identified slot inside a Struct.
// Name is carried in memory only; it is never written to the wire
// (spec.md §3.1).
type Field struct {
	ID   int16
	Name string
	Data Value
}

// Struct is an ordered sequence of fields. Name is carried in memory
// only; like a field name it has no wire representation. The term bridge
// (package bridge) sets it to the sentinel name when it encodes a term;
// a decoded Struct always has an empty Name, so the bridge recognizes
// sentinel structs by their field shape instead.
type Struct struct {
	Name   string
	Fields []Field
}

// FieldByID returns the first field with the given id, if any.
func (s Struct) FieldByID(id int16) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Map is an ordered sequence of key/value entries, each conforming to
// KeyType/ValueType.
type Map struct {
	KeyType   FieldType
	ValueType FieldType
	Entries   []MapEntry
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Set is an ordered sequence of elements conforming to ValueType. Thrift
// does not enforce uniqueness on the wire; neither does this package.
type Set struct {
	ValueType FieldType
	Values    []Value
}

// List is an ordered sequence of elements conforming to ValueType.
type List struct {
	ValueType FieldType
	Values    []Value
}
